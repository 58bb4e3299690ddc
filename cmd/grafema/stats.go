package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print node/edge counts for the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			ctx := context.Background()

			nodeCount, err := a.st.NodeCount(ctx)
			if err != nil {
				return fmt.Errorf("stats: node count: %w", err)
			}
			edgeCount, err := a.st.EdgeCount(ctx)
			if err != nil {
				return fmt.Errorf("stats: edge count: %w", err)
			}

			fmt.Printf("%s %d\n", colorBlue("nodes:"), nodeCount)
			fmt.Printf("%s %d\n", colorBlue("edges:"), edgeCount)
			return nil
		},
	}
}
