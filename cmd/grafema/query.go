package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termfx/grafema/internal/datalog"
)

func newQueryCmd() *cobra.Command {
	var (
		rulesPath string
		limit     int
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "query <goal>",
		Short: "Evaluate a Datalog goal against the stored graph",
		Long:  `Loads node/2, edge/3 and attr/3 facts from the configured store, compiles any rules from --rules, and evaluates goal (e.g. "violation(X)").`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			ctx := context.Background()

			ev, err := datalog.NewEvaluator()
			if err != nil {
				return fmt.Errorf("query: new evaluator: %w", err)
			}
			if rulesPath != "" {
				src, err := os.ReadFile(rulesPath)
				if err != nil {
					return fmt.Errorf("query: read rules: %w", err)
				}
				if err := ev.LoadRules(string(src)); err != nil {
					return fmt.Errorf("query: load rules: %w", err)
				}
			}
			if err := ev.AssertFacts(ctx, a.st); err != nil {
				return fmt.Errorf("query: assert facts: %w", err)
			}

			result, err := ev.Query(ctx, args[0], limit, offset)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}

			fmt.Printf("%s %d row(s) (%s)\n", colorBold("▶"), result.Total, result.Duration)
			if result.Total == 0 {
				fmt.Printf("  %s no matching facts\n", colorYellow("→"))
			}
			for _, row := range result.Rows {
				fmt.Printf("  %v\n", row)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "path to a Datalog rule file compiled before the goal runs")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows returned (0 = unbounded)")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip before limit is applied")

	return cmd
}
