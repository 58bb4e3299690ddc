package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/extract/golang"
	"github.com/termfx/grafema/internal/extract/javascript"
	"github.com/termfx/grafema/internal/extract/typescript"
	"github.com/termfx/grafema/internal/orchestrate"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		poolSize    int
		taskTimeout time.Duration
		include     []string
		exclude     []string
	)

	cmd := &cobra.Command{
		Use:   "analyze [root]",
		Short: "Run discover/index/analyze/enrich/validate over a source tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			root := a.cfg.Discovery.Root
			if len(args) > 0 {
				root = args[0]
			}
			if len(include) == 0 {
				include = a.cfg.Discovery.Include
			}
			if len(exclude) == 0 {
				exclude = a.cfg.Discovery.Exclude
			}
			if !cmd.Flags().Changed("pool-size") && a.cfg.Pool.Size > 0 {
				poolSize = a.cfg.Pool.Size
			}
			if !cmd.Flags().Changed("task-timeout") && a.cfg.Pool.TaskTimeoutSec > 0 {
				taskTimeout = time.Duration(a.cfg.Pool.TaskTimeoutSec) * time.Second
			}

			opts := orchestrate.Options{
				Root:        root,
				Include:     include,
				Exclude:     exclude,
				PoolSize:    poolSize,
				TaskTimeout: taskTimeout,
				RunID:       fmt.Sprintf("run-%d", time.Now().UnixNano()),
				ServiceName: strings.TrimSuffix(root, "/"),
			}

			o := orchestrate.New(opts, a.st, a.log, a.diag, []extract.Extractor{
				golang.New(),
				javascript.New(),
				typescript.New(),
			})

			fmt.Printf("%s analyzing %s\n", colorBold("▶"), colorCyan(root))
			if err := o.Run(context.Background()); err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			if err := reportDiagnostics(a); err != nil {
				return err
			}

			nodeCount, _ := a.st.NodeCount(context.Background())
			edgeCount, _ := a.st.EdgeCount(context.Background())
			fmt.Printf("%s %d nodes, %d edges\n", colorGreen("✓"), nodeCount, edgeCount)

			os.Exit(a.diag.ExitCode())
			return nil
		},
	}

	cmd.Flags().IntVar(&poolSize, "pool-size", runtime.NumCPU(), "worker pool size (capped at 16 by the orchestrator)")
	cmd.Flags().DurationVar(&taskTimeout, "task-timeout", 30*time.Second, "per-task timeout")
	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns to include (overrides config)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns to exclude (overrides config)")

	return cmd
}
