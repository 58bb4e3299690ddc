package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/termfx/grafema/internal/config"
	"github.com/termfx/grafema/internal/diagnostics"
	"github.com/termfx/grafema/internal/guarantee"
	"github.com/termfx/grafema/internal/obslog"
	"github.com/termfx/grafema/internal/store"
	"github.com/termfx/grafema/internal/store/gormstore"
)

// Color helpers, same palette the teacher's demo CLI defines
// (demo/cmd/main.go) rather than a fresh one per command file.
var (
	colorGreen  = color.New(color.FgGreen).SprintFunc()
	colorYellow = color.New(color.FgYellow).SprintFunc()
	colorBlue   = color.New(color.FgBlue).SprintFunc()
	colorError  = color.New(color.FgRed).SprintFunc()
	colorBold   = color.New(color.Bold).SprintFunc()
	colorCyan   = color.New(color.FgCyan).SprintFunc()
)

var (
	flagConfigPath string
	flagEnvPath    string
	flagVerbose    bool
	flagFormat     string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "grafema",
		Short: "Code property graph analyzer",
		Long:  "Builds and queries a code property graph: discover, index, analyze, enrich, validate.",
	}

	root.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "grafema.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&flagEnvPath, "env", ".env", "path to a .env overlay file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show suppressed diagnostics and enable store debug logging")
	root.PersistentFlags().StringVarP(&flagFormat, "format", "f", "text", "diagnostics output format: text|json|csv")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newGuaranteeCmd())

	return root
}

// app bundles the resources every subcommand needs, resolved once from
// the loaded config (SPEC_FULL.md §4.12: "Orchestrator never reads
// config.Config directly").
type app struct {
	cfg  config.Config
	st   store.Store
	db   *gorm.DB
	log  *obslog.Logger
	diag *diagnostics.Collector
}

func loadApp() (*app, error) {
	cfg, err := config.Load(flagConfigPath, flagEnvPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagVerbose {
		cfg.Debug = true
	}

	st, db, err := openStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &app{
		cfg:  cfg,
		st:   st,
		db:   db,
		log:  obslog.New(cfg.Debug),
		diag: diagnostics.NewCollector(),
	}, nil
}

// openStore resolves cfg.Driver into a store.Store, connecting and
// migrating a gorm.DB-backed store when persistence is requested.
// A nil *gorm.DB means the in-memory driver, which has no guarantee
// table to migrate.
func openStore(cfg config.Store) (store.Store, *gorm.DB, error) {
	switch cfg.Driver {
	case "", "memory":
		return store.NewMemory(), nil, nil
	case "sqlite":
		db, err := gormstore.ConnectSQLite(cfg.DSN, cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		if err := guarantee.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("migrate guarantees: %w", err)
		}
		return gormstore.New(db), db, nil
	case "postgres":
		db, err := gormstore.ConnectPostgres(cfg.DSN, cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		if err := guarantee.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("migrate guarantees: %w", err)
		}
		return gormstore.New(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func reportDiagnostics(a *app) error {
	diags := a.diag.All()
	opts := diagnostics.StrictOptions{Threshold: 50, Verbose: flagVerbose, ShowResolutionChain: flagVerbose}

	switch flagFormat {
	case "json":
		return diagnostics.WriteJSON(os.Stdout, diags)
	case "csv":
		return diagnostics.WriteCSV(os.Stdout, diags)
	default:
		return diagnostics.WriteText(os.Stdout, diags, opts)
	}
}
