package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termfx/grafema/internal/diagnostics"
	"github.com/termfx/grafema/internal/guarantee"
)

func newGuaranteeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guarantee",
		Short: "Manage and run Datalog and contract guarantees",
	}
	cmd.AddCommand(
		newGuaranteeCreateCmd(),
		newGuaranteeListCmd(),
		newGuaranteeCheckCmd(),
		newGuaranteeDeleteCmd(),
	)
	return cmd
}

func guaranteeRunner(a *app) (*guarantee.Runner, error) {
	if a.db == nil {
		return nil, fmt.Errorf("guarantee: the memory store driver has no guarantee table; configure store.driver: sqlite or postgres")
	}
	return guarantee.NewRunner(a.db, a.st), nil
}

func newGuaranteeCreateCmd() *cobra.Command {
	var (
		id, name, family, severity, description string
		rulePath, schemaPath                    string
		targets                                 []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Datalog or contract guarantee",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			r, err := guaranteeRunner(a)
			if err != nil {
				return err
			}

			def := guarantee.Definition{
				ID:          id,
				Name:        name,
				Family:      guarantee.Family(family),
				Severity:    severity,
				Description: description,
				Targets:     targets,
			}
			if rulePath != "" {
				src, err := os.ReadFile(rulePath)
				if err != nil {
					return fmt.Errorf("guarantee create: read rule: %w", err)
				}
				def.Rule = string(src)
			}
			if schemaPath != "" {
				src, err := os.ReadFile(schemaPath)
				if err != nil {
					return fmt.Errorf("guarantee create: read schema: %w", err)
				}
				def.Schema = src
			}

			if err := r.CreateGuarantee(context.Background(), def); err != nil {
				return fmt.Errorf("guarantee create: %w", err)
			}
			fmt.Printf("%s created guarantee %s\n", colorGreen("✓"), colorBold(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "unique guarantee id (required)")
	cmd.Flags().StringVar(&name, "name", "", "human-readable name")
	cmd.Flags().StringVar(&family, "family", "", "datalog|guarantee:queue|guarantee:api|guarantee:permission")
	cmd.Flags().StringVar(&severity, "severity", string(diagnostics.SeverityError), "fatal|error|warning|info")
	cmd.Flags().StringVar(&description, "description", "", "shown as the diagnostic suggestion on violation")
	cmd.Flags().StringVar(&rulePath, "rule", "", "path to a Datalog rule file (datalog family)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON schema file (contract families)")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "governed node id (contract families, repeatable)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("family")

	return cmd
}

func newGuaranteeListCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted guarantees",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			r, err := guaranteeRunner(a)
			if err != nil {
				return err
			}

			recs, err := r.FindGuarantees(context.Background(), guarantee.Filter{Family: guarantee.Family(family)})
			if err != nil {
				return fmt.Errorf("guarantee list: %w", err)
			}
			for _, rec := range recs {
				fmt.Printf("%s %s  %s  %s\n", colorCyan("•"), colorBold(rec.ID), rec.Family, rec.Severity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "filter by family")
	return cmd
}

func newGuaranteeCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [id]",
		Short: "Evaluate one guarantee, or every guarantee if id is omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			r, err := guaranteeRunner(a)
			if err != nil {
				return err
			}
			ctx := context.Background()

			var result []diagnostics.Diagnostic
			if len(args) == 1 {
				got, err := r.CheckGuarantee(ctx, args[0])
				if err != nil {
					return fmt.Errorf("guarantee check: %w", err)
				}
				result = got
			} else {
				got, err := r.CheckAllGuarantees(ctx)
				if err != nil {
					return fmt.Errorf("guarantee check: %w", err)
				}
				result = got
			}

			if len(result) == 0 {
				fmt.Printf("%s no violations\n", colorGreen("✓"))
				return nil
			}
			return diagnostics.WriteText(os.Stdout, result, diagnostics.StrictOptions{Threshold: 50, Verbose: flagVerbose})
		},
	}
	return cmd
}

func newGuaranteeDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a guarantee, cascading its GOVERNS edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			r, err := guaranteeRunner(a)
			if err != nil {
				return err
			}
			if err := r.DeleteGuarantee(context.Background(), args[0]); err != nil {
				return fmt.Errorf("guarantee delete: %w", err)
			}
			fmt.Printf("%s deleted guarantee %s\n", colorGreen("✓"), colorBold(args[0]))
			return nil
		},
	}
	return cmd
}
