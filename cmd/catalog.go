package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/cspm-sim/pkg/engine"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active finding catalog as YAML",
	Long: `Print the catalog the report would scan, in the YAML format accepted by
--catalog. Redirect it to a file to start a custom catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		findings, err := activeCatalog(cfg)
		if err != nil {
			return err
		}

		name := "built-in"
		if cfg.Catalog != "" {
			name = cfg.Catalog
		}
		data, err := engine.MarshalCatalog(name, findings)
		if err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCatalogCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		findings, err := engine.LoadCatalog(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		var pass, fail, auto int
		for _, f := range findings {
			switch engine.Dispatch(f) {
			case engine.ActionNone:
				pass++
			case engine.ActionAutoFix:
				fail++
				auto++
			default:
				fail++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog OK: %d findings (%d pass, %d fail, %d auto-remediable)\n",
			len(findings), pass, fail, auto)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(validateCatalogCmd)
	rootCmd.AddCommand(catalogCmd)
}
