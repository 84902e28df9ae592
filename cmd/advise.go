package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/user/cspm-sim/pkg/advisor"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Suggest manual remediation for findings blocked from auto-remediation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if p, _ := cmd.Flags().GetString("provider"); p != "" {
			cfg.Advisor.Provider = p
		}

		findings, err := activeCatalog(cfg)
		if err != nil {
			return err
		}
		blocked := advisor.Blocked(findings)
		if len(blocked) == 0 {
			fmt.Fprintln(out, "No findings require manual approval.")
			return nil
		}

		providerName := cfg.Advisor.Provider
		provider, err := advisor.NewProvider(ctx, providerName, cfg.GetAPIKey(providerName), cfg.Advisor.Model)
		if err != nil {
			return fmt.Errorf("error creating advisor: %w", err)
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		zerolog.Ctx(ctx).Debug().Str("provider", providerName).Int("findings", len(blocked)).Msg("advising")

		fmt.Fprintf(out, "Manual remediation guidance (%s, %d findings)\n", providerName, len(blocked))
		for _, f := range blocked {
			advice, err := provider.Advise(ctx, f)
			if err != nil {
				return fmt.Errorf("advice for %s: %w", f.ID, err)
			}
			fmt.Fprintf(out, "\n[%s] %s (%s)\n", f.ID, f.Check, f.Severity)
			fmt.Fprintln(out, advice)
		}
		return nil
	},
}

func init() {
	adviseCmd.Flags().StringP("provider", "p", "", "Advisor provider ("+strings.Join(advisor.Providers, ", ")+")")
	rootCmd.AddCommand(adviseCmd)
}
