package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/user/cspm-sim/pkg/config"
	"github.com/user/cspm-sim/pkg/engine"
	"github.com/user/cspm-sim/pkg/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the posture report (same as running with no command)",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	findings, err := activeCatalog(cfg)
	if err != nil {
		return err
	}

	eng, err := newReportEngine(cfg, out)
	if err != nil {
		return err
	}

	res, err := eng.Run(ctx, out, findings)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Scan Aborted.")
		return ErrAborted
	}
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("findings", res.Total).
		Int("passed", res.Passed).
		Int("failed", res.Failed).
		Strs("tickets", res.Tickets).
		Msg("scan finished")
	return nil
}

// activeCatalog returns the configured catalog file or the built-in catalog
func activeCatalog(c *config.Config) ([]engine.Finding, error) {
	if c.Catalog == "" {
		return engine.DefaultCatalog(), nil
	}
	findings, err := engine.LoadCatalog(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", c.Catalog, err)
	}
	return findings, nil
}

func newReportEngine(c *config.Config, out io.Writer) (*engine.ReportEngine, error) {
	policy, err := engine.ParseScorePolicy(c.Display.ScorePolicy)
	if err != nil {
		return nil, err
	}

	var pacer ui.Pacer = ui.NoPacing{}
	if c.Output.Pacing {
		pacer = ui.NewRealtime(ui.DefaultKeystroke)
	}

	return engine.NewReportEngine(engine.Options{
		ScannerName:       c.Display.ScannerName,
		Target:            c.Display.Target,
		TotalAssets:       c.Display.TotalAssets,
		ComplianceScore:   c.Display.ComplianceScore,
		AutoFixedBaseline: c.Display.AutoFixedBaseline,
		ScorePolicy:       policy,
		Styler:            ui.NewStyler(out, c.Output.Color),
		Pacer:             pacer,
		Ticketer:          engine.NewUUIDTicketer(c.Display.TicketPrefix),
	})
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
