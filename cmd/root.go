package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/user/cspm-sim/pkg/config"
)

// ErrAborted is returned after an interrupted run has printed its notice
var ErrAborted = errors.New("scan aborted")

// ExitAborted is the process status after an interrupt
const ExitAborted = 130

var rootCmd = &cobra.Command{
	Use:   "cspm-sim",
	Short: "Simulated cloud security posture (CSPM) report",
	Long: `cspm-sim prints a scripted cloud security posture report: a fixed catalog of
findings, a paced scan with simulated remediation, and a dashboard summary.
No cloud APIs are called and nothing is remediated.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runScan,
}

var (
	DebugMode   bool
	cfgFile     string
	catalogFile string
	fastMode    bool
	noColor     bool
	scorePolicy string

	cfg *config.Config
)

// Execute adds all child commands to the root command and runs it until
// completion or interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if errors.Is(err, ErrAborted) {
		os.Exit(ExitAborted)
	}
	cobra.CheckErr(err)
}

// setup installs the logger on the command context and loads configuration
func setup(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if DebugMode {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if catalogFile != "" {
		loaded.Catalog = catalogFile
	}
	if cmd.Flags().Changed("score-policy") {
		loaded.Display.ScorePolicy = scorePolicy
	}
	if noColor {
		loaded.Output.Color = false
	}
	if fastMode {
		loaded.Output.Pacing = false
	}
	cfg = loaded

	logger.Debug().
		Str("config", cfgFile).
		Str("catalog", cfg.Catalog).
		Bool("pacing", cfg.Output.Pacing).
		Msg("configuration loaded")
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	flags.StringVar(&cfgFile, "config", "", "Config file (default ~/.cspm-sim/config.yaml)")
	flags.StringVar(&catalogFile, "catalog", "", "YAML catalog to scan instead of the built-in one")
	flags.BoolVar(&fastMode, "fast", false, "Disable pacing delays")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&scorePolicy, "score-policy", "constant", "Compliance score policy (constant, computed)")
}
