package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/chartsense/internal/config"
	"github.com/KaramelBytes/chartsense/internal/report"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	noColor bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chartsense",
	Short: "chartsense: describe time series in plain sentences",
	Long: `chartsense reads time series from CSV files and writes short natural-language
summaries of them (overall trend, partial trends, weekday versus weekend
traffic), each sentence scored with a fuzzy validity in [0,1].`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.chartsense/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func loadConfig() error {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	logger.Debug("configuration loaded",
		"eps", cfg.Eps,
		"ema_alpha", cfg.EMAAlpha,
		"centered_half_window", cfg.CenteredHalfWindow,
		"strategies", cfg.Strategies,
		"output_format", cfg.OutputFormat,
	)
	return nil
}

func newPrinter(cmd *cobra.Command) *report.Printer {
	colors := true
	if cfg != nil {
		colors = cfg.Color
	}
	return report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), report.ResolveColors(noColor, colors))
}
