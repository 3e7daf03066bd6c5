package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"riskcast/internal/config"
	"riskcast/internal/logging"
	"riskcast/internal/mcp"
	"riskcast/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "riskcast",
	Short: "riskcast is a Monte-Carlo project risk MCP Server",
	Long: `An MCP Server that estimates the probability of a project finishing within budget and schedule
by sampling cost and duration from triangular distributions around the baseline estimates.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("riskcast starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var m *metrics.Metrics
		if cfg.MetricsAddr != "" {
			m = metrics.New(prometheus.NewRegistry())
			go func() {
				if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
					log.Error().Err(err).Msg("Metrics endpoint stopped")
				}
			}()
		}

		return mcp.NewServer(cfg, m).Start(ctx)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
