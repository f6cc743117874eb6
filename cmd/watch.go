package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/nsisync/internal/config"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run periodic synchronization until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return err
		}
		setupLogging(cfg)

		orch, database, err := buildOrchestrator()
		if err != nil {
			return err
		}
		defer database.Close()

		interval := watchInterval
		if interval == 0 {
			interval = cfg.SyncInterval()
		}

		orch.StartPeriodic(interval)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		// In-flight run completes; only future ticks are cancelled.
		orch.StopPeriodic()
		slog.Info("shutting down")
		return nil
	},
}

// setupLogging configures the default slog handler from config.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "sync interval (default: from config, 1m)")
	rootCmd.AddCommand(watchCmd)
}
