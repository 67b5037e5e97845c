package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/cryptopulse/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Technical indicator engine and AI market reports for crypto pairs",
	Long: `Analyzer fetches OHLCV candles for a watchlist, enriches them with
SMA, EMA, MACD, RSI, Bollinger Bands, ATR and the Stochastic oscillator,
asks an LLM for a written analysis and posts it to Discord or Telegram.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.LogLevel)
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and runs it until
// it returns or a shutdown signal arrives.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	rootCmd.AddCommand(newRunCmd(), newIndicatorsCmd(), newScheduleCmd())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command failed")
		return err
	}
	return nil
}

// setupSignalHandling cancels the command context on SIGINT or SIGTERM
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, stopping...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
