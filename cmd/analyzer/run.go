package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		symbols []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze the watchlist once and post the reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(symbols) > 0 {
				cfg.Symbols = symbols
			}
			if dryRun {
				if cfg.OpenAIAPIKey == "" {
					return errors.New("OPENAI_API_KEY is required")
				}
			} else if err := cfg.ValidateDelivery(); err != nil {
				return err
			}

			watchlist, err := cfg.Watchlist()
			if err != nil {
				return err
			}
			a, err := newAnalyzer(cfg, dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return a.Run(cmd.Context(), watchlist)
		},
	}

	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "symbols to analyze instead of the watchlist (e.g. BTC/USDT,ETH/USDT)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print reports to stdout instead of posting them")
	return cmd
}
