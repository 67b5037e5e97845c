package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Alias1177/cryptopulse/internal/analyze"
	"github.com/Alias1177/cryptopulse/models"
)

func newIndicatorsCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "indicators SYMBOL",
		Short: "Print the enriched candle series for one symbol as JSON",
		Long: `Fetches candles for SYMBOL and prints every candle with its indicator
values. Values still in their warm-up window are printed as null.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := cfg.Profile()
			if err != nil {
				return err
			}
			a := analyze.New(newCandleSource(cfg), nil, nil, analyze.Options{
				Interval:    cfg.Interval,
				CandleCount: cfg.CandleCount,
				Profile:     profile,
			})

			enriched, err := a.Indicators(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, tail(enriched, last))
		},
	}

	cmd.Flags().IntVar(&last, "last", 0, "only print the last N candles (0 prints all)")
	return cmd
}

func tail(candles []models.EnrichedCandle, n int) []models.EnrichedCandle {
	if n <= 0 || n >= len(candles) {
		return candles
	}
	return candles[len(candles)-n:]
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
