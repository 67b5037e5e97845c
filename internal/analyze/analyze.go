package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/cryptopulse/internal/indicators"
	"github.com/Alias1177/cryptopulse/internal/notifier"
	"github.com/Alias1177/cryptopulse/internal/report"
	"github.com/Alias1177/cryptopulse/models"
)

// ErrNoCandles is returned when a source answers with an empty series.
var ErrNoCandles = errors.New("no candles returned")

// CandleSource fetches OHLCV history, oldest candle first.
type CandleSource interface {
	Name() string
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// Narrator turns a prompt into a written analysis.
type Narrator interface {
	Model() string
	Analyze(ctx context.Context, prompt string) (string, error)
}

// Options controls what each analysis fetches and computes.
type Options struct {
	Interval    string
	CandleCount int
	Profile     indicators.Profile
}

// Result is everything produced for one symbol.
type Result struct {
	Symbol   string
	Candles  []models.EnrichedCandle
	Analysis string
	Message  string
}

// Analyzer runs the fetch, enrich, narrate and publish pipeline.
type Analyzer struct {
	source    CandleSource
	narrator  Narrator
	publisher notifier.Publisher
	opts      Options
	logger    zerolog.Logger
}

// New creates an Analyzer. A nil publisher makes runs report-only.
func New(source CandleSource, narrator Narrator, publisher notifier.Publisher, opts Options) *Analyzer {
	return &Analyzer{
		source:    source,
		narrator:  narrator,
		publisher: publisher,
		opts:      opts,
		logger:    log.With().Str("component", "analyzer").Logger(),
	}
}

// Indicators fetches candles for symbol and returns them enriched.
func (a *Analyzer) Indicators(ctx context.Context, symbol string) ([]models.EnrichedCandle, error) {
	candles, err := a.source.GetCandles(ctx, symbol, a.opts.Interval, a.opts.CandleCount)
	if err != nil {
		return nil, fmt.Errorf("fetch %s candles from %s: %w", symbol, a.source.Name(), err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoCandles)
	}

	enriched, err := indicators.Enrich(candles, a.opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("enrich %s: %w", symbol, err)
	}
	return enriched, nil
}

// AnalyzeSymbol produces and publishes the report for one symbol.
func (a *Analyzer) AnalyzeSymbol(ctx context.Context, symbol string) (*Result, error) {
	return a.analyzeSymbol(ctx, symbol, a.logger)
}

func (a *Analyzer) analyzeSymbol(ctx context.Context, symbol string, logger zerolog.Logger) (*Result, error) {
	logger = logger.With().Str("symbol", symbol).Logger()
	start := time.Now()

	enriched, err := a.Indicators(ctx, symbol)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("candles", len(enriched)).Msg("Indicators computed")

	analysis, err := a.narrator.Analyze(ctx, report.Prompt(symbol, a.opts.Interval, enriched, a.opts.Profile))
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	res := &Result{
		Symbol:   symbol,
		Candles:  enriched,
		Analysis: analysis,
		Message: report.Message(analysis, report.MessageMeta{
			Candles:  len(enriched),
			Interval: a.opts.Interval,
			Model:    a.narrator.Model(),
		}),
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, res.Message); err != nil {
			return res, fmt.Errorf("publish %s: %w", symbol, err)
		}
	}

	logger.Info().Dur("took", time.Since(start)).Msg("Symbol analyzed")
	return res, nil
}

// Run analyzes symbols one after another. A failing symbol is logged and
// skipped; the joined failures are returned once the list is done.
func (a *Analyzer) Run(ctx context.Context, symbols []string) error {
	logger := a.logger.With().Str("run_id", ulid.Make().String()).Logger()
	logger.Info().Int("symbols", len(symbols)).Str("source", a.source.Name()).Str("interval", a.opts.Interval).Msg("Starting analysis run")

	var errs []error
	done := 0
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := a.analyzeSymbol(ctx, symbol, logger); err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("Symbol analysis failed")
			errs = append(errs, err)
			continue
		}
		done++
	}

	logger.Info().Int("succeeded", done).Int("failed", len(symbols)-done).Msg("Analysis run finished")
	return errors.Join(errs...)
}
