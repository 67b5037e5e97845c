package main

import (
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/cryptopulse/internal/analyze"
	"github.com/Alias1177/cryptopulse/internal/api/binance"
	"github.com/Alias1177/cryptopulse/internal/api/openai"
	"github.com/Alias1177/cryptopulse/internal/api/twelvedata"
	"github.com/Alias1177/cryptopulse/internal/config"
	"github.com/Alias1177/cryptopulse/internal/notifier"
	httpClient "github.com/Alias1177/cryptopulse/internal/platform/http"
)

const maxRetryTimeout = 30 * time.Second

func newCandleSource(cfg *config.Config) analyze.CandleSource {
	if cfg.CandleSource == config.SourceTwelveData {
		return twelvedata.NewClient(twelvedata.ClientOptions{
			APIKey:          cfg.TwelveAPIKey,
			RequestTimeout:  cfg.RequestTimeout,
			RequestsPerSec:  cfg.RequestsPerSec,
			MaxRetries:      cfg.MaxRetries,
			MaxRetryTimeout: maxRetryTimeout,
		})
	}
	return binance.NewClient(binance.ClientOptions{
		BaseURL:         cfg.BinanceBaseURL,
		RequestTimeout:  cfg.RequestTimeout,
		RequestsPerSec:  cfg.RequestsPerSec,
		MaxRetries:      cfg.MaxRetries,
		MaxRetryTimeout: maxRetryTimeout,
	})
}

func newNarrator(cfg *config.Config) *openai.Client {
	return openai.NewClient(openai.ClientOptions{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		Temperature: float32(cfg.OpenAITemperature),
		MaxTokens:   cfg.OpenAIMaxTokens,
	})
}

// newPublisher builds every configured chat sink. With dryRun the report
// goes to out instead.
func newPublisher(cfg *config.Config, dryRun bool, out io.Writer) (notifier.Publisher, error) {
	if dryRun {
		return notifier.Writer{W: out}, nil
	}

	var sinks notifier.Multi
	if cfg.DiscordWebhookURL != "" {
		client := httpClient.NewClient(httpClient.ClientOptions{
			Timeout:         cfg.RequestTimeout,
			RequestsPerSec:  cfg.RequestsPerSec,
			MaxRetries:      cfg.MaxRetries,
			MaxRetryTimeout: maxRetryTimeout,
		})
		sinks = append(sinks, notifier.NewDiscord(cfg.DiscordWebhookURL, client))
	}
	if cfg.TelegramBotToken != "" {
		tg, err := notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, tg)
	}
	log.Info().Str("publisher", sinks.Name()).Msg("Delivery configured")
	return sinks, nil
}

func newAnalyzer(cfg *config.Config, dryRun bool, out io.Writer) (*analyze.Analyzer, error) {
	profile, err := cfg.Profile()
	if err != nil {
		return nil, err
	}
	publisher, err := newPublisher(cfg, dryRun, out)
	if err != nil {
		return nil, err
	}
	return analyze.New(newCandleSource(cfg), newNarrator(cfg), publisher, analyze.Options{
		Interval:    cfg.Interval,
		CandleCount: cfg.CandleCount,
		Profile:     profile,
	}), nil
}
