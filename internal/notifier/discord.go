package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/cryptopulse/internal/platform/http"
	"github.com/Alias1177/cryptopulse/internal/report"
)

// Discord posts messages to a Discord channel webhook.
type Discord struct {
	webhookURL string
	client     *httpClient.Client
	logger     zerolog.Logger
}

// NewDiscord creates a webhook publisher. The HTTP client carries the
// shared rate limit and retry policy.
func NewDiscord(webhookURL string, client *httpClient.Client) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     client,
		logger:     log.With().Str("component", "discord_notifier").Logger(),
	}
}

func (d *Discord) Name() string { return "discord" }

// Publish posts the message in chunks of at most report.MaxChunkLen
// characters, in order, stopping at the first failure.
func (d *Discord) Publish(ctx context.Context, message string) error {
	chunks := report.Chunk(message, report.MaxChunkLen)
	for i, chunk := range chunks {
		body, err := json.Marshal(map[string]string{"content": chunk})
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.DoRequest(ctx, req)
		if err != nil {
			d.logger.Error().Err(err).Int("chunk", i+1).Int("chunks", len(chunks)).Msg("Error sending Discord message")
			return fmt.Errorf("discord chunk %d/%d: %w", i+1, len(chunks), err)
		}
		resp.Body.Close()
	}

	d.logger.Info().Int("chunks", len(chunks)).Msg("Message sent to Discord")
	return nil
}
