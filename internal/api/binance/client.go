package binance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	httpClient "github.com/Alias1177/cryptopulse/internal/platform/http"
	"github.com/Alias1177/cryptopulse/models"
)

const DefaultBaseURL = "https://api.binance.com/api/v3"

// Client fetches klines from the Binance spot REST API
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Binance client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Binance API client
func NewClient(options ClientOptions) *Client {
	baseURL := strings.TrimRight(options.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetries:      options.MaxRetries,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "binance_client").Logger(),
	}
}

// Name identifies the candle source in logs and reports.
func (c *Client) Name() string { return "binance" }

// NormalizeSymbol turns a watchlist entry such as "btc/usdt" into "BTCUSDT".
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(symbol), "/", ""))
}

// GetCandles fetches the latest limit klines for symbol, oldest first.
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	query := url.Values{}
	query.Set("symbol", NormalizeSymbol(symbol))
	query.Set("interval", interval)
	query.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/klines?" + query.Encode()

	c.logger.Debug().Str("url", endpoint).Msg("Fetching klines")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	candles, err := ParseKlines(body)
	if err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Msg("Error parsing klines")
		return nil, err
	}
	if len(candles) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No klines in response")
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(candles)).Msg("Fetched klines")
	return candles, nil
}

// ParseKlines decodes the kline array format:
// [openTime, open, high, low, close, volume, closeTime, quoteAssetVolume,
// numberOfTrades, takerBuyBaseVolume, takerBuyQuoteVolume, ignore].
func ParseKlines(body []byte) ([]models.Candle, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("parsing klines: invalid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		if msg := root.Get("msg"); msg.Exists() {
			return nil, fmt.Errorf("binance API error %d: %s", root.Get("code").Int(), msg.String())
		}
		return nil, fmt.Errorf("parsing klines: expected array, got %s", root.Type)
	}

	rows := root.Array()
	candles := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		fields := row.Array()
		if len(fields) < 11 {
			return nil, fmt.Errorf("parsing klines: row %d has %d fields, want at least 11", i, len(fields))
		}

		var prices [5]float64
		for j := range prices {
			v, err := strconv.ParseFloat(fields[j+1].String(), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing klines: row %d field %d: %w", i, j+1, err)
			}
			prices[j] = v
		}

		candles = append(candles, models.Candle{
			OpenTime:            time.UnixMilli(fields[0].Int()).UTC(),
			Open:                prices[0],
			High:                prices[1],
			Low:                 prices[2],
			Close:               prices[3],
			Volume:              prices[4],
			CloseTime:           time.UnixMilli(fields[6].Int()).UTC(),
			QuoteAssetVolume:    fields[7].Float(),
			NumberOfTrades:      fields[8].Int(),
			TakerBuyBaseVolume:  fields[9].Float(),
			TakerBuyQuoteVolume: fields[10].Float(),
		})
	}
	return candles, nil
}
