package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Alias1177/cryptopulse/internal/indicators"
)

// Candle sources
const (
	SourceBinance    = "binance"
	SourceTwelveData = "twelvedata"
)

// Config holds all application configuration
type Config struct {
	CandleSource   string
	BinanceBaseURL string
	TwelveAPIKey   string
	Interval       string
	CandleCount    int

	WatchlistFile string
	Symbols       []string // overrides the watchlist file when set

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int

	DiscordWebhookURL string
	TelegramBotToken  string
	TelegramChatID    int64

	ScheduleCron string

	LogLevel       string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int

	PriceField           string
	SMAShort             int
	SMAMedium            int
	SMALong              int
	EMAFast              int
	EMASlow              int
	MACDFast             int
	MACDSlow             int
	MACDSignal           int
	MACDSignalSkipWarmup bool
	RSIPeriod            int
	BBPeriod             int
	BBStdDev             float64
	ATRPeriod            int
	StochK               int
	StochD               int
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the current environment only.
func FromEnv() (*Config, error) {
	var cfg Config

	cfg.CandleSource = strings.ToLower(getEnvWithDefault("CANDLE_SOURCE", SourceBinance))
	cfg.BinanceBaseURL = os.Getenv("BINANCE_BASE_URL")
	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.Interval = getEnvWithDefault("INTERVAL", "4h")
	cfg.CandleCount = getEnvIntWithDefault("CANDLE_COUNT", 70)
	cfg.WatchlistFile = getEnvWithDefault("WATCHLIST_FILE", "./json/crypto.json")
	cfg.Symbols = splitSymbols(os.Getenv("SYMBOLS"))

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.OpenAITemperature = getEnvFloatWithDefault("OPENAI_TEMPERATURE", 0.5)
	cfg.OpenAIMaxTokens = getEnvIntWithDefault("OPENAI_MAX_TOKENS", 500)

	cfg.DiscordWebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	cfg.ScheduleCron = getEnvWithDefault("SCHEDULE_CRON", "0 */4 * * *")

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = time.Duration(getEnvIntWithDefault("REQUEST_TIMEOUT", 30)) * time.Second
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.MaxRetries = getEnvIntWithDefault("MAX_RETRIES", 3)

	def := indicators.DefaultProfile()
	cfg.PriceField = getEnvWithDefault("PRICE_FIELD", string(def.Field))
	cfg.SMAShort = getEnvIntWithDefault("SMA_SHORT", def.SMAShort)
	cfg.SMAMedium = getEnvIntWithDefault("SMA_MEDIUM", def.SMAMedium)
	cfg.SMALong = getEnvIntWithDefault("SMA_LONG", def.SMALong)
	cfg.EMAFast = getEnvIntWithDefault("EMA_FAST", def.EMAFast)
	cfg.EMASlow = getEnvIntWithDefault("EMA_SLOW", def.EMASlow)
	cfg.MACDFast = getEnvIntWithDefault("MACD_FAST", def.MACD.Fast)
	cfg.MACDSlow = getEnvIntWithDefault("MACD_SLOW", def.MACD.Slow)
	cfg.MACDSignal = getEnvIntWithDefault("MACD_SIGNAL", def.MACD.Signal)
	cfg.MACDSignalSkipWarmup = getEnvBoolWithDefault("MACD_SIGNAL_SKIP_WARMUP", false)
	cfg.RSIPeriod = getEnvIntWithDefault("RSI_PERIOD", def.RSIPeriod)
	cfg.BBPeriod = getEnvIntWithDefault("BB_PERIOD", def.Bollinger.Period)
	cfg.BBStdDev = getEnvFloatWithDefault("BB_STD_DEV", def.Bollinger.Multiplier)
	cfg.ATRPeriod = getEnvIntWithDefault("ATR_PERIOD", def.ATRPeriod)
	cfg.StochK = getEnvIntWithDefault("STOCH_K", def.Stochastic.KPeriod)
	cfg.StochD = getEnvIntWithDefault("STOCH_D", def.Stochastic.DPeriod)

	return &cfg, nil
}

// Profile builds the indicator parameters from the configuration.
func (c *Config) Profile() (indicators.Profile, error) {
	field, err := indicators.ParseField(c.PriceField)
	if err != nil {
		return indicators.Profile{}, fmt.Errorf("PRICE_FIELD: %w", err)
	}
	p := indicators.Profile{
		Field:     field,
		SMAShort:  c.SMAShort,
		SMAMedium: c.SMAMedium,
		SMALong:   c.SMALong,
		EMAFast:   c.EMAFast,
		EMASlow:   c.EMASlow,
		MACD: indicators.MACDParams{
			Fast:       c.MACDFast,
			Slow:       c.MACDSlow,
			Signal:     c.MACDSignal,
			SkipWarmup: c.MACDSignalSkipWarmup,
		},
		RSIPeriod: c.RSIPeriod,
		Bollinger: indicators.BollingerParams{
			Period:     c.BBPeriod,
			Multiplier: c.BBStdDev,
		},
		ATRPeriod: c.ATRPeriod,
		Stochastic: indicators.StochasticParams{
			KPeriod: c.StochK,
			DPeriod: c.StochD,
		},
	}
	if err := p.Validate(); err != nil {
		return indicators.Profile{}, err
	}
	return p, nil
}

// Validate checks the settings every command needs: the candle source
// and the indicator profile.
func (c *Config) Validate() error {
	var errs []error
	switch c.CandleSource {
	case SourceBinance:
	case SourceTwelveData:
		if c.TwelveAPIKey == "" {
			errs = append(errs, errors.New("TWELVE_API_KEY is required for the twelvedata source"))
		}
	default:
		errs = append(errs, fmt.Errorf("CANDLE_SOURCE %q: must be %s or %s", c.CandleSource, SourceBinance, SourceTwelveData))
	}
	if c.Interval == "" {
		errs = append(errs, errors.New("INTERVAL is required"))
	}
	if c.CandleCount <= 0 {
		errs = append(errs, fmt.Errorf("CANDLE_COUNT must be positive, got %d", c.CandleCount))
	}
	if c.RequestsPerSec <= 0 {
		errs = append(errs, fmt.Errorf("REQUESTS_PER_SEC must be positive, got %d", c.RequestsPerSec))
	}
	if _, err := c.Profile(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateDelivery checks what a full analysis run needs on top of
// Validate: an LLM key and at least one chat target.
func (c *Config) ValidateDelivery() error {
	var errs []error
	if c.OpenAIAPIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is required"))
	}
	if c.OpenAIMaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("OPENAI_MAX_TOKENS must be positive, got %d", c.OpenAIMaxTokens))
	}
	hasTelegram := c.TelegramBotToken != "" || c.TelegramChatID != 0
	if hasTelegram && (c.TelegramBotToken == "" || c.TelegramChatID == 0) {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together"))
	}
	if c.DiscordWebhookURL == "" && !hasTelegram {
		errs = append(errs, errors.New("no delivery target: set DISCORD_WEBHOOK_URL or TELEGRAM_BOT_TOKEN"))
	}
	return errors.Join(errs...)
}

// Watchlist returns the symbols to analyze: SYMBOLS when set, otherwise
// the contents of the watchlist file.
func (c *Config) Watchlist() ([]string, error) {
	if len(c.Symbols) > 0 {
		return c.Symbols, nil
	}
	return LoadWatchlist(c.WatchlistFile)
}

type watchlistFile struct {
	Crypto []string `yaml:"crypto"`
}

// LoadWatchlist reads a {"crypto": [...]} file. YAML and JSON both parse.
func LoadWatchlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var wl watchlistFile
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}
	var symbols []string
	for _, s := range wl.Crypto {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("watchlist %s has no symbols", path)
	}
	return symbols, nil
}

func splitSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid number, using default")
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
