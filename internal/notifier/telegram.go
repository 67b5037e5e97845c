package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/cryptopulse/internal/report"
)

// TelegramMaxMessageLen is the longest text a single Telegram message holds,
// in UTF-16 code units.
const TelegramMaxMessageLen = 4096

// Telegram sends messages to one chat through a bot.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram authorises the bot and returns a publisher for chatID.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}
	return NewTelegramWithBot(bot, chatID), nil
}

// NewTelegramWithBot wraps an already authorised bot.
func NewTelegramWithBot(bot *tgbotapi.BotAPI, chatID int64) *Telegram {
	t := &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}
	t.logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")
	return t
}

func (t *Telegram) Name() string { return "telegram" }

// Publish sends the message as plain text, split to fit Telegram's limit.
func (t *Telegram) Publish(ctx context.Context, message string) error {
	chunks := report.ChunkUTF16(message, TelegramMaxMessageLen)
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, chunk)); err != nil {
			t.logger.Error().Err(err).Int64("chat_id", t.chatID).Msg("Failed to send Telegram message")
			return fmt.Errorf("telegram chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	t.logger.Info().Int64("chat_id", t.chatID).Int("chunks", len(chunks)).Msg("Message sent to Telegram")
	return nil
}
