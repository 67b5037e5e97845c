package report

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf16"
)

// MaxChunkLen is the longest message a Discord webhook accepts.
const MaxChunkLen = 2000

const disclaimer = "> Any investment decision is taken under the user's sole responsibility; " +
	"the user bears all risks of their financial choices, including the total or partial loss of capital."

const separator = "**-------------------------------------------------**"

// MessageMeta describes how an analysis was produced, for the footer.
type MessageMeta struct {
	Candles  int
	Interval string
	Model    string
}

// Message appends the footer to an analysis.
func Message(analysis string, meta MessageMeta) string {
	span := fmt.Sprintf("%d candles", meta.Candles)
	if d, ok := IntervalDuration(meta.Interval); ok {
		days := float64(meta.Candles) * float64(d) / float64(24*time.Hour)
		span = fmt.Sprintf("~%d days of candles", int(math.Round(days)))
	}
	return fmt.Sprintf("%s\n\n *%s processed on a **%s** timeframe, AI: %s\n\n%s*\n\n%s ",
		strings.TrimSpace(analysis), span, meta.Interval, meta.Model, disclaimer, separator)
}

// Chunk splits a message into pieces of at most max runes, in order.
func Chunk(message string, max int) []string {
	return chunkBy(message, max, func(rune) int { return 1 })
}

// ChunkUTF16 splits a message into pieces of at most max UTF-16 code units,
// the unit Telegram counts its message limit in. Runes outside the Basic
// Multilingual Plane, such as most emoji, take two units and are never split.
func ChunkUTF16(message string, max int) []string {
	return chunkBy(message, max, func(r rune) int {
		if n := utf16.RuneLen(r); n > 0 {
			return n
		}
		return 1
	})
}

func chunkBy(message string, max int, width func(rune) int) []string {
	if max <= 0 || message == "" {
		return nil
	}
	var chunks []string
	start, used := 0, 0
	for i, r := range message {
		w := width(r)
		if used+w > max && i > start {
			chunks = append(chunks, message[start:i])
			start, used = i, 0
		}
		used += w
	}
	return append(chunks, message[start:])
}
