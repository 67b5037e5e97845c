package indicators

import (
	"fmt"
	"strings"

	"github.com/Alias1177/cryptopulse/models"
)

// Field selects which candle price an indicator reads.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// ParseField converts a config string such as "close" into a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.valid() {
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, s)
	}
	return f, nil
}

func (f Field) valid() bool {
	switch f {
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return true
	}
	return false
}

func (f Field) of(c models.Candle) float64 {
	switch f {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	case FieldVolume:
		return c.Volume
	default:
		return c.Close
	}
}

// extract pulls one price per candle, in order.
func (f Field) extract(candles []models.Candle) []float64 {
	values := make([]float64, len(candles))
	for i, c := range candles {
		values[i] = f.of(c)
	}
	return values
}
