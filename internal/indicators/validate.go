package indicators

import (
	"fmt"
	"math"

	"github.com/Alias1177/cryptopulse/models"
)

// ValidateCandles checks that every required field is present and finite,
// that open and close lie within [low, high], and that open times are
// strictly ascending. An empty series is valid.
func ValidateCandles(candles []models.Candle) error {
	for i, c := range candles {
		if c.OpenTime.IsZero() {
			return fmt.Errorf("%w: candle %d has no open time", ErrInvalidCandle, i)
		}
		for _, f := range []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume} {
			if v := f.of(c); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: candle %d has non-finite %s", ErrInvalidCandle, i, f)
			}
		}
		if c.High < c.Low {
			return fmt.Errorf("%w: candle %d has high %v below low %v", ErrInvalidCandle, i, c.High, c.Low)
		}
		for _, f := range []Field{FieldOpen, FieldClose} {
			if v := f.of(c); v < c.Low || v > c.High {
				return fmt.Errorf("%w: candle %d has %s %v outside [%v, %v]", ErrInvalidCandle, i, f, v, c.Low, c.High)
			}
		}
		if i > 0 && !c.OpenTime.After(candles[i-1].OpenTime) {
			return fmt.Errorf("%w: candle %d opens at %s, previous at %s",
				ErrUnorderedSeries, i, c.OpenTime.Format("2006-01-02 15:04:05"),
				candles[i-1].OpenTime.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

func checkPeriod(name string, period int) error {
	if period < 1 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidPeriod, name, period)
	}
	return nil
}

func checkField(f Field) error {
	if !f.valid() {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, f)
	}
	return nil
}
