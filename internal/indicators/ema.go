package indicators

import (
	"github.com/Alias1177/cryptopulse/models"
)

// EMA calculates the exponential moving average of field. The first value,
// at index period-1, is seeded with the SMA of the first period prices; each
// later value folds in one price with multiplier 2/(period+1).
func EMA(candles []models.Candle, period int, field Field) (models.Series, error) {
	if err := checkPeriod("ema period", period); err != nil {
		return nil, err
	}
	if err := checkField(field); err != nil {
		return nil, err
	}
	if err := ValidateCandles(candles); err != nil {
		return nil, err
	}
	return emaValues(field.extract(candles), period), nil
}

// emaMultiplier is the smoothing factor k for a period.
func emaMultiplier(period int) float64 {
	return 2 / float64(period+1)
}

// emaStep advances the EMA accumulator by one price.
func emaStep(prev, price, k float64) float64 {
	return price*k + prev*(1-k)
}

func emaValues(values []float64, period int) models.Series {
	out := models.NewSeries(len(values))
	if len(values) < period {
		return out
	}

	k := emaMultiplier(period)
	acc := windowMean(values[:period])
	out[period-1] = models.Some(acc)
	for i := period; i < len(values); i++ {
		acc = emaStep(acc, values[i], k)
		out[i] = models.Some(acc)
	}
	return out
}

// emaSeries smooths a series that may contain undefined values. Each
// contiguous run of defined values is seeded and smoothed on its own, so
// undefined inputs yield undefined outputs and restart the warm-up.
func emaSeries(s models.Series, period int) models.Series {
	out := models.NewSeries(len(s))
	for start := 0; start < len(s); {
		if !s[start].Defined() {
			start++
			continue
		}
		end := start
		run := make([]float64, 0, len(s)-start)
		for end < len(s) {
			v, ok := s[end].Get()
			if !ok {
				break
			}
			run = append(run, v)
			end++
		}
		copy(out[start:end], emaValues(run, period))
		start = end
	}
	return out
}
