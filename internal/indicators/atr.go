package indicators

import (
	"math"

	"github.com/Alias1177/cryptopulse/models"
)

const DefaultATRPeriod = 14

// trueRange is the largest of the candle's range and its distance from the
// previous close.
func trueRange(c models.Candle, prevClose float64) float64 {
	return math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
}

// ATR calculates the Wilder-smoothed Average True Range. True range starts at
// the second candle, so index 0 is always undefined and the first reading
// lands at index period.
func ATR(candles []models.Candle, period int) (models.Series, error) {
	if err := checkPeriod("atr period", period); err != nil {
		return nil, err
	}
	if err := ValidateCandles(candles); err != nil {
		return nil, err
	}
	return atr(candles, period), nil
}

func atr(candles []models.Candle, period int) models.Series {
	out := models.NewSeries(len(candles))
	if len(candles) <= period {
		return out
	}

	// ranges[j] belongs to candle j+1.
	ranges := make([]float64, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		ranges[i-1] = trueRange(candles[i], candles[i-1].Close)
	}

	acc := windowMean(ranges[:period])
	out[period] = models.Some(acc)
	for j := period; j < len(ranges); j++ {
		acc = wilderStep(acc, ranges[j], period)
		out[j+1] = models.Some(acc)
	}
	return out
}
