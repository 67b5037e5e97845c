package indicators

import (
	"github.com/Alias1177/cryptopulse/models"
)

// SMA calculates the simple moving average of field over a trailing window
// of period candles ending at each index.
func SMA(candles []models.Candle, period int, field Field) (models.Series, error) {
	if err := checkPeriod("sma period", period); err != nil {
		return nil, err
	}
	if err := checkField(field); err != nil {
		return nil, err
	}
	if err := ValidateCandles(candles); err != nil {
		return nil, err
	}
	return smaValues(field.extract(candles), period), nil
}

func smaValues(values []float64, period int) models.Series {
	out := models.NewSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		out[i] = models.Some(windowMean(values[i-period+1 : i+1]))
	}
	return out
}

// windowMean sums the window afresh so no rounding drift carries between indices.
func windowMean(window []float64) float64 {
	var sum float64
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}
