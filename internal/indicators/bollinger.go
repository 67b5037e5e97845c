package indicators

import (
	"fmt"
	"math"

	"github.com/Alias1177/cryptopulse/models"
)

const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0
)

// BollingerParams configures the bands.
type BollingerParams struct {
	Period     int
	Multiplier float64
}

// BollingerBands holds the three band series.
type BollingerBands struct {
	Middle models.Series
	Upper  models.Series
	Lower  models.Series
}

func (p BollingerParams) validate() error {
	if err := checkPeriod("bollinger period", p.Period); err != nil {
		return err
	}
	if p.Multiplier <= 0 || math.IsNaN(p.Multiplier) || math.IsInf(p.Multiplier, 0) {
		return fmt.Errorf("%w: bollinger multiplier must be positive, got %v", ErrInvalidParameter, p.Multiplier)
	}
	return nil
}

// Bollinger calculates the middle band (SMA) and upper/lower bands at
// Multiplier population standard deviations over the same trailing window.
func Bollinger(candles []models.Candle, params BollingerParams, field Field) (BollingerBands, error) {
	if err := params.validate(); err != nil {
		return BollingerBands{}, err
	}
	if err := checkField(field); err != nil {
		return BollingerBands{}, err
	}
	if err := ValidateCandles(candles); err != nil {
		return BollingerBands{}, err
	}
	return bollinger(field.extract(candles), params), nil
}

func bollinger(values []float64, params BollingerParams) BollingerBands {
	n := len(values)
	bands := BollingerBands{
		Middle: smaValues(values, params.Period),
		Upper:  models.NewSeries(n),
		Lower:  models.NewSeries(n),
	}
	for i, m := range bands.Middle {
		mean, ok := m.Get()
		if !ok {
			continue
		}
		var sumSq float64
		for _, v := range values[i-params.Period+1 : i+1] {
			d := v - mean
			sumSq += d * d
		}
		sigma := math.Sqrt(sumSq / float64(params.Period))
		bands.Upper[i] = models.Some(mean + params.Multiplier*sigma)
		bands.Lower[i] = models.Some(mean - params.Multiplier*sigma)
	}
	return bands
}
