package indicators

import (
	"github.com/Alias1177/cryptopulse/models"
)

const (
	DefaultStochasticKPeriod = 14
	DefaultStochasticDPeriod = 3
)

// StochasticParams configures the oscillator.
type StochasticParams struct {
	KPeriod int
	DPeriod int
}

// Stochastic holds the %K and %D series.
type Stochastic struct {
	K models.Series
	D models.Series
}

// StochasticOscillator calculates %K from the trailing KPeriod high/low range
// and %D as the DPeriod simple average of %K. A flat range yields %K = 0.
func StochasticOscillator(candles []models.Candle, params StochasticParams) (Stochastic, error) {
	if err := checkPeriod("stochastic k period", params.KPeriod); err != nil {
		return Stochastic{}, err
	}
	if err := checkPeriod("stochastic d period", params.DPeriod); err != nil {
		return Stochastic{}, err
	}
	if err := ValidateCandles(candles); err != nil {
		return Stochastic{}, err
	}
	return stochastic(candles, params), nil
}

func stochastic(candles []models.Candle, params StochasticParams) Stochastic {
	n := len(candles)
	out := Stochastic{K: models.NewSeries(n), D: models.NewSeries(n)}
	kValues := make([]float64, n)

	for i := params.KPeriod - 1; i < n; i++ {
		window := candles[i-params.KPeriod+1 : i+1]
		lowMin, highMax := window[0].Low, window[0].High
		for _, c := range window[1:] {
			if c.Low < lowMin {
				lowMin = c.Low
			}
			if c.High > highMax {
				highMax = c.High
			}
		}

		k := 0.0
		if highMax != lowMin {
			k = (candles[i].Close - lowMin) / (highMax - lowMin) * 100
		}
		kValues[i] = k
		out.K[i] = models.Some(k)

		// %D only reads %K values already written at or before i.
		if i >= params.KPeriod-1+params.DPeriod-1 {
			out.D[i] = models.Some(windowMean(kValues[i-params.DPeriod+1 : i+1]))
		}
	}
	return out
}
