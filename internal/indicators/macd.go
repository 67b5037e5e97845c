package indicators

import (
	"github.com/Alias1177/cryptopulse/models"
)

const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACDParams configures MACD.
//
// By default the signal EMA runs over the MACD line with undefined entries
// replaced by 0, which matches the historical output of this service but
// drags the signal toward zero while the slow EMA warms up. SkipWarmup seeds
// the signal from the first Signal defined MACD values instead.
type MACDParams struct {
	Fast       int
	Slow       int
	Signal     int
	SkipWarmup bool
}

// MACDResult holds the MACD line, signal line and histogram.
type MACDResult struct {
	Line      models.Series
	Signal    models.Series
	Histogram models.Series
}

func (p MACDParams) validate() error {
	if err := checkPeriod("macd fast period", p.Fast); err != nil {
		return err
	}
	if err := checkPeriod("macd slow period", p.Slow); err != nil {
		return err
	}
	return checkPeriod("macd signal period", p.Signal)
}

// MACD calculates fast EMA minus slow EMA, its signal EMA and the histogram.
func MACD(candles []models.Candle, params MACDParams, field Field) (MACDResult, error) {
	if err := params.validate(); err != nil {
		return MACDResult{}, err
	}
	if err := checkField(field); err != nil {
		return MACDResult{}, err
	}
	if err := ValidateCandles(candles); err != nil {
		return MACDResult{}, err
	}
	values := field.extract(candles)
	return macd(emaValues(values, params.Fast), emaValues(values, params.Slow), params), nil
}

func macd(fast, slow models.Series, params MACDParams) MACDResult {
	line := models.Sub(fast, slow)

	var signal models.Series
	if params.SkipWarmup {
		signal = emaSeries(line, params.Signal)
	} else {
		filled := make([]float64, len(line))
		for i, v := range line {
			filled[i] = v.Or(0)
		}
		signal = emaValues(filled, params.Signal)
	}

	return MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: models.Sub(line, signal),
	}
}
