package indicators

import (
	"github.com/Alias1177/cryptopulse/models"
)

const DefaultRSIPeriod = 14

// wilderStep applies Wilder smoothing (factor 1/period) to one observation.
func wilderStep(prev, x float64, period int) float64 {
	return (prev*float64(period-1) + x) / float64(period)
}

// splitChange returns the gain and loss parts of a price change.
func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

// rsiState is the running average gain/loss carried between steps.
type rsiState struct {
	avgGain float64
	avgLoss float64
}

func (s rsiState) next(change float64, period int) rsiState {
	gain, loss := splitChange(change)
	return rsiState{
		avgGain: wilderStep(s.avgGain, gain, period),
		avgLoss: wilderStep(s.avgLoss, loss, period),
	}
}

// value converts the state to an RSI reading. No losses saturates at 100.
func (s rsiState) value() float64 {
	if s.avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+s.avgGain/s.avgLoss)
}

// RSI calculates the Relative Strength Index of field. The first reading,
// at index period, uses simple averages of the first period changes; later
// readings use Wilder smoothing.
func RSI(candles []models.Candle, period int, field Field) (models.Series, error) {
	if err := checkPeriod("rsi period", period); err != nil {
		return nil, err
	}
	if err := checkField(field); err != nil {
		return nil, err
	}
	if err := ValidateCandles(candles); err != nil {
		return nil, err
	}
	return rsiValues(field.extract(candles), period), nil
}

func rsiValues(values []float64, period int) models.Series {
	out := models.NewSeries(len(values))
	if len(values) <= period {
		return out
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		gain, loss := splitChange(values[i] - values[i-1])
		gains += gain
		losses += loss
	}
	state := rsiState{
		avgGain: gains / float64(period),
		avgLoss: losses / float64(period),
	}
	out[period] = models.Some(state.value())

	for i := period + 1; i < len(values); i++ {
		state = state.next(values[i]-values[i-1], period)
		out[i] = models.Some(state.value())
	}
	return out
}
