package indicators

import (
	"testing"

	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSI(t *testing.T) {
	// changes: +1 +1 -1 +1
	rsi, err := RSI(closesToCandles(1, 2, 3, 2, 3), 2, FieldClose)
	require.NoError(t, err)

	requireUndefinedBefore(t, rsi, 2)
	assert.Equal(t, 100.0, value(t, rsi[2]), "no losses in the seed window")
	assert.Equal(t, 50.0, value(t, rsi[3]))
	assert.Equal(t, 75.0, value(t, rsi[4]))
}

func TestRSI_SaturatesWithoutLosses(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
	}{
		{name: "rising", closes: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "flat", closes: []float64{5, 5, 5, 5, 5, 5, 5, 5}},
		{name: "rising then flat", closes: []float64{1, 2, 3, 4, 4, 4, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsi, err := RSI(closesToCandles(tt.closes...), 3, FieldClose)
			require.NoError(t, err)
			for i := 3; i < len(rsi); i++ {
				assert.Equal(t, 100.0, value(t, rsi[i]), "index %d", i)
			}
		})
	}
}

func TestRSI_Bounded(t *testing.T) {
	rsi, err := RSI(wavyCandles(200), DefaultRSIPeriod, FieldClose)
	require.NoError(t, err)
	requireUndefinedBefore(t, rsi, DefaultRSIPeriod)
	for i := DefaultRSIPeriod; i < len(rsi); i++ {
		v := value(t, rsi[i])
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSI_FallingIsZero(t *testing.T) {
	rsi, err := RSI(closesToCandles(9, 8, 7, 6, 5, 4), 3, FieldClose)
	require.NoError(t, err)
	for i := 3; i < len(rsi); i++ {
		assert.Equal(t, 0.0, value(t, rsi[i]))
	}
}

func TestRSI_MatchesTalib(t *testing.T) {
	candles := wavyCandles(150)
	for _, period := range []int{5, 14} {
		rsi, err := RSI(candles, period, FieldClose)
		require.NoError(t, err)
		requireMatchesReference(t, rsi, talib.Rsi(field(candles, FieldClose), period), 1e-8)
	}
}

func TestRSI_ShortSeries(t *testing.T) {
	// period+1 candles are needed for the first change window.
	rsi, err := RSI(wavyCandles(14), 14, FieldClose)
	require.NoError(t, err)
	requireAllUndefined(t, rsi)

	rsi, err = RSI(wavyCandles(15), 14, FieldClose)
	require.NoError(t, err)
	requireUndefinedBefore(t, rsi, 14)
}

func TestRSIState_Next(t *testing.T) {
	s := rsiState{avgGain: 1, avgLoss: 0.5}.next(-2, 4)
	assert.Equal(t, 0.75, s.avgGain)
	assert.Equal(t, 0.875, s.avgLoss)
}
