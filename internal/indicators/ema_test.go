package indicators

import (
	"testing"

	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/cryptopulse/models"
)

func TestEMA(t *testing.T) {
	ema, err := EMA(closesToCandles(1, 2, 3, 4, 5), 3, FieldClose)
	require.NoError(t, err)

	requireUndefinedBefore(t, ema, 2)
	assert.Equal(t, 2.0, value(t, ema[2]))
	assert.Equal(t, 3.0, value(t, ema[3]))
	assert.Equal(t, 4.0, value(t, ema[4]))
}

func TestEMA_SeededWithSMA(t *testing.T) {
	candles := wavyCandles(40)
	ema, err := EMA(candles, 10, FieldClose)
	require.NoError(t, err)
	sma, err := SMA(candles, 10, FieldClose)
	require.NoError(t, err)

	assert.Equal(t, value(t, sma[9]), value(t, ema[9]))
}

func TestEMA_EachStepReadsOnlyPreviousValue(t *testing.T) {
	candles := wavyCandles(60)
	closes := field(candles, FieldClose)
	ema, err := EMA(candles, 12, FieldClose)
	require.NoError(t, err)

	k := emaMultiplier(12)
	for i := 12; i < len(candles); i++ {
		assert.Equal(t, emaStep(value(t, ema[i-1]), closes[i], k), value(t, ema[i]), "index %d", i)
	}
}

func TestEMA_MatchesTalib(t *testing.T) {
	candles := wavyCandles(120)
	for _, period := range []int{3, 12, 26} {
		ema, err := EMA(candles, period, FieldClose)
		require.NoError(t, err)
		requireUndefinedBefore(t, ema, period-1)
		requireMatchesReference(t, ema, talib.Ema(field(candles, FieldClose), period), 1e-9)
	}
}

func TestEMA_ShortSeries(t *testing.T) {
	ema, err := EMA(wavyCandles(11), 12, FieldClose)
	require.NoError(t, err)
	requireAllUndefined(t, ema)
}

func TestEMA_Idempotent(t *testing.T) {
	candles := wavyCandles(80)
	first, err := EMA(candles, 26, FieldClose)
	require.NoError(t, err)
	second, err := EMA(candles, 26, FieldClose)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEMASeries_RestartsAfterGap(t *testing.T) {
	s := models.Series{
		models.None(),
		models.Some(1), models.Some(2), models.Some(3),
		models.None(),
		models.Some(10), models.Some(20),
	}
	out := emaSeries(s, 2)

	assert.False(t, out[0].Defined())
	assert.False(t, out[1].Defined())
	assert.Equal(t, 1.5, value(t, out[2]))
	assert.InDelta(t, 3*2.0/3+1.5/3, value(t, out[3]), 1e-12)
	assert.False(t, out[4].Defined())
	assert.False(t, out[5].Defined())
	assert.Equal(t, 15.0, value(t, out[6]))
}
