package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/cryptopulse/models"
)

func TestValidateCandles(t *testing.T) {
	assert.NoError(t, ValidateCandles(nil))
	assert.NoError(t, ValidateCandles(wavyCandles(50)))

	candles := wavyCandles(5)
	candles[2].Volume = math.NaN()
	assert.ErrorIs(t, ValidateCandles(candles), ErrInvalidCandle)

	candles = wavyCandles(5)
	candles[3].OpenTime = candles[1].OpenTime
	err := ValidateCandles(candles)
	assert.ErrorIs(t, err, ErrUnorderedSeries)
	assert.Contains(t, err.Error(), "candle 3")
}

func TestValidateCandles_PriceRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.Candle)
	}{
		{name: "close above high", mutate: func(c *models.Candle) { c.Close = 20 }},
		{name: "close below low", mutate: func(c *models.Candle) { c.Close = 0 }},
		{name: "open above high", mutate: func(c *models.Candle) { c.Open = c.High + 0.5 }},
		{name: "high below low", mutate: func(c *models.Candle) { c.High, c.Low = c.Low, c.High }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := closesToCandles(10, 11, 12)
			tt.mutate(&candles[2])
			err := ValidateCandles(candles)
			require.ErrorIs(t, err, ErrInvalidCandle)
			assert.Contains(t, err.Error(), "candle 2")
		})
	}

	// A close outside its own range would push %K past 100.
	candles := closesToCandles(10, 11, 12)
	candles[2].Close = 20
	stoch, err := StochasticOscillator(candles, StochasticParams{KPeriod: 2, DPeriod: 1})
	assert.ErrorIs(t, err, ErrInvalidCandle)
	assert.Nil(t, stoch.K)

	flat := closesToCandles(10)
	flat[0].High, flat[0].Low = 10, 10
	assert.NoError(t, ValidateCandles(flat), "a zero-width candle is valid")
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Close ")
	require.NoError(t, err)
	assert.Equal(t, FieldClose, f)

	_, err = ParseField("typical")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDefaultProfileIsValid(t *testing.T) {
	assert.NoError(t, DefaultProfile().Validate())

	p := DefaultProfile()
	p.Field = ""
	assert.ErrorIs(t, p.Validate(), ErrInvalidParameter)
}
