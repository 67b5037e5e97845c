package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Alias1177/cryptopulse/models"
)

var testStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// closesToCandles builds 4h candles whose close follows closes and whose
// high/low sit one unit around the close.
func closesToCandles(closes ...float64) []models.Candle {
	return generateTestCandles(len(closes), func(i int) models.Candle {
		return models.Candle{
			Open:   closes[i],
			High:   closes[i] + 1,
			Low:    closes[i] - 1,
			Close:  closes[i],
			Volume: 1000,
		}
	})
}

// wavyCandles is a deterministic series with trends, pullbacks and uneven ranges.
func wavyCandles(n int) []models.Candle {
	return generateTestCandles(n, func(i int) models.Candle {
		f := float64(i)
		c := 100 + 8*math.Sin(f/4) + 3*math.Cos(f/1.7) + 0.15*f
		return models.Candle{
			Open:   c - 0.4*math.Sin(f),
			High:   c + 1 + float64(i%3)*0.7,
			Low:    c - 1 - float64(i%4)*0.5,
			Close:  c,
			Volume: 1000 + float64(i%7)*120,
		}
	})
}

func generateTestCandles(n int, generator func(int) models.Candle) []models.Candle {
	candles := make([]models.Candle, n)
	for i := 0; i < n; i++ {
		candles[i] = generator(i)
		candles[i].OpenTime = testStart.Add(time.Duration(i) * 4 * time.Hour)
		candles[i].CloseTime = candles[i].OpenTime.Add(4*time.Hour - time.Millisecond)
	}
	return candles
}

func field(candles []models.Candle, f Field) []float64 {
	return f.extract(candles)
}

func requireUndefinedBefore(t *testing.T, s models.Series, first int) {
	t.Helper()
	for i, v := range s {
		if i < first {
			require.False(t, v.Defined(), "index %d should be undefined", i)
		} else {
			require.True(t, v.Defined(), "index %d should be defined", i)
		}
	}
}

func requireAllUndefined(t *testing.T, s models.Series) {
	t.Helper()
	for i, v := range s {
		require.False(t, v.Defined(), "index %d should be undefined", i)
	}
}

// requireMatchesReference compares the defined part of s against a
// reference slice that uses 0 for its own warm-up.
func requireMatchesReference(t *testing.T, s models.Series, ref []float64, delta float64) {
	t.Helper()
	require.Len(t, ref, len(s))
	for i, v := range s {
		if x, ok := v.Get(); ok {
			require.InDelta(t, ref[i], x, delta, "index %d", i)
		}
	}
}

func value(t *testing.T, v models.Value) float64 {
	t.Helper()
	x, ok := v.Get()
	require.True(t, ok, "value should be defined")
	return x
}
