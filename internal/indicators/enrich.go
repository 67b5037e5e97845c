package indicators

import (
	"fmt"
	"math"
	"sync"

	"github.com/Alias1177/cryptopulse/models"
)

// Set holds every indicator series computed for one candle series.
type Set struct {
	SMAShort   models.Series
	SMAMedium  models.Series
	SMALong    models.Series
	EMAFast    models.Series
	EMASlow    models.Series
	MACD       MACDResult
	RSI        models.Series
	Bollinger  BollingerBands
	ATR        models.Series
	Stochastic Stochastic
}

// Compute validates the input once and calculates every indicator in the
// profile. Indicators share no state, so they are evaluated concurrently;
// each one still folds its own series strictly left to right.
func Compute(candles []models.Candle, profile Profile) (*Set, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateCandles(candles); err != nil {
		return nil, err
	}

	values := profile.Field.extract(candles)
	set := &Set{}

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { set.SMAShort = smaValues(values, profile.SMAShort) })
	run(func() { set.SMAMedium = smaValues(values, profile.SMAMedium) })
	run(func() { set.SMALong = smaValues(values, profile.SMALong) })
	run(func() { set.EMAFast = emaValues(values, profile.EMAFast) })
	run(func() { set.EMASlow = emaValues(values, profile.EMASlow) })
	run(func() {
		set.MACD = macd(emaValues(values, profile.MACD.Fast), emaValues(values, profile.MACD.Slow), profile.MACD)
	})
	run(func() { set.RSI = rsiValues(values, profile.RSIPeriod) })
	run(func() { set.Bollinger = bollinger(values, profile.Bollinger) })
	run(func() { set.ATR = atr(candles, profile.ATRPeriod) })
	run(func() { set.Stochastic = stochastic(candles, profile.Stochastic) })

	wg.Wait()
	return set, nil
}

// series lists every series in the set with a name, for length checks.
func (s *Set) series() []struct {
	name   string
	values models.Series
} {
	return []struct {
		name   string
		values models.Series
	}{
		{"sma short", s.SMAShort},
		{"sma medium", s.SMAMedium},
		{"sma long", s.SMALong},
		{"ema fast", s.EMAFast},
		{"ema slow", s.EMASlow},
		{"macd line", s.MACD.Line},
		{"macd signal", s.MACD.Signal},
		{"macd histogram", s.MACD.Histogram},
		{"rsi", s.RSI},
		{"bollinger middle", s.Bollinger.Middle},
		{"bollinger upper", s.Bollinger.Upper},
		{"bollinger lower", s.Bollinger.Lower},
		{"atr", s.ATR},
		{"stochastic k", s.Stochastic.K},
		{"stochastic d", s.Stochastic.D},
	}
}

// Align merges the set onto the candles by position. It computes nothing;
// it only refuses series whose length differs from the candles or that hold
// a value that overflowed to Inf or NaN.
func Align(candles []models.Candle, set *Set) ([]models.EnrichedCandle, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: nil indicator set", ErrLengthMismatch)
	}
	for _, s := range set.series() {
		if len(s.values) != len(candles) {
			return nil, fmt.Errorf("%w: %s has %d values for %d candles",
				ErrLengthMismatch, s.name, len(s.values), len(candles))
		}
		for i, v := range s.values {
			if x, ok := v.Get(); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
				return nil, fmt.Errorf("%w: %s at candle %d", ErrNonFiniteResult, s.name, i)
			}
		}
	}

	out := make([]models.EnrichedCandle, len(candles))
	for i, c := range candles {
		out[i] = models.EnrichedCandle{
			Candle:          c,
			SMAShort:        set.SMAShort[i],
			SMAMedium:       set.SMAMedium[i],
			SMALong:         set.SMALong[i],
			EMAFast:         set.EMAFast[i],
			EMASlow:         set.EMASlow[i],
			MACDLine:        set.MACD.Line[i],
			MACDSignal:      set.MACD.Signal[i],
			MACDHistogram:   set.MACD.Histogram[i],
			RSI:             set.RSI[i],
			BollingerMiddle: set.Bollinger.Middle[i],
			BollingerUpper:  set.Bollinger.Upper[i],
			BollingerLower:  set.Bollinger.Lower[i],
			ATR:             set.ATR[i],
			StochasticK:     set.Stochastic.K[i],
			StochasticD:     set.Stochastic.D[i],
		}
	}
	return out, nil
}

// Enrich computes every indicator in the profile and returns one enriched
// candle per input candle. A rejected input returns no partial result.
func Enrich(candles []models.Candle, profile Profile) ([]models.EnrichedCandle, error) {
	set, err := Compute(candles, profile)
	if err != nil {
		return nil, err
	}
	return Align(candles, set)
}
