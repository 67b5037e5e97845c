package models

import (
	"encoding/json"
	"math"
	"time"
)

// Candle represents a single OHLCV candle as returned by the exchange.
// The venue fields are carried through unchanged and may be zero.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`

	CloseTime           time.Time `json:"close_time,omitempty"`
	QuoteAssetVolume    float64   `json:"quote_asset_volume,omitempty"`
	NumberOfTrades      int64     `json:"number_of_trades,omitempty"`
	TakerBuyBaseVolume  float64   `json:"taker_buy_base_volume,omitempty"`
	TakerBuyQuoteVolume float64   `json:"taker_buy_quote_volume,omitempty"`
}

// Value is a single indicator reading. The zero Value is undefined,
// meaning there was not enough history to compute it.
type Value struct {
	v  float64
	ok bool
}

// Some returns a defined Value.
func Some(v float64) Value { return Value{v: v, ok: true} }

// None returns an undefined Value.
func None() Value { return Value{} }

// Get returns the reading and whether it is defined.
func (v Value) Get() (float64, bool) { return v.v, v.ok }

// Defined reports whether the value holds a reading.
func (v Value) Defined() bool { return v.ok }

// Or returns the reading, or fallback when undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

// MarshalJSON encodes undefined values as null. Inf and NaN have no JSON
// form and are written as null too.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok || math.IsNaN(v.v) || math.IsInf(v.v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Series is an indicator series index-aligned with a candle series.
type Series []Value

// NewSeries returns an all-undefined series of length n.
func NewSeries(n int) Series {
	return make(Series, n)
}

// Last returns the final value of the series, undefined if empty.
func (s Series) Last() Value {
	if len(s) == 0 {
		return None()
	}
	return s[len(s)-1]
}

// Sub returns a[i]-b[i], undefined wherever either operand is undefined.
func Sub(a, b Series) Series {
	out := NewSeries(len(a))
	for i := range a {
		if i >= len(b) {
			break
		}
		x, okX := a[i].Get()
		y, okY := b[i].Get()
		if okX && okY {
			out[i] = Some(x - y)
		}
	}
	return out
}

// EnrichedCandle is a candle plus every indicator value as of that candle.
type EnrichedCandle struct {
	Candle

	SMAShort  Value `json:"sma_short"`
	SMAMedium Value `json:"sma_medium"`
	SMALong   Value `json:"sma_long"`

	EMAFast Value `json:"ema_fast"`
	EMASlow Value `json:"ema_slow"`

	MACDLine      Value `json:"macd_line"`
	MACDSignal    Value `json:"macd_signal"`
	MACDHistogram Value `json:"macd_histogram"`

	RSI Value `json:"rsi"`

	BollingerMiddle Value `json:"bollinger_middle"`
	BollingerUpper  Value `json:"bollinger_upper"`
	BollingerLower  Value `json:"bollinger_lower"`

	ATR Value `json:"atr"`

	StochasticK Value `json:"stochastic_k"`
	StochasticD Value `json:"stochastic_d"`
}
