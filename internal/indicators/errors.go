package indicators

import "errors"

// Validation failures. Every error returned by this package wraps one of these.
var (
	ErrInvalidPeriod    = errors.New("period must be at least 1")
	ErrInvalidParameter = errors.New("invalid indicator parameter")
	ErrUnorderedSeries  = errors.New("candles must be strictly ascending by open time")
	ErrInvalidCandle    = errors.New("invalid candle")
	ErrLengthMismatch   = errors.New("indicator series length does not match candle series")
	ErrNonFiniteResult  = errors.New("indicator result is not finite")
)
