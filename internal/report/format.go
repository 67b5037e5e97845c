package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/cryptopulse/internal/indicators"
	"github.com/Alias1177/cryptopulse/models"
)

const notAvailable = "N/A"

// fixed renders a defined value with the given decimals, or N/A.
func fixed(v models.Value, places int32) string {
	x, ok := v.Get()
	if !ok {
		return notAvailable
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IndicatorSummary renders the indicators of one enriched candle on a
// single line, bolding every value for chat output.
func IndicatorSummary(c models.EnrichedCandle, p indicators.Profile) string {
	parts := []string{
		fmt.Sprintf("RSI(%d): **%s**", p.RSIPeriod, fixed(c.RSI, 2)),
		fmt.Sprintf("MACD: **%s** (signal: **%s**, histogram: **%s**)",
			fixed(c.MACDLine, 4), fixed(c.MACDSignal, 4), fixed(c.MACDHistogram, 4)),
		fmt.Sprintf("SMA%d: **%s**", p.SMAShort, fixed(c.SMAShort, 4)),
		fmt.Sprintf("SMA%d: **%s**", p.SMAMedium, fixed(c.SMAMedium, 4)),
		fmt.Sprintf("SMA%d: **%s**", p.SMALong, fixed(c.SMALong, 4)),
		fmt.Sprintf("EMA%d: **%s**", p.EMAFast, fixed(c.EMAFast, 4)),
		fmt.Sprintf("EMA%d: **%s**", p.EMASlow, fixed(c.EMASlow, 4)),
		fmt.Sprintf("Bollinger Bands: upper **%s**, middle **%s**, lower **%s**",
			fixed(c.BollingerUpper, 4), fixed(c.BollingerMiddle, 4), fixed(c.BollingerLower, 4)),
		fmt.Sprintf("ATR%d: **%s**", p.ATRPeriod, fixed(c.ATR, 4)),
		fmt.Sprintf("Stoch %%K: **%s**, %%D: **%s**", fixed(c.StochasticK, 2), fixed(c.StochasticD, 2)),
	}
	return strings.Join(parts, ", ")
}

// OHLCVTable renders one CSV-like line per candle:
// date,open,high,low,close,volume,quoteAssetVolume,numberOfTrades,takerBuyBaseVolume
func OHLCVTable(candles []models.EnrichedCandle) string {
	var sb strings.Builder
	for i, c := range candles {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s,%s,%s,%s,%s,%s,%s,%d,%s",
			c.OpenTime.UTC().Format("2006-01-02"),
			plain(c.Open), plain(c.High), plain(c.Low), plain(c.Close),
			decimal.NewFromFloat(c.Volume).StringFixed(2),
			decimal.NewFromFloat(c.QuoteAssetVolume).StringFixed(2),
			c.NumberOfTrades,
			decimal.NewFromFloat(c.TakerBuyBaseVolume).StringFixed(2),
		)
	}
	return sb.String()
}

// IntervalDuration converts an exchange interval such as "15m", "4h", "1d"
// or "1w" into a duration. Unknown intervals return false.
func IntervalDuration(interval string) (time.Duration, bool) {
	if len(interval) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil || n <= 0 {
		return 0, false
	}
	unit := map[byte]time.Duration{
		'm': time.Minute,
		'h': time.Hour,
		'd': 24 * time.Hour,
		'w': 7 * 24 * time.Hour,
	}[interval[len(interval)-1]]
	if unit == 0 {
		return 0, false
	}
	return time.Duration(n) * unit, true
}
