package report

import (
	"fmt"
	"strings"

	"github.com/Alias1177/cryptopulse/internal/indicators"
	"github.com/Alias1177/cryptopulse/models"
)

// Prompt builds the analyst prompt for one symbol from its enriched candles.
// The last candle supplies the indicator summary and current price.
func Prompt(symbol, interval string, candles []models.EnrichedCandle, profile indicators.Profile) string {
	if len(candles) == 0 {
		return ""
	}
	last := candles[len(candles)-1]

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a cryptocurrency technical analyst specialised in reading OHLCV data on the %s timeframe.\n", interval)
	fmt.Fprintf(&sb, "Here is the %s OHLCV data for %s (format: date, open, high, low, close, volume, quoteAssetVolume, numberOfTrades, takerBuyBaseVolume):\n", interval, symbol)
	sb.WriteString(OHLCVTable(candles))
	sb.WriteString("\n\nTechnical indicators computed on the latest candle:\n")
	sb.WriteString(IndicatorSummary(last, profile))
	sb.WriteString("\n\n")

	sb.WriteString("Using only this data, write a short technical analysis in plain text. Put figures and the symbol between ** and **, and use no code blocks or markdown headings:\n\n")
	fmt.Fprintf(&sb, "📊 Analysis %s (%s) [Current price: **%s**]:\n\n", strings.ToUpper(symbol), interval, plain(last.Close))
	sb.WriteString(`Current trend: [Bullish/Bearish/Range] with a probability for each (X%, Y%, Z%)
Detected patterns: [list, or "None"]
Key supports: [levels, or "Not identified"]
Key resistances: [levels, or "Not identified"]
Indicators: [RSI, MACD and any other relevant readings, or "Not computed"]

Recommended trade plan (Long or Short):
- Optimal entry (a technical level, not necessarily the current price):
- Stop loss:
- Take profit(s):

Then a riskier plan with a higher potential profit:
- Optimal entry (a technical level, not necessarily the current price):
- Stop loss:
- Take profit(s):

Justify each entry with the indicators and technical levels above.
Do not use the current price as the entry unless the indicators justify it, and never place the entry above the current price.
For every proposed trade give the estimated probability of success, the potential profit in % from entry, stop loss and take profit, and a position size in USDT consistent with that risk.
If you propose both a long and a short, give entry, stop loss, take profit and probability for each.

Conclusion: [one sentence summarising the analysis and the attitude to adopt, with a guess at the next candle]

Keep the answer concise and suited to a chat post. Only state what the data supports.
`)
	return sb.String()
}
