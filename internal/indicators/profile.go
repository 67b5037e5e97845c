package indicators

// Profile is the full set of parameters used to enrich a candle series.
type Profile struct {
	Field Field

	SMAShort  int
	SMAMedium int
	SMALong   int

	EMAFast int
	EMASlow int

	MACD       MACDParams
	RSIPeriod  int
	Bollinger  BollingerParams
	ATRPeriod  int
	Stochastic StochasticParams
}

// DefaultProfile returns the standard periods: SMA 20/50/200, EMA 12/26,
// MACD 12/26/9, RSI 14, Bollinger 20x2, ATR 14, Stochastic 14/3, on close.
func DefaultProfile() Profile {
	return Profile{
		Field:     FieldClose,
		SMAShort:  20,
		SMAMedium: 50,
		SMALong:   200,
		EMAFast:   12,
		EMASlow:   26,
		MACD: MACDParams{
			Fast:   DefaultMACDFastPeriod,
			Slow:   DefaultMACDSlowPeriod,
			Signal: DefaultMACDSignalPeriod,
		},
		RSIPeriod: DefaultRSIPeriod,
		Bollinger: BollingerParams{
			Period:     DefaultBollingerPeriod,
			Multiplier: DefaultBollingerMultiplier,
		},
		ATRPeriod: DefaultATRPeriod,
		Stochastic: StochasticParams{
			KPeriod: DefaultStochasticKPeriod,
			DPeriod: DefaultStochasticDPeriod,
		},
	}
}

// Validate checks every period and parameter in the profile.
func (p Profile) Validate() error {
	if err := checkField(p.Field); err != nil {
		return err
	}
	for _, c := range []struct {
		name   string
		period int
	}{
		{"sma short period", p.SMAShort},
		{"sma medium period", p.SMAMedium},
		{"sma long period", p.SMALong},
		{"ema fast period", p.EMAFast},
		{"ema slow period", p.EMASlow},
		{"rsi period", p.RSIPeriod},
		{"atr period", p.ATRPeriod},
		{"stochastic k period", p.Stochastic.KPeriod},
		{"stochastic d period", p.Stochastic.DPeriod},
	} {
		if err := checkPeriod(c.name, c.period); err != nil {
			return err
		}
	}
	if err := p.MACD.validate(); err != nil {
		return err
	}
	return p.Bollinger.validate()
}
