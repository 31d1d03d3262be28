// Package normalize turns raw form strings into validated numeric inputs.
//
// Every parse failure degrades to a defined default instead of surfacing an
// error: downstream arithmetic must never see a non-finite value. Required
// numeric fields default to zero, implied volatility defaults to 30 and is
// clamped to its domain, and the optional technical indicators stay absent
// rather than defaulting.
//
// All monetary values use shopspring/decimal — never float64 for money.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/covercall/calc-engine/internal/model"
)

// DefaultImpliedVolatility stands in when the field is empty or unparsable.
var DefaultImpliedVolatility = decimal.NewFromInt(30)

// Implied volatility domain bounds, applied after parsing.
var (
	MinImpliedVolatility = decimal.NewFromInt(5)
	MaxImpliedVolatility = decimal.NewFromInt(100)
)

// dateLayout is the calendar date format accepted for expiration dates.
const dateLayout = "2006-01-02"

// Inputs is the validated numeric view of one trade.
type Inputs struct {
	Symbol string

	StockPrice       decimal.Decimal
	StrikePrice      decimal.Decimal
	Premium          decimal.Decimal
	DividendPerShare decimal.Decimal

	DividendsExpected int64
	Shares            int64

	ImpliedVolatility   decimal.Decimal // clamped to [5,100]
	DaysUntilExpiration int             // >= 0

	ATR14 decimal.NullDecimal
	ADX14 decimal.NullDecimal
	RSI14 decimal.NullDecimal
	MA20  decimal.NullDecimal
	MA50  decimal.NullDecimal
	MA200 decimal.NullDecimal
}

// Normalize parses every field of raw, resolving failures to defaults.
// now anchors the days-until-expiration span; tests inject a fixed clock.
func Normalize(raw model.TradeInputs, now time.Time) Inputs {
	return Inputs{
		Symbol:              strings.ToUpper(strings.TrimSpace(raw.Symbol)),
		StockPrice:          Amount(raw.StockPrice),
		StrikePrice:         Amount(raw.StrikePrice),
		Premium:             Amount(raw.Premium),
		DividendPerShare:    Amount(raw.DividendPerShare),
		DividendsExpected:   Count(raw.DividendsExpected),
		Shares:              Count(raw.Shares),
		ImpliedVolatility:   Volatility(raw.ImpliedVolatility),
		DaysUntilExpiration: DaysUntil(raw.ExpirationDate, now),
		ATR14:               Optional(raw.ATR14),
		ADX14:               Optional(raw.ADX14),
		RSI14:               Optional(raw.RSI14),
		MA20:                Optional(raw.MA20),
		MA50:                Optional(raw.MA50),
		MA200:               Optional(raw.MA200),
	}
}

// Amount parses a decimal currency or ratio field. Empty or unparsable
// input yields zero.
func Amount(s string) decimal.Decimal {
	s = clean(s)
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Count parses an integer field. A decimal value is truncated toward zero,
// matching the form's integer coercion; unparsable input yields zero.
func Count(s string) int64 {
	s = clean(s)
	if s == "" {
		return 0
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return v.IntPart()
}

// Volatility parses the implied volatility percentage. Empty or unparsable
// input yields the default of 30; any parsed value is clamped to [5,100].
func Volatility(s string) decimal.Decimal {
	s = clean(s)
	if s == "" {
		return DefaultImpliedVolatility
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return DefaultImpliedVolatility
	}
	if v.LessThan(MinImpliedVolatility) {
		return MinImpliedVolatility
	}
	if v.GreaterThan(MaxImpliedVolatility) {
		return MaxImpliedVolatility
	}
	return v
}

// Optional parses an optional technical indicator. Empty or unparsable
// input is absent, not zero.
func Optional(s string) decimal.NullDecimal {
	s = clean(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: v, Valid: true}
}

// DaysUntil returns the calendar days from now's date to the expiration
// date, floored at zero. Both ends are taken at local midnight and the span
// is rounded up, so a DST-shortened day still counts as a full day. An
// unparsable date yields zero.
func DaysUntil(dateStr string, now time.Time) int {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return 0
	}
	exp, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiry := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, now.Location())

	diff := expiry.Sub(today)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// clean trims whitespace and a trailing percent sign. The form historically
// tolerated "12.5%" in percentage fields.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSpace(s)
}
