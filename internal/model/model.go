// Package model defines the domain types shared across the calculation engine.
//
// Trade inputs stay raw strings end to end: the form submits strings, the
// snapshot stores strings, and only the normalizer turns them into numbers.
// That keeps the persistence layer free of parsing policy.
package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// TradeInputs is one covered-call trade exactly as entered. Every field is a
// raw string and every field is optional; parsing and defaulting happen in
// the normalize package.
type TradeInputs struct {
	Symbol            string `json:"symbol"`
	StockPrice        string `json:"stock_price"`
	StrikePrice       string `json:"strike_price"`
	Premium           string `json:"premium"`
	DividendPerShare  string `json:"dividend_per_share"`
	DividendsExpected string `json:"dividends_expected"`
	Shares            string `json:"shares"`
	ImpliedVolatility string `json:"implied_volatility"`
	ExpirationDate    string `json:"expiration_date"`

	// Optional technical indicators, empty when not supplied.
	ATR14 string `json:"atr14,omitempty"`
	ADX14 string `json:"adx14,omitempty"`
	RSI14 string `json:"rsi14,omitempty"`
	MA20  string `json:"ma20,omitempty"`
	MA50  string `json:"ma50,omitempty"`
	MA200 string `json:"ma200,omitempty"`
}

// Snapshot is the durable record of the last-entered inputs under one key.
type Snapshot struct {
	ID        string      `json:"id" db:"id"`
	Inputs    TradeInputs `json:"inputs" db:"inputs"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// RepairInputs decodes a stored inputs document leniently. A well-formed
// document decodes as-is; a document with wrongly typed fields is salvaged
// field-by-field (numbers become their string form, anything else becomes
// the empty default); unparsable bytes yield all defaults. Stored data is
// never rejected wholesale.
func RepairInputs(data []byte) TradeInputs {
	var in TradeInputs
	if err := json.Unmarshal(data, &in); err == nil {
		return in
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return TradeInputs{}
	}

	in = TradeInputs{}
	fields := map[string]*string{
		"symbol":             &in.Symbol,
		"stock_price":        &in.StockPrice,
		"strike_price":       &in.StrikePrice,
		"premium":            &in.Premium,
		"dividend_per_share": &in.DividendPerShare,
		"dividends_expected": &in.DividendsExpected,
		"shares":             &in.Shares,
		"implied_volatility": &in.ImpliedVolatility,
		"expiration_date":    &in.ExpirationDate,
		"atr14":              &in.ATR14,
		"adx14":              &in.ADX14,
		"rsi14":              &in.RSI14,
		"ma20":               &in.MA20,
		"ma50":               &in.MA50,
		"ma200":              &in.MA200,
	}

	for key, dst := range fields {
		switch v := raw[key].(type) {
		case string:
			*dst = v
		case float64:
			*dst = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return in
}
