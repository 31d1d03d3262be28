// Package symbols provides the fixed symbol-metadata lookup table backing
// the lookup endpoint. The table is static; the engine itself never reads
// it — the symbol is cosmetic in calculations.
package symbols

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// tickerRegex matches 1-5 uppercase letters after normalization.
var tickerRegex = regexp.MustCompile(`^[A-Z]{1,5}$`)

var (
	ErrInvalidSymbol = errors.New("symbols: invalid ticker format")
	ErrUnknownSymbol = errors.New("symbols: unknown ticker")
)

// Info is the static metadata for one listed symbol.
type Info struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

var table = map[string]Info{
	"AAPL":  {Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
	"MSFT":  {Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology"},
	"GOOGL": {Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Communication Services"},
	"AMZN":  {Symbol: "AMZN", Name: "Amazon.com, Inc.", Sector: "Consumer Discretionary"},
	"NVDA":  {Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology"},
	"META":  {Symbol: "META", Name: "Meta Platforms, Inc.", Sector: "Communication Services"},
	"TSLA":  {Symbol: "TSLA", Name: "Tesla, Inc.", Sector: "Consumer Discretionary"},
	"AMD":   {Symbol: "AMD", Name: "Advanced Micro Devices, Inc.", Sector: "Technology"},
	"INTC":  {Symbol: "INTC", Name: "Intel Corporation", Sector: "Technology"},
	"JPM":   {Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financials"},
	"BAC":   {Symbol: "BAC", Name: "Bank of America Corporation", Sector: "Financials"},
	"WFC":   {Symbol: "WFC", Name: "Wells Fargo & Company", Sector: "Financials"},
	"V":     {Symbol: "V", Name: "Visa Inc.", Sector: "Financials"},
	"JNJ":   {Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Health Care"},
	"PFE":   {Symbol: "PFE", Name: "Pfizer Inc.", Sector: "Health Care"},
	"UNH":   {Symbol: "UNH", Name: "UnitedHealth Group Incorporated", Sector: "Health Care"},
	"XOM":   {Symbol: "XOM", Name: "Exxon Mobil Corporation", Sector: "Energy"},
	"CVX":   {Symbol: "CVX", Name: "Chevron Corporation", Sector: "Energy"},
	"KO":    {Symbol: "KO", Name: "The Coca-Cola Company", Sector: "Consumer Staples"},
	"PEP":   {Symbol: "PEP", Name: "PepsiCo, Inc.", Sector: "Consumer Staples"},
	"PG":    {Symbol: "PG", Name: "The Procter & Gamble Company", Sector: "Consumer Staples"},
	"WMT":   {Symbol: "WMT", Name: "Walmart Inc.", Sector: "Consumer Staples"},
	"HD":    {Symbol: "HD", Name: "The Home Depot, Inc.", Sector: "Consumer Discretionary"},
	"DIS":   {Symbol: "DIS", Name: "The Walt Disney Company", Sector: "Communication Services"},
	"T":     {Symbol: "T", Name: "AT&T Inc.", Sector: "Communication Services"},
	"VZ":    {Symbol: "VZ", Name: "Verizon Communications Inc.", Sector: "Communication Services"},
	"F":     {Symbol: "F", Name: "Ford Motor Company", Sector: "Consumer Discretionary"},
	"SOFI":  {Symbol: "SOFI", Name: "SoFi Technologies, Inc.", Sector: "Financials"},
	"PLTR":  {Symbol: "PLTR", Name: "Palantir Technologies Inc.", Sector: "Technology"},
	"O":     {Symbol: "O", Name: "Realty Income Corporation", Sector: "Real Estate"},
}

// Lookup returns metadata for a ticker. Input is normalized to upper case
// before validation.
func Lookup(ticker string) (Info, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerRegex.MatchString(t) {
		return Info{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, ticker)
	}
	info, ok := table[t]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, t)
	}
	return info, nil
}
