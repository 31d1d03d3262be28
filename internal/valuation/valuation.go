// Package valuation computes covered-call trade metrics.
//
// The engine is a stateless pure function: normalized inputs go in, derived
// metrics come out. Every division is guarded so degenerate inputs (zero
// stock price, zero days to expiration) produce defined zero results rather
// than errors.
//
// All monetary values use shopspring/decimal — never float64 for money.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/covercall/calc-engine/internal/normalize"
)

// RatioScale is the number of decimal places for ratio and percentage
// rounding. Products and sums stay exact; only divisions are rounded.
var RatioScale int32 = 8

var (
	daysPerYear = decimal.NewFromInt(365)
	hundred     = decimal.NewFromInt(100)
)

// Metrics holds every derived figure for one covered-call position.
// TotalReturn and AnnualizedReturn are fractions (annualized may exceed 1);
// the Pct fields are percentages.
type Metrics struct {
	DaysUntilExpiration    int             `json:"days_until_expiration"`
	DividendPerShareTotal  decimal.Decimal `json:"dividend_per_share_total"`
	GrossCost              decimal.Decimal `json:"gross_cost"`
	NetCost                decimal.Decimal `json:"net_cost"`
	NetCostPerShare        decimal.Decimal `json:"net_cost_per_share"`
	PremiumTotal           decimal.Decimal `json:"premium_total"`
	DividendsTotal         decimal.Decimal `json:"dividends_total"`
	MaxProfitPerShare      decimal.Decimal `json:"max_profit_per_share"`
	MaxProfitTotal         decimal.Decimal `json:"max_profit_total"`
	BreakevenPrice         decimal.Decimal `json:"breakeven_price"`
	UpsideCapValue         decimal.Decimal `json:"upside_cap_value"`
	UpsideCapPct           decimal.Decimal `json:"upside_cap_pct"`
	TotalReturn            decimal.Decimal `json:"total_return"`
	AnnualizedReturn       decimal.Decimal `json:"annualized_return"`
	PremiumPct             decimal.Decimal `json:"premium_pct"`
	PremiumPerDayPct       decimal.Decimal `json:"premium_per_day_pct"`
	DownsideToBreakevenPct decimal.Decimal `json:"downside_to_breakeven_pct"`
}

// Compute derives all metrics from normalized inputs.
func Compute(in normalize.Inputs) Metrics {
	shares := decimal.NewFromInt(in.Shares)

	divPerShareTotal := in.DividendPerShare.Mul(decimal.NewFromInt(in.DividendsExpected))
	grossCost := in.StockPrice.Mul(shares)
	premiumTotal := in.Premium.Mul(shares)
	dividendsTotal := divPerShareTotal.Mul(shares)
	maxProfitPerShare := in.StrikePrice.Sub(in.StockPrice).Add(in.Premium).Add(divPerShareTotal)
	breakeven := in.StockPrice.Sub(in.Premium).Sub(divPerShareTotal)

	m := Metrics{
		DaysUntilExpiration:   in.DaysUntilExpiration,
		DividendPerShareTotal: divPerShareTotal,
		GrossCost:             grossCost,
		NetCost:               grossCost.Sub(premiumTotal),
		NetCostPerShare:       in.StockPrice.Sub(in.Premium),
		PremiumTotal:          premiumTotal,
		DividendsTotal:        dividendsTotal,
		MaxProfitPerShare:     maxProfitPerShare,
		MaxProfitTotal:        maxProfitPerShare.Mul(shares),
		BreakevenPrice:        breakeven,
		UpsideCapValue:        in.StrikePrice.Sub(in.StockPrice),
	}

	if in.StockPrice.IsPositive() {
		m.TotalReturn = maxProfitPerShare.Div(in.StockPrice).Round(RatioScale)
		m.PremiumPct = in.Premium.Div(in.StockPrice).Mul(hundred).Round(RatioScale)
		m.UpsideCapPct = m.UpsideCapValue.Div(in.StockPrice).Mul(hundred).Round(RatioScale)

		downside := in.StockPrice.Sub(breakeven).Div(in.StockPrice).Mul(hundred).Round(RatioScale)
		if downside.IsNegative() {
			downside = decimal.Zero
		}
		m.DownsideToBreakevenPct = downside
	}

	if in.DaysUntilExpiration > 0 {
		days := decimal.NewFromInt(int64(in.DaysUntilExpiration))
		m.PremiumPerDayPct = m.PremiumPct.Div(days).Round(RatioScale)
		m.AnnualizedReturn = m.TotalReturn.Mul(daysPerYear).Div(days).Round(RatioScale)
	}

	return m
}
