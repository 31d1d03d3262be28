// Package quality scores a covered-call trade on a 0-100 scale.
//
// Five independent factors each map to a signed point delta through an
// ordered band table. Deltas accumulate on a base of 50 and the result is
// clamped. Band tables keep the cuts non-overlapping; the evaluation order
// is fixed so note selection is deterministic.
package quality

import (
	"math"
	"sort"
)

// BaseScore is the starting point before factor deltas apply.
const BaseScore = 50

// Labels, strictly ordered by score threshold.
const (
	LabelStrong     = "Strong"
	LabelReasonable = "Reasonable"
	LabelBorderline = "Borderline"
	LabelWeak       = "Weak"
)

// RiskWarning is the fixed phrase presentation appends when the elevated
// risk flag is set.
const RiskWarning = "elevated risk: size the position accordingly"

// Input is the subset of valuation output the scorer consumes. All values
// are percentages except where named otherwise; these are scoring points,
// not money, so float64 is fine here.
type Input struct {
	PremiumPerDayPct       float64
	DownsideToBreakevenPct float64
	UpsideCapPct           float64
	TotalReturnPct         float64
	ImpliedVolatilityPct   float64
}

// Result is the scored trade.
type Result struct {
	Score                  int      `json:"score"`
	Label                  string   `json:"label"`
	Notes                  []string `json:"notes"`
	HasElevatedRiskWarning bool     `json:"has_elevated_risk_warning"`
}

// band is one row of a factor table. The row applies when value < Upper,
// or value <= Upper when incl is set; the final row uses +Inf. Neutral rows
// carry delta 0 and no note.
type band struct {
	upper float64
	incl  bool
	delta int
	note  string
	risk  bool
}

var premiumPerDayBands = []band{
	{upper: 0.05, delta: -15, note: "premium per day is low"},
	{upper: 0.12, delta: 0},
	{upper: 0.20, incl: true, delta: 10, note: "premium per day is attractive"},
	{upper: math.Inf(1), delta: 15, note: "premium per day is very high", risk: true},
}

var downsideBands = []band{
	{upper: 2, delta: -20, note: "thin downside cushion"},
	{upper: 5, incl: true, delta: 0},
	{upper: 8, incl: true, delta: 10, note: "solid downside cushion"},
	{upper: math.Inf(1), delta: 15, note: "strong downside cushion"},
}

var upsideBands = []band{
	{upper: 1, delta: -10, note: "upside is very capped"},
	{upper: 3, incl: true, delta: -5, note: "upside is capped"},
	{upper: 7, incl: true, delta: 5, note: "fair upside room"},
	{upper: math.Inf(1), delta: 10, note: "healthy upside room"},
}

var totalReturnBands = []band{
	{upper: 8, delta: -10, note: "limited total-return potential"},
	{upper: 12, delta: 0},
	{upper: 20, incl: true, delta: 10, note: "strong total-return potential"},
	{upper: 35, incl: true, delta: 15, note: "very strong total-return potential"},
	{upper: math.Inf(1), delta: 20, note: "exceptional total-return potential"},
}

var volatilityBands = []band{
	{upper: 15, delta: -8, note: "implied volatility low for income"},
	{upper: 25, incl: true, delta: 0},
	{upper: 45, incl: true, delta: 10, note: "implied volatility supports premium"},
	{upper: 65, incl: true, delta: 5, note: "implied volatility elevated", risk: true},
	{upper: math.Inf(1), delta: -5, note: "implied volatility extremely elevated", risk: true},
}

// Score evaluates the five factor tables against in and returns the scored
// trade. Notes are the two contributions with the largest absolute impact,
// ties broken by evaluation order.
func Score(in Input) Result {
	evals := []struct {
		value float64
		table []band
	}{
		{in.PremiumPerDayPct, premiumPerDayBands},
		{in.DownsideToBreakevenPct, downsideBands},
		{in.UpsideCapPct, upsideBands},
		{in.TotalReturnPct, totalReturnBands},
		{in.ImpliedVolatilityPct, volatilityBands},
	}

	type contribution struct {
		delta int
		note  string
	}

	score := BaseScore
	risk := false
	var hits []contribution

	for _, e := range evals {
		b := pick(e.value, e.table)
		score += b.delta
		if b.risk {
			risk = true
		}
		if b.note != "" {
			hits = append(hits, contribution{delta: b.delta, note: b.note})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return abs(hits[i].delta) > abs(hits[j].delta)
	})

	notes := make([]string, 0, 2)
	for _, h := range hits {
		if len(notes) == 2 {
			break
		}
		notes = append(notes, h.note)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:                  score,
		Label:                  labelFor(score),
		Notes:                  notes,
		HasElevatedRiskWarning: risk,
	}
}

// pick returns the first band whose upper bound admits value. Tables end
// with a +Inf row, so the scan always terminates with a match.
func pick(value float64, table []band) band {
	for _, b := range table {
		if value < b.upper || (b.incl && value == b.upper) {
			return b
		}
	}
	return table[len(table)-1]
}

// labelFor maps a clamped score to its label.
func labelFor(score int) string {
	switch {
	case score >= 80:
		return LabelStrong
	case score >= 65:
		return LabelReasonable
	case score >= 50:
		return LabelBorderline
	default:
		return LabelWeak
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
