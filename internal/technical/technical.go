// Package technical scores user-supplied technical indicators for a symbol.
//
// The score is a sum of independently capped components: trend strength
// (ADX, 0-25), momentum (RSI, 0-30), moving-average positioning (0-35) and
// volatility (ATR as a percentage of price, 0-10). The scorer is only
// available when RSI, ADX, at least one moving average and a positive stock
// price are supplied; anything less is absence, not a zero score and not an
// error. Indicators are supplied by the user, never computed here.
package technical

import "fmt"

// Component caps.
const (
	maxMomentum = 30
	maxTrend    = 25
	maxAverages = 35
)

// Grades, by fixed score cutoffs.
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// Input carries the indicator values. Nil pointers mean the indicator was
// not supplied.
type Input struct {
	Price float64

	RSI *float64
	ADX *float64

	MA20  *float64
	MA50  *float64
	MA200 *float64

	ATR *float64
}

// Result is the scored indicator set.
type Result struct {
	Score int      `json:"score"`
	Grade string   `json:"grade"`
	Notes []string `json:"notes"`
}

// Evaluate scores the supplied indicators. ok is false when the required
// inputs are missing; callers must treat that as "cannot render", not as a
// failure.
func Evaluate(in Input) (Result, bool) {
	if in.RSI == nil || in.ADX == nil || in.Price <= 0 {
		return Result{}, false
	}
	if in.MA20 == nil && in.MA50 == nil && in.MA200 == nil {
		return Result{}, false
	}

	trendPts, trendNote := trendScore(*in.ADX)
	momentumPts, momentumNote := momentumScore(*in.RSI)
	avgPts, avgNote := averagesScore(in.Price, in.MA20, in.MA50, in.MA200)

	score := trendPts + momentumPts + avgPts
	notes := []string{trendNote, momentumNote, avgNote}

	if in.ATR != nil {
		volPts, volNote := volatilityScore(*in.ATR, in.Price)
		score += volPts
		notes = append(notes, volNote)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Grade: gradeFor(score), Notes: notes}, true
}

// trendScore maps ADX to 0-25 points. Strength peaks in the 25-35 band and
// tapers above it, where trends tend to be overextended.
func trendScore(adx float64) (int, string) {
	switch {
	case adx < 15:
		return 6, fmt.Sprintf("weak trend (ADX %.1f)", adx)
	case adx < 20:
		return 12, fmt.Sprintf("developing trend (ADX %.1f)", adx)
	case adx < 25:
		return 18, fmt.Sprintf("moderate trend (ADX %.1f)", adx)
	case adx <= 35:
		return maxTrend, fmt.Sprintf("strong trend (ADX %.1f)", adx)
	case adx <= 45:
		return 18, fmt.Sprintf("very strong trend, extension risk (ADX %.1f)", adx)
	default:
		return 12, fmt.Sprintf("extreme trend, prone to snapback (ADX %.1f)", adx)
	}
}

// momentumScore maps RSI to 0-30 points. The balanced 45-60 band scores
// highest; points fall monotonically with distance from it, down to a floor
// at the oversold/overbought extremes.
func momentumScore(rsi float64) (int, string) {
	switch {
	case rsi < 20:
		return 6, fmt.Sprintf("RSI %.1f deeply oversold", rsi)
	case rsi < 30:
		return 12, fmt.Sprintf("RSI %.1f oversold", rsi)
	case rsi < 40:
		return 20, fmt.Sprintf("RSI %.1f soft momentum", rsi)
	case rsi < 45:
		return 26, fmt.Sprintf("RSI %.1f near balance", rsi)
	case rsi <= 60:
		return maxMomentum, fmt.Sprintf("RSI %.1f balanced", rsi)
	case rsi <= 70:
		return 24, fmt.Sprintf("RSI %.1f firm momentum", rsi)
	case rsi <= 80:
		return 14, fmt.Sprintf("RSI %.1f overbought", rsi)
	default:
		return 8, fmt.Sprintf("RSI %.1f extremely overbought", rsi)
	}
}

// averagesScore maps moving-average positioning to 0-35 points. Each
// supplied average contributes a larger bonus when price is above it (6/8/10
// for the 20/50/200-day) and a small one otherwise. When all three are
// present, strictly bullish ordering (ma20 > ma50 > ma200) adds 11, mixed
// ordering adds 5, and strictly bearish ordering adds nothing.
func averagesScore(price float64, ma20, ma50, ma200 *float64) (int, string) {
	pts := 0
	above := 0
	supplied := 0

	for _, ma := range []struct {
		value *float64
		bonus int
	}{
		{ma20, 6},
		{ma50, 8},
		{ma200, 10},
	} {
		if ma.value == nil {
			continue
		}
		supplied++
		if price > *ma.value {
			pts += ma.bonus
			above++
		} else {
			pts += 2
		}
	}

	alignment := ""
	if ma20 != nil && ma50 != nil && ma200 != nil {
		switch {
		case *ma20 > *ma50 && *ma50 > *ma200:
			pts += 11
			alignment = ", bullish alignment"
		case *ma20 < *ma50 && *ma50 < *ma200:
			alignment = ", bearish alignment"
		default:
			pts += 5
			alignment = ", mixed alignment"
		}
	}

	if pts > maxAverages {
		pts = maxAverages
	}

	note := fmt.Sprintf("price above %d of %d moving averages%s", above, supplied, alignment)
	return pts, note
}

// volatilityScore maps ATR as a percentage of price to 0-10 points. Calmer
// tape scores higher.
func volatilityScore(atr, price float64) (int, string) {
	atrPct := atr / price * 100

	var pts int
	switch {
	case atrPct < 1:
		pts = 10
	case atrPct < 2:
		pts = 8
	case atrPct < 3:
		pts = 6
	case atrPct < 5:
		pts = 3
	default:
		pts = 1
	}
	return pts, fmt.Sprintf("ATR %.1f%% of price", atrPct)
}

// gradeFor maps a clamped score to its letter grade.
func gradeFor(score int) string {
	switch {
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 55:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}
