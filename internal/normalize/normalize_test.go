package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/covercall/calc-engine/internal/model"
)

// d is a test helper for creating decimals from float64.
func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want decimal.Decimal
	}{
		{"empty", "", decimal.Zero},
		{"plain", "12.34", d(12.34)},
		{"whitespace", "  12.34  ", d(12.34)},
		{"trailing percent", "12.5%", d(12.5)},
		{"negative", "-3", d(-3)},
		{"garbage", "abc", decimal.Zero},
		{"partial garbage", "12x", decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Amount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"empty", "", 0},
		{"integer", "100", 100},
		{"decimal truncates", "100.9", 100},
		{"negative", "-2", -2},
		{"garbage", "lots", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.in); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestVolatility_DefaultAndClamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want decimal.Decimal
	}{
		{"empty defaults to 30", "", d(30)},
		{"garbage defaults to 30", "abc", d(30)},
		{"below floor clamps to 5", "2", d(5)},
		{"negative clamps to 5", "-10", d(5)},
		{"above ceiling clamps to 100", "150", d(100)},
		{"in range passes through", "42.5", d(42.5)},
		{"trailing percent", "42.5%", d(42.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Volatility(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Volatility(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestVolatility_AlwaysInDomain(t *testing.T) {
	// Clamp property: whatever the input, the result is in [5,100].
	inputs := []string{"", "abc", "-1e9", "0", "5", "30", "99.999", "100", "101", "1e6", "NaN", "Inf"}
	for _, in := range inputs {
		got := Volatility(in)
		if got.LessThan(MinImpliedVolatility) || got.GreaterThan(MaxImpliedVolatility) {
			t.Errorf("Volatility(%q) = %s, outside [5,100]", in, got)
		}
	}
}

func TestOptional(t *testing.T) {
	if got := Optional(""); got.Valid {
		t.Errorf("empty input should be absent, got %s", got.Decimal)
	}
	if got := Optional("not a number"); got.Valid {
		t.Errorf("garbage input should be absent, got %s", got.Decimal)
	}
	got := Optional("55.5")
	if !got.Valid || !got.Decimal.Equal(d(55.5)) {
		t.Errorf("Optional(55.5) = %+v, want valid 55.5", got)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want int
	}{
		{"empty", "", 0},
		{"unparsable", "soon", 0},
		{"wrong layout", "03/10/2026", 0},
		{"same day", "2026-03-10", 0},
		{"past", "2026-03-09", 0},
		{"tomorrow", "2026-03-11", 1},
		{"thirty days", "2026-04-09", 30},
		{"next year", "2027-03-10", 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.date, now); got != tt.want {
				t.Errorf("DaysUntil(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestDaysUntil_TimeOfDayIrrelevant(t *testing.T) {
	// The span is between midnights; the hour the form was filled in
	// must not change the answer.
	date := "2026-03-20"
	morning := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	if a, b := DaysUntil(date, morning), DaysUntil(date, evening); a != b {
		t.Errorf("days differ by time of day: morning=%d evening=%d", a, b)
	}
}

func TestNormalize_FullForm(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	raw := model.TradeInputs{
		Symbol:            "  aapl ",
		StockPrice:        "95",
		StrikePrice:       "105",
		Premium:           "2.75",
		DividendPerShare:  "0.25",
		DividendsExpected: "1",
		Shares:            "100",
		ImpliedVolatility: "35",
		ExpirationDate:    "2026-04-09",
		RSI14:             "52",
		ADX14:             "bad value",
	}

	in := Normalize(raw, now)

	if in.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", in.Symbol)
	}
	if !in.StockPrice.Equal(d(95)) || !in.StrikePrice.Equal(d(105)) {
		t.Errorf("prices = %s/%s, want 95/105", in.StockPrice, in.StrikePrice)
	}
	if in.Shares != 100 || in.DividendsExpected != 1 {
		t.Errorf("counts = %d/%d, want 100/1", in.Shares, in.DividendsExpected)
	}
	if !in.ImpliedVolatility.Equal(d(35)) {
		t.Errorf("iv = %s, want 35", in.ImpliedVolatility)
	}
	if in.DaysUntilExpiration != 30 {
		t.Errorf("days = %d, want 30", in.DaysUntilExpiration)
	}
	if !in.RSI14.Valid {
		t.Error("rsi should be present")
	}
	if in.ADX14.Valid {
		t.Error("unparsable adx should be absent, not zero")
	}
	if in.MA20.Valid || in.MA50.Valid || in.MA200.Valid || in.ATR14.Valid {
		t.Error("omitted technical fields should be absent")
	}
}

func TestNormalize_EmptyFormIsAllDefaults(t *testing.T) {
	in := Normalize(model.TradeInputs{}, time.Now())

	if !in.StockPrice.IsZero() || !in.StrikePrice.IsZero() || !in.Premium.IsZero() {
		t.Error("empty numeric fields should normalize to zero")
	}
	if !in.ImpliedVolatility.Equal(d(30)) {
		t.Errorf("iv = %s, want default 30", in.ImpliedVolatility)
	}
	if in.DaysUntilExpiration != 0 {
		t.Errorf("days = %d, want 0", in.DaysUntilExpiration)
	}
}
