package model

import (
	"encoding/json"
	"testing"
)

func TestRepairInputs_WellFormed(t *testing.T) {
	in := TradeInputs{
		Symbol:            "AAPL",
		StockPrice:        "95",
		StrikePrice:       "105",
		Premium:           "2.75",
		DividendsExpected: "1",
		Shares:            "100",
		ExpirationDate:    "2026-04-09",
		RSI14:             "52",
	}
	data, _ := json.Marshal(in)

	got := RepairInputs(data)
	if got != in {
		t.Errorf("round trip changed inputs:\n got %+v\nwant %+v", got, in)
	}
}

func TestRepairInputs_SalvagesWrongTypes(t *testing.T) {
	// A stored document where some fields were written as numbers and one
	// as a bool. Strings survive, numbers become their string form, the
	// rest fall back to the empty default.
	data := []byte(`{
		"symbol": "MSFT",
		"stock_price": 412.5,
		"strike_price": "430",
		"shares": 100,
		"implied_volatility": true,
		"expiration_date": "2026-06-19"
	}`)

	got := RepairInputs(data)

	if got.Symbol != "MSFT" {
		t.Errorf("symbol = %q, want MSFT", got.Symbol)
	}
	if got.StockPrice != "412.5" {
		t.Errorf("stock_price = %q, want salvaged 412.5", got.StockPrice)
	}
	if got.StrikePrice != "430" {
		t.Errorf("strike_price = %q, want 430", got.StrikePrice)
	}
	if got.Shares != "100" {
		t.Errorf("shares = %q, want salvaged 100", got.Shares)
	}
	if got.ImpliedVolatility != "" {
		t.Errorf("implied_volatility = %q, want empty default for bool", got.ImpliedVolatility)
	}
	if got.ExpirationDate != "2026-06-19" {
		t.Errorf("expiration_date = %q, want 2026-06-19", got.ExpirationDate)
	}
}

func TestRepairInputs_GarbageYieldsDefaults(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not json at all"),
		[]byte(`[1,2,3]`),
		[]byte(`"just a string"`),
		nil,
	} {
		got := RepairInputs(data)
		if got != (TradeInputs{}) {
			t.Errorf("RepairInputs(%q) = %+v, want all defaults", data, got)
		}
	}
}
