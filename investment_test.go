package fintrack

import (
	"encoding/json"
	"testing"
	"time"
)

func TestInvestmentJSON(t *testing.T) {
	tx := InvestmentTransaction{
		ID:       "z9",
		Side:     Buy,
		Asset:    Crypto,
		Symbol:   "BTC",
		Date:     NewDate(2025, time.March, 5),
		Quantity: Q(0.25),
		Price:    usd(40000),
	}
	raw, err := json.Marshal(tx)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"z9","side":"BUY","asset":"CRYPTO","symbol":"BTC","date":"05-03-2025","quantity":0.25,"price":40000,"currency":"USD"}`
	if string(raw) != want {
		t.Errorf("marshal = %s, want %s", raw, want)
	}

	var back InvestmentTransaction
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Quantity.Equal(tx.Quantity) || !back.Price.Equal(tx.Price) || back.Date != tx.Date {
		t.Errorf("round trip = %+v, want %+v", back, tx)
	}
}

func TestInvestmentValidate(t *testing.T) {
	valid := buy(NewDate(2025, time.March, 5), "AAPL", 10, 100, USD)
	if err := valid.Validate(); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*InvestmentTransaction)
	}{
		{"missing symbol", func(tx *InvestmentTransaction) { tx.Symbol = "" }},
		{"missing date", func(tx *InvestmentTransaction) { tx.Date = Date{} }},
		{"bad side", func(tx *InvestmentTransaction) { tx.Side = "SHORT" }},
		{"bad asset", func(tx *InvestmentTransaction) { tx.Asset = "BOND" }},
		{"zero quantity", func(tx *InvestmentTransaction) { tx.Quantity = Q(0) }},
		{"zero price", func(tx *InvestmentTransaction) { tx.Price = usd(0) }},
		{"bad currency", func(tx *InvestmentTransaction) { tx.Price = M(10, "EUR") }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			if err := tx.Validate(); err == nil {
				t.Errorf("%s accepted", tc.name)
			}
		})
	}
}

func TestHeldQuantity(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(NewDate(2025, time.January, 10), "AAPL", 10, 100, USD),
		sell(NewDate(2025, time.February, 1), "AAPL", 4, 150, USD),
		buy(NewDate(2025, time.March, 1), "AAPL", 2, 120, USD),
	}
	testCases := []struct {
		on   Date
		want Quantity
	}{
		{NewDate(2025, time.January, 9), Q(0)},
		{NewDate(2025, time.January, 10), Q(10)},
		{NewDate(2025, time.February, 15), Q(6)},
		{NewDate(2025, time.March, 1), Q(8)},
	}
	for _, tc := range testCases {
		if got := HeldQuantity(txs, "AAPL", tc.on); !got.Equal(tc.want) {
			t.Errorf("HeldQuantity(%v) = %s, want %s", tc.on, got, tc.want)
		}
	}
}
