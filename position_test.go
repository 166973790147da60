package fintrack

import (
	"testing"
	"time"
)

var (
	jan10 = NewDate(2025, time.January, 10)
	feb1  = NewDate(2025, time.February, 1)
	mar1  = NewDate(2025, time.March, 1)
)

// TestAverageCostInvariantUnderSell asserts that selling realizes units at
// their average cost without moving the average of what remains.
func TestAverageCostInvariantUnderSell(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(jan10, "AAPL", 10, 100, USD),
		sell(feb1, "AAPL", 4, 150, USD),
	}
	positions, _ := AggregatePositions(txs, ExchangeRate{}, nil)
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}
	p := positions[0]
	if !p.Quantity.Equal(Q(6)) {
		t.Errorf("quantity = %s, want 6", p.Quantity)
	}
	if !p.AvgCost.Equal(usd(100)) {
		t.Errorf("avgCost = %s, want $100", p.AvgCost)
	}
	if !p.Invested.Equal(usd(600)) {
		t.Errorf("invested = %s, want $600", p.Invested)
	}
}

// TestWeightedAverageOnBuys asserts successive buys reaverage the cost.
func TestWeightedAverageOnBuys(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(jan10, "AAPL", 10, 100, USD),
		buy(feb1, "AAPL", 10, 200, USD),
	}
	positions, _ := AggregatePositions(txs, ExchangeRate{}, nil)
	p := positions[0]
	if !p.Quantity.Equal(Q(20)) {
		t.Errorf("quantity = %s, want 20", p.Quantity)
	}
	if !p.AvgCost.Equal(usd(150)) {
		t.Errorf("avgCost = %s, want $150", p.AvgCost)
	}
}

// TestSellToZero asserts a position driven to zero neither divides by zero
// nor lingers in the output, and a later buy starts clean.
func TestSellToZero(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(jan10, "AAPL", 10, 100, USD),
		sell(feb1, "AAPL", 10, 120, USD),
	}
	positions, bySymbol := AggregatePositions(txs, ExchangeRate{}, nil)
	if len(positions) != 0 {
		t.Fatalf("closed position still reported: %+v", positions)
	}
	if len(bySymbol["AAPL"]) != 2 {
		t.Errorf("audit trail lost events, got %d, want 2", len(bySymbol["AAPL"]))
	}

	txs = append(txs, buy(mar1, "AAPL", 5, 80, USD))
	positions, _ = AggregatePositions(txs, ExchangeRate{}, nil)
	p := positions[0]
	if !p.AvgCost.Equal(usd(80)) {
		t.Errorf("avgCost after reopen = %s, want $80", p.AvgCost)
	}
}

// TestAggregateSortsByDate asserts events are folded chronologically no
// matter their order in the ledger.
func TestAggregateSortsByDate(t *testing.T) {
	txs := []InvestmentTransaction{
		sell(feb1, "AAPL", 4, 150, USD),
		buy(jan10, "AAPL", 10, 100, USD),
	}
	positions, _ := AggregatePositions(txs, ExchangeRate{}, nil)
	if !positions[0].AvgCost.Equal(usd(100)) {
		t.Errorf("avgCost = %s, want $100", positions[0].AvgCost)
	}
}

// TestAggregateConvertsCurrency asserts local currency trades are folded in
// reference currency using the given rate.
func TestAggregateConvertsCurrency(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(jan10, "TEVA", 10, 400, ILS),
	}
	positions, _ := AggregatePositions(txs, Rate(4), nil)
	p := positions[0]
	if !p.AvgCost.Equal(usd(100)) {
		t.Errorf("avgCost = %s, want $100", p.AvgCost)
	}
	if !p.Invested.Equal(usd(1000)) {
		t.Errorf("invested = %s, want $1000", p.Invested)
	}
}

func TestAggregateAttachesPrices(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(jan10, "AAPL", 10, 100, USD),
		buy(jan10, "GOOG", 5, 200, USD),
	}
	positions, _ := AggregatePositions(txs, ExchangeRate{}, map[string]float64{"AAPL": 110})
	for _, p := range positions {
		switch p.Symbol {
		case "AAPL":
			if !p.HasPrice || !p.Price.Equal(usd(110)) {
				t.Errorf("AAPL price = %s (has %t), want $110", p.Price, p.HasPrice)
			}
			if !p.MarketValue().Equal(usd(1100)) {
				t.Errorf("AAPL market value = %s, want $1100", p.MarketValue())
			}
		case "GOOG":
			if p.HasPrice {
				t.Errorf("GOOG should have no price")
			}
			// Without a price the position is valued at cost.
			if !p.MarketValue().Equal(usd(1000)) {
				t.Errorf("GOOG market value = %s, want $1000", p.MarketValue())
			}
		}
	}
}

func TestGainPercent(t *testing.T) {
	p := Position{
		Symbol:   "AAPL",
		Quantity: Q(10),
		AvgCost:  usd(100),
		Invested: usd(1000),
		Price:    usd(150),
		HasPrice: true,
	}
	if got := p.GainPercent(); !got.Equal(50) {
		t.Errorf("gain = %s, want +50%%", got)
	}

	free := Position{Symbol: "AIR", Quantity: Q(3), AvgCost: usd(0), Invested: usd(0), Price: usd(10), HasPrice: true}
	if got := free.GainPercent(); got != 0 {
		t.Errorf("zero cost basis gain = %s, want 0", got)
	}
}

func TestCheckSell(t *testing.T) {
	txs := []InvestmentTransaction{
		buy(jan10, "AAPL", 10, 100, USD),
		sell(feb1, "AAPL", 4, 150, USD),
	}
	if err := CheckSell(txs, sell(mar1, "AAPL", 6, 150, USD)); err != nil {
		t.Errorf("selling the remaining 6 should pass, got %v", err)
	}
	if err := CheckSell(txs, sell(mar1, "AAPL", 7, 150, USD)); err == nil {
		t.Errorf("selling 7 of a 6 unit position should fail")
	}
	// A sell dated before the buy has nothing to sell.
	if err := CheckSell(txs, sell(NewDate(2025, time.January, 1), "AAPL", 1, 150, USD)); err == nil {
		t.Errorf("selling before the first buy should fail")
	}
}

func TestByAssetType(t *testing.T) {
	crypto := NewInvestment(jan10, Buy, Crypto, "btc", "Bitcoin", dec(0.5), dec(40000), USD)
	txs := []InvestmentTransaction{
		buy(jan10, "AAPL", 10, 100, USD),
		crypto,
	}
	positions, _ := AggregatePositions(txs, ExchangeRate{}, nil)
	buckets := ByAssetType(positions)
	if len(buckets[Stock]) != 1 || len(buckets[Crypto]) != 1 {
		t.Fatalf("buckets = %v", buckets)
	}
	if buckets[Crypto][0].Symbol != "BTC" {
		t.Errorf("symbol = %q, want case-normalized BTC", buckets[Crypto][0].Symbol)
	}
}
