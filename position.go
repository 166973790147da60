package fintrack

import (
	"slices"
)

// Position is the aggregate state of one instrument after replaying its
// events, in reference currency.
type Position struct {
	Symbol   string
	Name     string
	Asset    AssetType
	Quantity Quantity
	// AvgCost is the average purchase price per unit still held.
	AvgCost Money
	// Invested is the cost basis of the current holding, always
	// Quantity * AvgCost.
	Invested Money
	// Price is the current per-unit market price, when one is known.
	Price    Money
	HasPrice bool
}

// MarketValue is the position valued at the current price, falling back to
// average cost when no price is known.
func (p Position) MarketValue() Money {
	if !p.HasPrice {
		return p.Invested
	}
	return p.Price.Mul(p.Quantity)
}

// UnrealizedGain is market value minus cost basis.
func (p Position) UnrealizedGain() Money {
	return p.MarketValue().Sub(p.Invested)
}

// GainPercent is the unrealized gain relative to cost basis. A position with
// no cost basis reports zero rather than dividing by it.
func (p Position) GainPercent() Percent {
	invested := p.Invested.Float()
	if invested == 0 {
		return 0
	}
	return Percent(p.UnrealizedGain().Float() / invested * 100)
}

// SortInvestmentsByDate returns the events in chronological order, preserving
// insertion order within a day.
func SortInvestmentsByDate(txs []InvestmentTransaction) []InvestmentTransaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b InvestmentTransaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case b.Date.Before(a.Date):
			return 1
		}
		return 0
	})
	return sorted
}

// AggregatePositions replays the investment ledger and folds it into one
// position per symbol, converting every amount into the reference currency
// with the given rate. Current prices, in reference currency, come from the
// prices map; symbols absent from it keep HasPrice false. Positions driven to
// zero quantity are dropped. The second return value groups the events by
// symbol, chronologically, for per-instrument views.
func AggregatePositions(txs []InvestmentTransaction, rate ExchangeRate, prices map[string]float64) ([]Position, map[string][]InvestmentTransaction) {
	sorted := SortInvestmentsByDate(txs)

	byID := make(map[string]*Position)
	bySymbol := make(map[string][]InvestmentTransaction)
	var order []string

	for _, tx := range sorted {
		bySymbol[tx.Symbol] = append(bySymbol[tx.Symbol], tx)
		p, ok := byID[tx.Symbol]
		if !ok {
			p = &Position{
				Symbol:   tx.Symbol,
				Asset:    tx.Asset,
				AvgCost:  M(0, ReferenceCurrency),
				Invested: M(0, ReferenceCurrency),
			}
			byID[tx.Symbol] = p
			order = append(order, tx.Symbol)
		}
		if tx.Name != "" {
			p.Name = tx.Name
		}

		price := rate.ToUSD(tx.Price)
		switch tx.Side {
		case Buy:
			// Reaverage: the new holding's cost basis is the old
			// basis plus the purchase, spread over all units.
			p.Invested = p.Invested.Add(price.Mul(tx.Quantity))
			p.Quantity = p.Quantity.Add(tx.Quantity)
			if p.Quantity.IsPositive() {
				p.AvgCost = p.Invested.Div(p.Quantity)
			} else {
				p.AvgCost = M(0, ReferenceCurrency)
			}
		case Sell:
			// A sale realizes units at their average cost; the
			// average of what remains does not move, and it stays
			// defined across a sell-to-zero so a later buy
			// reaverages cleanly.
			p.Invested = p.Invested.Sub(p.AvgCost.Mul(tx.Quantity))
			p.Quantity = p.Quantity.Sub(tx.Quantity)
		}
	}

	var positions []Position
	for _, symbol := range order {
		p := byID[symbol]
		// Closed positions drop out. An overselled, negative position is
		// kept visible rather than silently repaired.
		if p.Quantity.IsZero() {
			continue
		}
		if current, ok := prices[symbol]; ok {
			p.Price = M(current, ReferenceCurrency)
			p.HasPrice = true
		}
		positions = append(positions, *p)
	}
	return positions, bySymbol
}

// ByAssetType rebuckets positions per asset class, keeping their relative
// order, in the display order of AssetTypes.
func ByAssetType(positions []Position) map[AssetType][]Position {
	buckets := make(map[AssetType][]Position, len(AssetTypes))
	for _, p := range positions {
		buckets[p.Asset] = append(buckets[p.Asset], p)
	}
	return buckets
}

// TotalMarketValue sums the market value of the given positions.
func TotalMarketValue(positions []Position) Money {
	total := M(0, ReferenceCurrency)
	for _, p := range positions {
		total = total.Add(p.MarketValue())
	}
	return total
}

// TotalInvested sums the cost basis of the given positions.
func TotalInvested(positions []Position) Money {
	total := M(0, ReferenceCurrency)
	for _, p := range positions {
		total = total.Add(p.Invested)
	}
	return total
}
