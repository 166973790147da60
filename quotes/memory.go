package quotes

import "context"

// Static is an in-memory Service with fixed answers, for tests and offline
// use.
type Static struct {
	// Prices maps symbol to its current price.
	Prices map[string]float64
	// History maps symbol to its full series; HistoricalSeries returns the
	// points falling inside the requested window.
	History map[string]*Series
	// ILSPerUSD is the exchange rate, zero meaning unknown.
	ILSPerUSD float64
}

// CurrentPrice implements the Service interface.
func (s *Static) CurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	price, ok := s.Prices[symbol]
	return price, ok
}

// HistoricalSeries implements the Service interface.
func (s *Static) HistoricalSeries(ctx context.Context, symbol string, res Resolution, from, to int64) (*Series, bool) {
	full, ok := s.History[symbol]
	if !ok {
		return nil, false
	}
	window := &Series{}
	for i, ts := range full.Timestamps {
		if ts < from || ts > to {
			continue
		}
		window.Timestamps = append(window.Timestamps, ts)
		window.Close = append(window.Close, full.Close[i])
	}
	if window.Len() == 0 {
		return nil, false
	}
	return window, true
}

// USDToILS implements the Service interface.
func (s *Static) USDToILS(ctx context.Context) (float64, bool) {
	if s.ILSPerUSD <= 0 {
		return 0, false
	}
	return s.ILSPerUSD, true
}
