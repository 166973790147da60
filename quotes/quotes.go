// Package quotes provides market prices, historical candles, and the
// USD/ILS exchange rate from pluggable providers.
package quotes

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Resolution is the spacing of points in a historical series.
type Resolution string

const (
	Minutes5 Resolution = "5"
	Hourly   Resolution = "60"
	Daily    Resolution = "D"
	Weekly   Resolution = "W"
	Monthly  Resolution = "M"
)

// Series is a sequence of closing prices. Timestamps and Close are parallel,
// sorted by time ascending.
type Series struct {
	Timestamps []int64
	Close      []float64
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Close)
}

// Service answers price questions. Absence of data is a normal answer, hence
// the ok booleans rather than errors: a provider that cannot price a symbol
// says so and the caller degrades.
type Service interface {
	// CurrentPrice returns the latest price of symbol in USD.
	CurrentPrice(ctx context.Context, symbol string) (float64, bool)
	// HistoricalSeries returns closing prices of symbol between from and
	// to (unix seconds) at the given resolution.
	HistoricalSeries(ctx context.Context, symbol string, res Resolution, from, to int64) (*Series, bool)
	// USDToILS returns how many ILS one USD buys.
	USDToILS(ctx context.Context) (float64, bool)
}

// CurrentPrices fans out CurrentPrice over the given symbols and collects the
// ones the service could answer.
func CurrentPrices(ctx context.Context, svc Service, symbols []string) map[string]float64 {
	var mu sync.Mutex
	prices := make(map[string]float64, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	for _, symbol := range symbols {
		g.Go(func() error {
			price, ok := svc.CurrentPrice(ctx, symbol)
			if !ok {
				return nil
			}
			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return prices
}
