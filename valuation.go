package fintrack

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"fintrack/quotes"
)

// TimeRange is one of the fixed chart lookback windows.
type TimeRange string

const (
	Range1D  TimeRange = "1d"
	Range5D  TimeRange = "5d"
	Range1M  TimeRange = "1m"
	Range6M  TimeRange = "6m"
	RangeYTD TimeRange = "ytd"
	Range1Y  TimeRange = "1y"
	Range3Y  TimeRange = "3y"
	Range5Y  TimeRange = "5y"
	RangeAll TimeRange = "all"
)

// TimeRanges lists the ranges in menu order.
var TimeRanges = []TimeRange{Range1D, Range5D, Range1M, Range6M, RangeYTD, Range1Y, Range3Y, Range5Y, RangeAll}

// Window returns the start of the range's lookback window ending at now.
func (r TimeRange) Window(now Date) Date {
	switch r {
	case Range1D:
		return now.AddDays(-1)
	case Range5D:
		return now.AddDays(-5)
	case Range1M:
		return now.AddDays(-31)
	case Range6M:
		return now.AddDays(-183)
	case RangeYTD:
		return NewDate(now.Year(), 1, 1)
	case Range1Y:
		return NewDate(now.Year()-1, now.Month(), now.Day())
	case Range3Y:
		return NewDate(now.Year()-3, now.Month(), now.Day())
	case Range5Y:
		return NewDate(now.Year()-5, now.Month(), now.Day())
	default:
		return NewDate(1970, 1, 1)
	}
}

// Resolution returns the sampling resolution appropriate for the range.
func (r TimeRange) Resolution() quotes.Resolution {
	switch r {
	case Range1D:
		return quotes.Minutes5
	case Range5D:
		return quotes.Hourly
	case Range1M, Range6M, RangeYTD, Range1Y:
		return quotes.Daily
	case Range3Y:
		return quotes.Weekly
	default:
		return quotes.Monthly
	}
}

// PerformanceSeries is a charted comparison of the portfolio's percentage
// return against a benchmark's, per timestamp. The three slices are parallel.
type PerformanceSeries struct {
	Timestamps []int64
	// Portfolio is (value - invested) / invested per timestamp, in percent.
	Portfolio []float64
	// Benchmark is the benchmark's return relative to its first sample in
	// the window, in percent.
	Benchmark []float64
}

// Empty reports whether the series has no points.
func (s PerformanceSeries) Empty() bool { return len(s.Timestamps) == 0 }

// BuildPerformanceSeries reconstructs the portfolio's historical return over
// the given range and compares it to the benchmark symbol.
//
// The benchmark's timestamps define the timeline; every held symbol's series
// is aligned to it by index position, carrying the last known price forward
// when a series runs short. A symbol whose history cannot be fetched
// contributes nothing to portfolio value. The benchmark itself is load
// bearing: without it the result is an empty series rather than a chart that
// is silently wrong.
//
// Prices are assumed quoted in the reference currency; transaction amounts in
// the local currency are converted with rate. This is chart math, so it runs
// on float64 rather than decimals.
func BuildPerformanceSeries(ctx context.Context, svc quotes.Service, txs []InvestmentTransaction, rate ExchangeRate, benchmark string, rng TimeRange, now Date) PerformanceSeries {
	from, to := rng.Window(now).Unix(), now.Unix()
	res := rng.Resolution()

	base, ok := svc.HistoricalSeries(ctx, benchmark, res, from, to)
	if !ok || base.Len() == 0 {
		return PerformanceSeries{}
	}

	var mu sync.Mutex
	histories := make(map[string]*quotes.Series)
	g, gctx := errgroup.WithContext(ctx)
	for _, symbol := range Symbols(txs) {
		g.Go(func() error {
			series, ok := svc.HistoricalSeries(gctx, symbol, res, from, to)
			if !ok {
				return nil
			}
			mu.Lock()
			histories[symbol] = series
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sorted := SortInvestmentsByDate(txs)

	out := PerformanceSeries{
		Timestamps: base.Timestamps,
		Portfolio:  make([]float64, base.Len()),
		Benchmark:  make([]float64, base.Len()),
	}
	first := base.Close[0]
	for i, ts := range base.Timestamps {
		if first != 0 {
			out.Benchmark[i] = (base.Close[i] - first) / first * 100
		}

		var value, invested float64
		quantities := make(map[string]float64)
		for _, tx := range sorted {
			if tx.Date.Unix() > ts {
				break
			}
			qty := tx.Quantity.Float()
			cost := qty * rate.ToUSD(tx.Price).Float()
			switch tx.Side {
			case Buy:
				quantities[tx.Symbol] += qty
				invested += cost
			case Sell:
				quantities[tx.Symbol] -= qty
				invested -= cost
			}
		}
		for symbol, qty := range quantities {
			value += qty * alignedPrice(histories[symbol], i)
		}

		if invested != 0 {
			out.Portfolio[i] = (value - invested) / invested * 100
		}
	}
	return out
}

// alignedPrice is the series' price at index i, carrying the last sample
// forward past the end. A missing or empty series prices at zero.
func alignedPrice(s *quotes.Series, i int) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	if i >= n {
		return s.Close[n-1]
	}
	return s.Close[i]
}
