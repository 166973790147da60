package fintrack

import (
	"context"
	"sync"

	"fintrack/quotes"
)

// SeriesSession serializes chart rebuilds when the user flips through time
// ranges faster than fetches complete. Each rebuild begins a generation;
// a result commits only if no newer generation began while it was in flight.
type SeriesSession struct {
	mu     sync.Mutex
	gen    uint64
	series PerformanceSeries
}

// Begin starts a new rebuild and invalidates any in-flight one.
func (s *SeriesSession) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Commit stores the series computed by generation gen. A stale generation's
// result is discarded and Commit reports false.
func (s *SeriesSession) Commit(gen uint64, series PerformanceSeries) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.series = series
	return true
}

// Rebuild computes the series for the given range and commits it, unless a
// newer Rebuild began while this one was fetching. Either way it returns the
// session's current series, so the caller always renders the freshest result.
func (s *SeriesSession) Rebuild(ctx context.Context, svc quotes.Service, txs []InvestmentTransaction, rate ExchangeRate, benchmark string, rng TimeRange, now Date) PerformanceSeries {
	gen := s.Begin()
	series := BuildPerformanceSeries(ctx, svc, txs, rate, benchmark, rng, now)
	s.Commit(gen, series)
	return s.Current()
}

// Current returns the last committed series.
func (s *SeriesSession) Current() PerformanceSeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series
}
