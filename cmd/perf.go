package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"fintrack"
	"fintrack/quotes"
	"fintrack/renderer"
)

type perfCmd struct {
	benchmark string
	rng       string
}

func (*perfCmd) Name() string     { return "perf" }
func (*perfCmd) Synopsis() string { return "chart portfolio return against a benchmark" }
func (*perfCmd) Usage() string {
	return `ft perf [-b <benchmark>] [-r <range>]

  Reconstructs the portfolio's historical return over the chosen range and
  compares it to a benchmark symbol. Ranges: 1d, 5d, 1m, 6m, ytd, 1y, 3y,
  5y, all.
`
}

func (c *perfCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "b", "SPY", "Benchmark symbol.")
	f.StringVar(&c.rng, "r", string(fintrack.Range1Y), "Time range.")
}

func (c *perfCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.rng)
	if err != nil {
		return fail(err)
	}
	benchmark := strings.ToUpper(c.benchmark)

	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	svc := quotes.NewFinnhub()
	var rate fintrack.ExchangeRate
	if r, ok := svc.USDToILS(ctx); ok {
		rate = fintrack.Rate(r)
	}

	var session fintrack.SeriesSession
	series := session.Rebuild(ctx, svc, state.Investments, rate, benchmark, rng, fintrack.Today())
	printMarkdown(renderer.Performance(series, benchmark, rng))
	return subcommands.ExitSuccess
}

func parseRange(s string) (fintrack.TimeRange, error) {
	for _, r := range fintrack.TimeRanges {
		if string(r) == strings.ToLower(s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown time range %q", s)
}
