package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"fintrack"
	"fintrack/quotes"
	"fintrack/renderer"
)

type holdingCmd struct {
	offline bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "show current positions grouped by asset class" }
func (*holdingCmd) Usage() string {
	return `ft holding [-offline]

  Aggregates the investment ledger into positions and values them at current
  market prices. With -offline, positions are valued at cost.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip price fetches, value positions at cost.")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	rate, prices := marketData(ctx, c.offline, state.Investments)
	positions, _ := fintrack.AggregatePositions(state.Investments, rate, prices)
	printMarkdown(renderer.Holdings(positions))
	return subcommands.ExitSuccess
}

// marketData fetches the exchange rate and current prices for the ledger's
// symbols. Offline, or when a fetch fails, the gaps degrade downstream rather
// than aborting.
func marketData(ctx context.Context, offline bool, txs []fintrack.InvestmentTransaction) (fintrack.ExchangeRate, map[string]float64) {
	if offline {
		return fintrack.ExchangeRate{}, nil
	}
	svc := quotes.NewFinnhub()
	var rate fintrack.ExchangeRate
	if r, ok := svc.USDToILS(ctx); ok {
		rate = fintrack.Rate(r)
	}
	return rate, quotes.CurrentPrices(ctx, svc, fintrack.Symbols(txs))
}
