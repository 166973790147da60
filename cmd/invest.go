package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"fintrack"
)

// investFlags are the flags shared by buy and sell.
type investFlags struct {
	date     string
	asset    string
	symbol   string
	name     string
	quantity string
	price    string
	currency string
	fee      string
}

func (c *investFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trade date (DD-MM-YYYY). Defaults to today.")
	f.StringVar(&c.asset, "t", "stock", "Asset class: stock, real_estate, crypto, or other.")
	f.StringVar(&c.symbol, "s", "", "Instrument symbol.")
	f.StringVar(&c.name, "name", "", "Display name for the instrument.")
	f.StringVar(&c.quantity, "q", "", "Quantity of units, up to 8 decimal places.")
	f.StringVar(&c.price, "p", "", "Price per unit.")
	f.StringVar(&c.currency, "c", fintrack.USD, "Currency of the price: USD or ILS.")
	f.StringVar(&c.fee, "fee", "", "Transaction fee, recorded but not part of cost basis.")
}

func (c *investFlags) build(side fintrack.TradeSide) (fintrack.InvestmentTransaction, error) {
	var zero fintrack.InvestmentTransaction
	asset, err := fintrack.ParseAssetType(c.asset)
	if err != nil {
		return zero, err
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		return zero, fmt.Errorf("invalid quantity %q: %w", c.quantity, err)
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return zero, fmt.Errorf("invalid price %q: %w", c.price, err)
	}
	day := fintrack.Today()
	if c.date != "" {
		if day, err = fintrack.ParseDate(c.date); err != nil {
			return zero, err
		}
	}
	tx := fintrack.NewInvestment(day, side, asset, c.symbol, c.name, quantity, price, c.currency)
	if c.fee != "" {
		fee, err := decimal.NewFromString(c.fee)
		if err != nil {
			return zero, fmt.Errorf("invalid fee %q: %w", c.fee, err)
		}
		tx.Fee = fintrack.M(fee, c.currency)
	}
	return tx, tx.Validate()
}

type buyCmd struct{ investFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase in the investment ledger" }
func (*buyCmd) Usage() string {
	return `ft buy -s <symbol> -q <quantity> -p <price> [-c <USD|ILS>] [-t <asset>] [-d <date>] [-fee <fee>]

  Appends a BUY event to the investment ledger.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return record(c.investFlags, fintrack.Buy)
}

type sellCmd struct{ investFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale in the investment ledger" }
func (*sellCmd) Usage() string {
	return `ft sell -s <symbol> -q <quantity> -p <price> [-c <USD|ILS>] [-t <asset>] [-d <date>] [-fee <fee>]

  Appends a SELL event to the investment ledger. A sale exceeding the
  quantity held on its date is rejected.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return record(c.investFlags, fintrack.Sell)
}

func record(flags investFlags, side fintrack.TradeSide) subcommands.ExitStatus {
	tx, err := flags.build(side)
	if err != nil {
		return fail(err)
	}

	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if side == fintrack.Sell {
		if err := fintrack.CheckSell(state.Investments, tx); err != nil {
			return fail(err)
		}
	}
	state.Investments = append(state.Investments, tx)
	if err := state.SaveInvestments(s); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s %s %s @ %s on %s.\n", tx.Side, tx.Quantity, tx.Symbol, tx.Price, tx.Date)
	return subcommands.ExitSuccess
}
