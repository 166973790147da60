package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"fintrack"
)

type addCmd struct {
	date        string
	txType      string
	category    string
	description string
	amount      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense transaction" }
func (*addCmd) Usage() string {
	return `ft add -t <income|expense> -c <category> -a <amount> [-d <date>] [-m <description>]

  Appends a transaction to the ledger, dated today unless -d is given.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (DD-MM-YYYY). Defaults to today.")
	f.StringVar(&c.txType, "t", "expense", "Transaction type: income or expense.")
	f.StringVar(&c.category, "c", "", "Category label.")
	f.StringVar(&c.description, "m", "", "Free-form description.")
	f.StringVar(&c.amount, "a", "", "Amount, a positive decimal.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txType, err := fintrack.ParseTxType(c.txType)
	if err != nil {
		return fail(err)
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return fail(fmt.Errorf("invalid amount %q: %w", c.amount, err))
	}
	day := fintrack.Today()
	if c.date != "" {
		if day, err = fintrack.ParseDate(c.date); err != nil {
			return fail(err)
		}
	}

	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	tx := fintrack.NewTransaction(day, txType, c.category, c.description, amount)
	if err := tx.Validate(state.Categories); err != nil {
		return fail(err)
	}
	state.Transactions = append(state.Transactions, tx)
	if err := state.SaveTransactions(s); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s of %s in %s on %s.\n", tx.Type, tx.Amount, tx.Category, tx.Date)
	return subcommands.ExitSuccess
}
