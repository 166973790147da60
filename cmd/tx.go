package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"fintrack"
	"fintrack/renderer"
)

type txCmd struct {
	clear  bool
	remove string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list, delete, or clear ledger transactions" }
func (*txCmd) Usage() string {
	return `ft tx [-rm <id>] [-clear]

  Lists the transaction ledger. With -rm, deletes one transaction by id;
  with -clear, deletes the whole ledger.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "clear", false, "Delete every transaction.")
	f.StringVar(&c.remove, "rm", "", "Delete the transaction with this id.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	switch {
	case c.clear:
		n := len(state.Transactions)
		state.Transactions = nil
		if err := state.SaveTransactions(s); err != nil {
			return fail(err)
		}
		fmt.Printf("Cleared %d transaction(s).\n", n)
	case c.remove != "":
		kept := make([]fintrack.Transaction, 0, len(state.Transactions))
		for _, tx := range state.Transactions {
			if tx.ID != c.remove {
				kept = append(kept, tx)
			}
		}
		if len(kept) == len(state.Transactions) {
			return fail(fmt.Errorf("no transaction with id %q", c.remove))
		}
		state.Transactions = kept
		if err := state.SaveTransactions(s); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted transaction %s.\n", c.remove)
	default:
		printMarkdown(renderer.Transactions(state.Transactions))
	}
	return subcommands.ExitSuccess
}
