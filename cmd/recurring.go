package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"fintrack"
	"fintrack/renderer"
)

type recurringCmd struct {
	txType      string
	category    string
	description string
	amount      string
	day         int
	toggle      string
	remove      string
	date        string
}

func (*recurringCmd) Name() string     { return "recurring" }
func (*recurringCmd) Synopsis() string { return "manage monthly recurring charges" }
func (*recurringCmd) Usage() string {
	return `ft recurring [-t <income|expense> -c <category> -a <amount> -day <1-31>] [-toggle <id>] [-rm <id>] [-date <date>]

  Without flags, lists the recurring definitions. With the add flags, defines
  a new monthly charge. -toggle flips a definition's active flag; -rm deletes
  it. -date overrides today's date when materializing, for catch-up runs.
`
}

func (c *recurringCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "t", "expense", "Charge type: income or expense.")
	f.StringVar(&c.category, "c", "", "Category label.")
	f.StringVar(&c.description, "m", "", "Free-form description.")
	f.StringVar(&c.amount, "a", "", "Amount, a positive decimal.")
	f.IntVar(&c.day, "day", 0, "Nominal day of month the charge falls due.")
	f.StringVar(&c.toggle, "toggle", "", "Flip the active flag of this definition id.")
	f.StringVar(&c.remove, "rm", "", "Delete the definition with this id.")
	f.StringVar(&c.date, "date", "", "Materialize as of this date instead of today.")
}

func (c *recurringCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := fintrack.Today()
	if c.date != "" {
		var err error
		if today, err = fintrack.ParseDate(c.date); err != nil {
			return fail(err)
		}
	}

	// openStore, not openState: the eager startup materialization would run
	// with today's date and mark the current month processed, turning a
	// catch-up run for an earlier date into a no-op.
	state, s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	switch {
	case c.amount != "":
		txType, err := fintrack.ParseTxType(c.txType)
		if err != nil {
			return fail(err)
		}
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			return fail(fmt.Errorf("invalid amount %q: %w", c.amount, err))
		}
		def := fintrack.NewRecurringDefinition(txType, c.category, c.description, amount, c.day)
		if err := def.Validate(state.Categories); err != nil {
			return fail(err)
		}
		state.Recurring = append(state.Recurring, def)
		fmt.Printf("Defined recurring %s of %s in %s on day %d.\n", def.Type, def.Amount, def.Category, def.DayOfMonth)
	case c.toggle != "":
		i := findDefinition(state.Recurring, c.toggle)
		if i < 0 {
			return fail(fmt.Errorf("no recurring definition with id %q", c.toggle))
		}
		state.Recurring[i].Active = !state.Recurring[i].Active
		fmt.Printf("Definition %s active: %t.\n", c.toggle, state.Recurring[i].Active)
	case c.remove != "":
		i := findDefinition(state.Recurring, c.remove)
		if i < 0 {
			return fail(fmt.Errorf("no recurring definition with id %q", c.remove))
		}
		state.Recurring = append(state.Recurring[:i], state.Recurring[i+1:]...)
		fmt.Printf("Deleted definition %s.\n", c.remove)
	default:
		added, err := state.ProcessRecurring(s, today)
		if err != nil {
			return fail(err)
		}
		if c.date != "" {
			fmt.Printf("Materialized %d transaction(s) as of %s.\n", added, today)
			return subcommands.ExitSuccess
		}
		printMarkdown(renderer.Recurring(state.Recurring))
		return subcommands.ExitSuccess
	}
	if err := state.SaveRecurring(s); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func findDefinition(defs []fintrack.RecurringDefinition, id string) int {
	for i, def := range defs {
		if def.ID == id {
			return i
		}
	}
	return -1
}
