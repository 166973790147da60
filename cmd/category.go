package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"fintrack"
	"fintrack/renderer"
)

type categoryCmd struct {
	txType string
	add    string
	remove string
	from   int
	to     int
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "list and edit the category lists" }
func (*categoryCmd) Usage() string {
	return `ft category [-t <income|expense>] [-add <label> | -rm <label> | -move <from> -to <to>]

  Without flags, lists both category lists in display order. Add, remove,
  and move operate on the list selected with -t.
`
}

func (c *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "t", "expense", "Which list to edit: income or expense.")
	f.StringVar(&c.add, "add", "", "Add a category label.")
	f.StringVar(&c.remove, "rm", "", "Remove a category label.")
	f.IntVar(&c.from, "move", -1, "Index of the category to move.")
	f.IntVar(&c.to, "to", -1, "Destination index for -move.")
}

func (c *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if c.add == "" && c.remove == "" && c.from < 0 {
		printMarkdown(renderer.Categories(state.Categories))
		return subcommands.ExitSuccess
	}

	txType, err := fintrack.ParseTxType(c.txType)
	if err != nil {
		return fail(err)
	}

	switch {
	case c.add != "":
		cats, err := state.Categories.Add(txType, c.add)
		if err != nil {
			return fail(err)
		}
		state.Categories = cats
		fmt.Printf("Added %s category %q.\n", txType, c.add)
	case c.remove != "":
		state.Categories = state.Categories.Remove(txType, c.remove)
		fmt.Printf("Removed %s category %q.\n", txType, c.remove)
	default:
		cats, err := state.Categories.Reorder(txType, c.from, c.to)
		if err != nil {
			return fail(err)
		}
		state.Categories = cats
		fmt.Printf("Moved %s category from %d to %d.\n", txType, c.from, c.to)
	}
	if err := state.SaveCategories(s); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
