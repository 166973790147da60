// Package cmd implements the CLI application to track a household's budget
// and investments.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"fintrack"
	"fintrack/store"
)

// Commands lists every subcommand. A main package registers them on its
// commander.
var Commands = []subcommands.Command{
	&addCmd{},
	&txCmd{},
	&categoryCmd{},
	&recurringCmd{},
	&buyCmd{},
	&sellCmd{},
	&holdingCmd{},
	&perfCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeKind = flag.String("store", "file", "Storage backend, \"file\" or \"sqlite\".")
var storePath = flag.String("store-path", "fintrack.json", "Path to the state file or database.")

// openStore opens the configured store and loads the full state from it,
// without touching the collections.
func openStore() (*fintrack.State, store.Store, error) {
	s, err := store.Open(*storeKind, *storePath)
	if err != nil {
		return nil, nil, err
	}
	state, err := fintrack.LoadState(s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return state, s, nil
}

// openState is openStore plus the startup materialization pass: recurring
// charges are materialized as of today and persisted before the state is
// handed out, so every command sees an up-to-date ledger. The recurring
// command uses openStore directly, because it materializes with its own date.
func openState() (*fintrack.State, store.Store, error) {
	state, s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	if added, err := state.ProcessRecurring(s, fintrack.Today()); err != nil {
		s.Close()
		return nil, nil, err
	} else if added > 0 {
		fmt.Fprintf(os.Stderr, "Materialized %d recurring transaction(s).\n", added)
	}
	return state, s, nil
}

// fail prints the error and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
