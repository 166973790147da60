package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"

	"fintrack"
	"fintrack/store"
)

// A run with an explicit date must materialize as of that date, even when the
// date lies before the current month. The command opens the store without the
// startup materialization pass, so the definitions are still unprocessed when
// the requested date is applied.
func TestRecurringCatchUpDate(t *testing.T) {
	*storeKind = "file"
	*storePath = filepath.Join(t.TempDir(), "fintrack.json")

	s, err := store.Open(*storeKind, *storePath)
	if err != nil {
		t.Fatal(err)
	}
	state, err := fintrack.LoadState(s)
	if err != nil {
		t.Fatal(err)
	}
	state.Recurring = []fintrack.RecurringDefinition{{
		ID:         "rent",
		Type:       fintrack.Expense,
		Category:   "Housing",
		Amount:     fintrack.M(4500, fintrack.ILS),
		DayOfMonth: 15,
		Active:     true,
	}}
	if err := state.SaveRecurring(s); err != nil {
		t.Fatal(err)
	}
	s.Close()

	cmd := &recurringCmd{date: "20-02-2025"}
	if got := cmd.Execute(context.Background(), nil); got != subcommands.ExitSuccess {
		t.Fatalf("Execute = %v, want success", got)
	}

	s, err = store.Open(*storeKind, *storePath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	state, err = fintrack.LoadState(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Transactions) != 1 {
		t.Fatalf("materialized %d transaction(s), want 1", len(state.Transactions))
	}
	want := fintrack.NewDate(2025, time.February, 15)
	if state.Transactions[0].Date != want {
		t.Errorf("materialized date = %s, want %s", state.Transactions[0].Date, want)
	}
	if got := state.Recurring[0].LastProcessed; !got.SameMonth(want) {
		t.Errorf("LastProcessed = %s, want the month of %s", got, want)
	}
}
