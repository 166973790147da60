package fintrack

import (
	"testing"
	"time"
)

func rent(dayOfMonth int) RecurringDefinition {
	return RecurringDefinition{
		ID:         "rent",
		Type:       Expense,
		Category:   "Housing",
		Amount:     ils(4500),
		DayOfMonth: dayOfMonth,
		Active:     true,
	}
}

// TestMaterializeOncePerMonth walks one definition through two months.
func TestMaterializeOncePerMonth(t *testing.T) {
	defs := []RecurringDefinition{rent(15)}
	var ledger []Transaction

	// Day 20: past the nominal day, never processed, emits one entry
	// dated the 15th.
	ledger, defs, added := MaterializeRecurring(ledger, defs, NewDate(2025, time.March, 20))
	if added != 1 || len(ledger) != 1 {
		t.Fatalf("first run added %d entries, want 1", added)
	}
	tx := ledger[0]
	if tx.Date != (NewDate(2025, time.March, 15)) {
		t.Errorf("materialized date = %v, want 15-03-2025", tx.Date)
	}
	if !tx.Generated {
		t.Errorf("materialized entry should be flagged as generated")
	}
	if !defs[0].LastProcessed.SameMonth(NewDate(2025, time.March, 1)) {
		t.Errorf("lastProcessed = %v, want March 2025", defs[0].LastProcessed)
	}

	// Day 25 same month: already processed.
	ledger, defs, added = MaterializeRecurring(ledger, defs, NewDate(2025, time.March, 25))
	if added != 0 {
		t.Fatalf("same month rerun added %d entries, want 0", added)
	}

	// Day 10 next month: before the nominal day.
	ledger, defs, added = MaterializeRecurring(ledger, defs, NewDate(2025, time.April, 10))
	if added != 0 {
		t.Fatalf("next month day 10 added %d entries, want 0", added)
	}

	// Day 16 next month: due again.
	ledger, _, added = MaterializeRecurring(ledger, defs, NewDate(2025, time.April, 16))
	if added != 1 || len(ledger) != 2 {
		t.Fatalf("next month day 16 added %d entries, want 1", added)
	}
}

// TestMaterializeIdempotent asserts a second run with the same today changes
// nothing, and returns the very same collections.
func TestMaterializeIdempotent(t *testing.T) {
	today := NewDate(2025, time.March, 20)
	ledger, defs, added := MaterializeRecurring(nil, []RecurringDefinition{rent(15)}, today)
	if added != 1 {
		t.Fatalf("first run added %d entries, want 1", added)
	}
	ledger2, defs2, added := MaterializeRecurring(ledger, defs, today)
	if added != 0 {
		t.Fatalf("second run added %d entries, want 0", added)
	}
	if len(ledger2) != len(ledger) || len(defs2) != len(defs) {
		t.Errorf("second run changed collection sizes")
	}
	if &ledger2[0] != &ledger[0] {
		t.Errorf("second run reallocated an unchanged ledger")
	}
}

func TestMaterializeInactive(t *testing.T) {
	def := rent(15)
	def.Active = false
	_, _, added := MaterializeRecurring(nil, []RecurringDefinition{def}, NewDate(2025, time.March, 20))
	if added != 0 {
		t.Errorf("inactive definition emitted %d entries, want 0", added)
	}
}

// TestMaterializeClampsDay asserts a nominal day beyond the month's end
// clamps to the last day instead of skipping the month.
func TestMaterializeClampsDay(t *testing.T) {
	ledger, defs, added := MaterializeRecurring(nil, []RecurringDefinition{rent(31)}, NewDate(2025, time.February, 28))
	if added != 1 {
		t.Fatalf("clamped run added %d entries, want 1", added)
	}
	if want := NewDate(2025, time.February, 28); ledger[0].Date != want {
		t.Errorf("materialized date = %v, want %v", ledger[0].Date, want)
	}
	// The nominal day is untouched, March materializes on the 31st.
	ledger, _, added = MaterializeRecurring(ledger, defs, NewDate(2025, time.March, 31))
	if added != 1 {
		t.Fatalf("march run added %d entries, want 1", added)
	}
	if want := NewDate(2025, time.March, 31); ledger[1].Date != want {
		t.Errorf("materialized date = %v, want %v", ledger[1].Date, want)
	}
}

// TestMaterializeIgnoresBackdatedRun asserts a run with a today earlier than
// the last processed month neither emits nor rewinds the marker.
func TestMaterializeIgnoresBackdatedRun(t *testing.T) {
	ledger, defs, _ := MaterializeRecurring(nil, []RecurringDefinition{rent(15)}, NewDate(2025, time.March, 20))
	_, defs2, added := MaterializeRecurring(ledger, defs, NewDate(2025, time.February, 20))
	if added != 0 {
		t.Fatalf("backdated run added %d entries, want 0", added)
	}
	if defs2[0].LastProcessed != defs[0].LastProcessed {
		t.Errorf("backdated run moved the marker to %v", defs2[0].LastProcessed)
	}
}

func TestMaterializeSeveralDefinitions(t *testing.T) {
	defs := []RecurringDefinition{rent(1), {
		ID:         "salary",
		Type:       Income,
		Category:   "Salary",
		Amount:     ils(20000),
		DayOfMonth: 10,
		Active:     true,
	}}
	ledger, defs, added := MaterializeRecurring(nil, defs, NewDate(2025, time.June, 5))
	if added != 1 || len(ledger) != 1 {
		t.Fatalf("day 5 added %d entries, want only rent", added)
	}
	ledger, _, added = MaterializeRecurring(ledger, defs, NewDate(2025, time.June, 12))
	if added != 1 || len(ledger) != 2 {
		t.Fatalf("day 12 added %d entries, want only salary", added)
	}
	if ledger[1].Type != Income {
		t.Errorf("second materialized entry type = %s, want INCOME", ledger[1].Type)
	}
}
