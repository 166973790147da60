package fintrack

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// recurringMarker is appended to the description of every materialized entry.
const recurringMarker = " (recurring)"

// RecurringDefinition is a template that yields at most one ledger entry per
// calendar month.
type RecurringDefinition struct {
	ID          string
	Type        TxType
	Category    string
	Description string
	Amount      Money // always positive, always ILS
	DayOfMonth  int   // nominal day, 1-31
	Active      bool
	// LastProcessed is the date of the most recent materialized entry.
	// It is written only by MaterializeRecurring, never by the user.
	LastProcessed Date
}

// NewRecurringDefinition creates an active definition with a fresh id.
func NewRecurringDefinition(t TxType, category, description string, amount decimal.Decimal, dayOfMonth int) RecurringDefinition {
	return RecurringDefinition{
		ID:          NewID(),
		Type:        t,
		Category:    category,
		Description: description,
		Amount:      M(amount, ILS),
		DayOfMonth:  dayOfMonth,
		Active:      true,
	}
}

// Validate checks the fields a user-facing entry point must reject early.
func (d RecurringDefinition) Validate(categories CategoryData) error {
	if _, err := ParseTxType(string(d.Type)); err != nil {
		return err
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("recurring amount must be positive, got %s", d.Amount)
	}
	if d.DayOfMonth < 1 || d.DayOfMonth > 31 {
		return fmt.Errorf("day of month must be within 1-31, got %d", d.DayOfMonth)
	}
	if !categories.Has(d.Type, d.Category) {
		return fmt.Errorf("unknown %s category %q", d.Type, d.Category)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for RecurringDefinition.
func (d RecurringDefinition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", d.ID)
	w.Append("type", d.Type)
	w.Append("category", d.Category)
	w.Optional("description", d.Description)
	w.Append("amount", d.Amount.Amount())
	w.Append("dayOfMonth", d.DayOfMonth)
	w.Append("active", d.Active)
	if !d.LastProcessed.IsZero() {
		w.Append("lastProcessedDate", d.LastProcessed)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for RecurringDefinition.
func (d *RecurringDefinition) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID            string          `json:"id"`
		Type          TxType          `json:"type"`
		Category      string          `json:"category"`
		Description   string          `json:"description"`
		Amount        decimal.Decimal `json:"amount"`
		DayOfMonth    int             `json:"dayOfMonth"`
		Active        bool            `json:"active"`
		LastProcessed string          `json:"lastProcessedDate"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	d.ID = temp.ID
	d.Type = temp.Type
	d.Category = temp.Category
	d.Description = temp.Description
	d.Amount = M(temp.Amount, ILS)
	d.DayOfMonth = temp.DayOfMonth
	d.Active = temp.Active
	if temp.LastProcessed != "" {
		d.LastProcessed = ParseFlexible(temp.LastProcessed)
	}
	return nil
}

// MaterializeRecurring appends, for each active definition that is due, the
// entry owed for the current calendar month. It is a pure function of its
// inputs: the caller supplies today explicitly, so replaying it is
// deterministic.
//
// A definition is due when today has reached its nominal day (clamped to the
// month's length) and it has not yet been processed in today's (year, month).
// This guarantees at most one materialized entry per definition per month, no
// matter how many times the function runs.
//
// It returns the extended ledger, the updated definitions, and the number of
// entries added. When the count is zero both returned slices are the inputs,
// untouched, so callers can skip the persistence write.
func MaterializeRecurring(ledger []Transaction, defs []RecurringDefinition, today Date) ([]Transaction, []RecurringDefinition, int) {
	added := 0
	outLedger := ledger
	outDefs := defs

	for i, def := range defs {
		if !def.Active {
			continue
		}
		// A 31st-of-month definition fires on Feb 28/29: the nominal day is
		// clamped to the length of the current month.
		target := def.DayOfMonth
		if last := DaysIn(today.Year(), today.Month()); target > last {
			target = last
		}
		if today.Day() < target {
			continue
		}
		// A backdated run must not rewind the marker below a month that
		// was already processed.
		if !def.LastProcessed.IsZero() && (def.LastProcessed.SameMonth(today) || def.LastProcessed.After(today)) {
			continue
		}

		if added == 0 {
			// First emission: copy-on-write so zero-added runs return the
			// inputs unchanged.
			outLedger = slices.Clone(ledger)
			outDefs = slices.Clone(defs)
		}

		tx := Transaction{
			ID:          materializedID(def, today),
			Date:        NewDate(today.Year(), today.Month(), target),
			Type:        def.Type,
			Category:    def.Category,
			Description: strings.TrimSpace(def.Description + recurringMarker),
			Amount:      def.Amount,
			Generated:   true,
		}
		outLedger = append(outLedger, tx)
		outDefs[i].LastProcessed = tx.Date
		added++
	}

	return outLedger, outDefs, added
}

// materializedID is deterministic per (definition, month), so a replay that
// somehow got past the dueness check could not mint a second identity for the
// same month's entry.
func materializedID(def RecurringDefinition, today Date) string {
	return fmt.Sprintf("%s-%04d%02d", def.ID, today.Year(), int(today.Month()))
}
