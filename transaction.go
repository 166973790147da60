package fintrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// TxType is the signed classification of a ledger entry. The amount itself is
// always positive; direction is carried here.
type TxType string

const (
	Income  TxType = "INCOME"
	Expense TxType = "EXPENSE"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q, want %q or %q", s, Income, Expense)
	}
}

// Transaction is a single ledger entry, in the household's local currency.
type Transaction struct {
	ID          string
	Date        Date
	Type        TxType
	Category    string
	Description string
	Amount      Money // always positive, always ILS
	Generated   bool  // true when materialized from a recurring definition
}

// NewTransaction creates a ledger entry with a fresh id. The amount is in the
// local currency.
func NewTransaction(day Date, t TxType, category, description string, amount decimal.Decimal) Transaction {
	return Transaction{
		ID:          NewID(),
		Date:        day,
		Type:        t,
		Category:    category,
		Description: description,
		Amount:      M(amount, ILS),
	}
}

// Validate checks the fields a user-facing entry point must reject early.
// The folds downstream assume entries that passed here.
func (t Transaction) Validate(categories CategoryData) error {
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}
	if !categories.Has(t.Type, t.Category) {
		return fmt.Errorf("unknown %s category %q", t.Type, t.Category)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("category", t.Category)
	w.Optional("description", t.Description)
	w.Append("amount", t.Amount.Amount())
	w.Optional("recurring", t.Generated)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Type        TxType          `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Recurring   bool            `json:"recurring"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.Date = temp.Date
	t.Type = temp.Type
	t.Category = temp.Category
	t.Description = temp.Description
	t.Amount = M(temp.Amount, ILS)
	t.Generated = temp.Recurring
	return nil
}

// SortByDate returns a copy of the ledger in ascending date order. The sort is
// stable: entries on the same day keep their original relative order.
func SortByDate(ledger []Transaction) []Transaction {
	sorted := slices.Clone(ledger)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// NewID mints an opaque unique id for user-created entities.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

// ErrDuplicateCategory is the named failure for adding a label that already
// exists in the list. The caller surfaces it as a user message.
var ErrDuplicateCategory = errors.New("category already exists")

// CategoryData holds the two ordered category lists. Order is significant and
// user-controlled. Every operation returns a replacement value; nothing is
// mutated in place.
type CategoryData struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// DefaultCategories is the category set a fresh store starts with.
func DefaultCategories() CategoryData {
	return CategoryData{
		Income:  []string{"Salary", "Other"},
		Expense: []string{"Housing", "Groceries", "Transport", "Leisure", "Other"},
	}
}

// List returns the ordered labels for the given classification.
func (c CategoryData) List(t TxType) []string {
	if t == Income {
		return c.Income
	}
	return c.Expense
}

// Has reports whether label belongs to the classification's list.
func (c CategoryData) Has(t TxType, label string) bool {
	return slices.Contains(c.List(t), label)
}

// Add appends a label, rejecting duplicates with ErrDuplicateCategory.
func (c CategoryData) Add(t TxType, label string) (CategoryData, error) {
	if label == "" {
		return c, errors.New("category label is empty")
	}
	if c.Has(t, label) {
		return c, fmt.Errorf("%w: %q", ErrDuplicateCategory, label)
	}
	out := c.clone()
	if t == Income {
		out.Income = append(out.Income, label)
	} else {
		out.Expense = append(out.Expense, label)
	}
	return out, nil
}

// Remove deletes a label. Removing an absent label is a no-op.
func (c CategoryData) Remove(t TxType, label string) CategoryData {
	out := c.clone()
	if t == Income {
		out.Income = slices.DeleteFunc(out.Income, func(s string) bool { return s == label })
	} else {
		out.Expense = slices.DeleteFunc(out.Expense, func(s string) bool { return s == label })
	}
	return out
}

// Reorder moves the label at index from to index to within a list.
func (c CategoryData) Reorder(t TxType, from, to int) (CategoryData, error) {
	list := c.List(t)
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return c, fmt.Errorf("reorder index out of range: %d -> %d in %d categories", from, to, len(list))
	}
	out := c.clone()
	reordered := out.List(t)
	label := reordered[from]
	reordered = slices.Delete(reordered, from, from+1)
	reordered = slices.Insert(reordered, to, label)
	if t == Income {
		out.Income = reordered
	} else {
		out.Expense = reordered
	}
	return out, nil
}

func (c CategoryData) clone() CategoryData {
	return CategoryData{
		Income:  slices.Clone(c.Income),
		Expense: slices.Clone(c.Expense),
	}
}
