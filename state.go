package fintrack

import (
	"encoding/json"
	"fmt"

	"fintrack/store"
)

// State is the full application state as loaded from the store. Collections
// are replaced wholesale, never mutated in place; callers adopt whatever a
// core operation returns and save the keys that changed.
type State struct {
	Transactions []Transaction
	Recurring    []RecurringDefinition
	Categories   CategoryData
	Investments  []InvestmentTransaction
}

// LoadState reads every collection from the store. Absent keys load as empty
// collections, except categories which default to the stock lists.
func LoadState(s store.Store) (*State, error) {
	state := &State{Categories: DefaultCategories()}
	if err := load(s, store.KeyTransactions, &state.Transactions); err != nil {
		return nil, err
	}
	if err := load(s, store.KeyRecurring, &state.Recurring); err != nil {
		return nil, err
	}
	if err := load(s, store.KeyCategories, &state.Categories); err != nil {
		return nil, err
	}
	if err := load(s, store.KeyInvestments, &state.Investments); err != nil {
		return nil, err
	}
	return state, nil
}

func load(s store.Store, key string, dest any) error {
	raw, ok, err := s.Get(key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	return nil
}

func save(s store.Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// SaveTransactions persists the transaction ledger.
func (st *State) SaveTransactions(s store.Store) error {
	return save(s, store.KeyTransactions, st.Transactions)
}

// SaveRecurring persists the recurring definitions.
func (st *State) SaveRecurring(s store.Store) error {
	return save(s, store.KeyRecurring, st.Recurring)
}

// SaveCategories persists the category lists.
func (st *State) SaveCategories(s store.Store) error {
	return save(s, store.KeyCategories, st.Categories)
}

// SaveInvestments persists the investment ledger.
func (st *State) SaveInvestments(s store.Store) error {
	return save(s, store.KeyInvestments, st.Investments)
}

// ProcessRecurring runs the materializer against the state, adopting the new
// ledger and definitions and persisting both when anything was emitted.
func (st *State) ProcessRecurring(s store.Store, today Date) (int, error) {
	ledger, defs, added := MaterializeRecurring(st.Transactions, st.Recurring, today)
	if added == 0 {
		return 0, nil
	}
	st.Transactions = ledger
	st.Recurring = defs
	if err := st.SaveTransactions(s); err != nil {
		return added, err
	}
	if err := st.SaveRecurring(s); err != nil {
		return added, err
	}
	return added, nil
}
