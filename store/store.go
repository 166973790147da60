// Package store persists the application state as JSON values under fixed
// keys, in either a single JSON file or a sqlite database.
package store

import (
	"encoding/json"
	"fmt"
)

// Keys under which the application keeps its collections.
const (
	KeyTransactions = "transactions"
	KeyRecurring    = "recurring"
	KeyCategories   = "categories"
	KeyInvestments  = "investments"
)

// Store is an opaque key-value store of JSON documents. Get reports absence
// with its boolean, not an error; last write wins on Set.
type Store interface {
	Get(key string) (json.RawMessage, bool, error)
	Set(key string, value json.RawMessage) error
	Close() error
}

// Open creates a store of the given kind ("file" or "sqlite") at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "file":
		return OpenFile(path)
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store kind %q, want \"file\" or \"sqlite\"", kind)
	}
}
