package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps every key in one human-readable JSON document. Writes go
// through a temporary file and a rename so a crash never leaves a truncated
// store behind.
type FileStore struct {
	path string
	data map[string]json.RawMessage
}

// OpenFile opens the JSON store at path, creating an empty one if the file
// does not exist yet.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("corrupted store %s: %w", path, err)
	}
	return s, nil
}

// Get implements the Store interface.
func (s *FileStore) Get(key string) (json.RawMessage, bool, error) {
	value, ok := s.data[key]
	return value, ok, nil
}

// Set implements the Store interface.
func (s *FileStore) Set(key string, value json.RawMessage) error {
	s.data[key] = value
	return s.flush()
}

// Close implements the Store interface.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
