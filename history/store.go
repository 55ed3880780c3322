package history

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Entry pairs a vehicle plate with the phone last used for it.
type Entry struct {
	Plate string `yaml:"carNo"`
	Phone string `yaml:"phone"`
}

type historyFile struct {
	Cars []Entry `yaml:"cars"`
}

// Store persists the plate to last-used-phone history in a YAML file. The
// file is the source of truth; every read reloads it so several invocations
// of the tool stay consistent.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store backed by the given file path. The file does
// not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all known entries. A missing file is an empty history, not
// an error.
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var f historyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return f.Cars, nil
}

// Phone returns the phone last used with the plate.
func (s *Store) Phone(plate string) (string, bool) {
	entries, err := s.Load()
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.Plate == plate {
			return e.Phone, true
		}
	}
	return "", false
}

// Remember adds the plate or updates its phone, then rewrites the file.
func (s *Store) Remember(plate, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	found := false
	for i, e := range entries {
		if e.Plate == plate {
			entries[i].Phone = phone
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, Entry{Plate: plate, Phone: phone})
	}
	data, err := yaml.Marshal(historyFile{Cars: entries})
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
