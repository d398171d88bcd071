package watch

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// PrefStore is the key→integer preference store the view state persists
// into. Keys are the PrefKey* constants.
type PrefStore interface {
	ReadInt(key int) (int, bool)
	WriteInt(key int, value int) error
}

// filePrefStore keeps the preferences in a small JSON file, loaded once
// and rewritten whole on every change.
type filePrefStore struct {
	mu     sync.Mutex
	path   string
	values map[string]int
	logger *log.Logger
}

// DefaultPrefsPath returns ~/.run-watch/prefs.json.
func DefaultPrefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, ".run-watch", "prefs.json"), nil
}

// NewFilePrefStore loads (or initializes) the preference file at path.
// A missing file is not an error; a corrupt one is discarded with a log
// line rather than failing startup.
func NewFilePrefStore(logger *log.Logger, path string) (PrefStore, error) {
	if logger == nil {
		panic("filePrefStore: logger cannot be nil")
	}
	if path == "" {
		return nil, fmt.Errorf("prefs path cannot be empty")
	}

	s := &filePrefStore{
		path:   path,
		values: make(map[string]int),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read prefs file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		logger.Printf("filePrefStore: discarding corrupt prefs file %s: %v", path, err)
		s.values = make(map[string]int)
	}
	return s, nil
}

func (s *filePrefStore) ReadInt(key int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[strconv.Itoa(key)]
	return v, ok
}

func (s *filePrefStore) WriteInt(key int, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[strconv.Itoa(key)] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create prefs directory: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("could not write prefs file %s: %w", s.path, err)
	}
	return nil
}

// MemPrefStore is an in-memory PrefStore for tests and for running
// without a writable home directory.
type MemPrefStore struct {
	mu     sync.Mutex
	values map[int]int
}

func NewMemPrefStore() *MemPrefStore {
	return &MemPrefStore{values: make(map[int]int)}
}

func (s *MemPrefStore) ReadInt(key int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemPrefStore) WriteInt(key int, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
