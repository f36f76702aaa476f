// Package checkpoint keeps the crash-resumable state of a hunt: every domain
// already checked and every domain found available.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/uberswe/DomainHunter/pkg/domain"
)

// file is the on-disk layout of the results file
type file struct {
	Checked []string            `json:"checked"`
	Found   []domain.FoundEntry `json:"found"`
}

// Store is safe for concurrent use
type Store struct {
	path string

	mu      sync.Mutex
	seen    map[string]struct{}
	checked []string
	found   []domain.FoundEntry
}

// New returns an empty store backed by path. Call Load to resume.
func New(path string) *Store {
	return &Store{path: path, seen: make(map[string]struct{})}
}

// Path returns the results file location
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory state with the contents of the results file.
// A missing file leaves the store empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", s.path).Msg("No results file, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read results file: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse results file %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{}, len(f.Checked))
	s.checked = s.checked[:0]
	for _, d := range f.Checked {
		if _, dup := s.seen[d]; dup {
			continue
		}
		s.seen[d] = struct{}{}
		s.checked = append(s.checked, d)
	}
	s.found = f.Found
	return nil
}

// Persist writes the state to a temporary file next to the results file and
// renames it into place, so a crash never leaves a truncated file behind.
func (s *Store) Persist() error {
	s.mu.Lock()
	f := file{
		Checked: append([]string(nil), s.checked...),
		Found:   append([]domain.FoundEntry(nil), s.found...),
	}
	s.mu.Unlock()

	if f.Checked == nil {
		f.Checked = []string{}
	}
	if f.Found == nil {
		f.Found = []domain.FoundEntry{}
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp results file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace results file: %w", err)
	}
	return nil
}

// WasChecked reports whether name was checked in this or an earlier run
func (s *Store) WasChecked(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[name]
	return ok
}

// MarkChecked records that name has been resolved
func (s *Store) MarkChecked(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.checked = append(s.checked, name)
}

// RecordFound adds an available domain. A domain already recorded is ignored.
func (s *Store) RecordFound(e domain.FoundEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.found {
		if f.Domain == e.Domain {
			return
		}
	}
	s.found = append(s.found, e)
}

// Found returns a copy of the recorded entries in discovery order
func (s *Store) Found() []domain.FoundEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FoundEntry(nil), s.found...)
}

func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Stats{Checked: len(s.checked), Found: len(s.found)}
}
