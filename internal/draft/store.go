// Package draft persists the in-progress wizard form so users can leave and
// resume without losing work. A draft is a single snapshot stored under one
// fixed location; every save overwrites the previous snapshot wholesale.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// Store is the draft persistence contract.
type Store interface {
	// Load returns the saved snapshot, or ok=false when no draft exists.
	Load() (form guarantor.FormData, ok bool, err error)

	// Save overwrites the draft with the given snapshot.
	Save(form guarantor.FormData) error

	// Clear removes the draft. Clearing an absent draft is not an error.
	Clear() error
}

// FileStore persists the draft as a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore builds a store writing to path. Parent directories are created
// on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (guarantor.FormData, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return guarantor.FormData{}, false, nil
	}
	if err != nil {
		return guarantor.FormData{}, false, fmt.Errorf("read draft: %w", err)
	}

	var form guarantor.FormData
	if err := json.Unmarshal(data, &form); err != nil {
		return guarantor.FormData{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return form, true, nil
}

func (s *FileStore) Save(form guarantor.FormData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create draft directory: %w", err)
		}
	}

	// Write to a temp file first so a crash mid-write cannot corrupt the
	// existing draft.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace draft: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
