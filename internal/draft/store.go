// Package draft persists the single in-progress order draft that survives
// the payment-provider redirect round trip. There is one well-known key:
// saving while a draft is pending overwrites it silently.
package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cherishcafe/orderflow/internal/domain"
)

type Store interface {
	// Save writes the draft, replacing any existing one.
	Save(draft domain.OrderDraft) error
	// Load returns the current draft, or nil when none exists.
	Load() (*domain.OrderDraft, error)
	// Delete removes the draft; deleting a missing draft is not an error.
	Delete() error
}

// FileStore keeps the draft as one JSON file. Concurrent writers racing on
// the same file is an accepted limitation, not prevented.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(draft domain.OrderDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace draft: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (*domain.OrderDraft, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read draft: %w", err)
	}
	var draft domain.OrderDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	draft *domain.OrderDraft
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(draft domain.OrderDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &draft
	return nil
}

func (s *MemStore) Load() (*domain.OrderDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil, nil
	}
	d := *s.draft
	return &d, nil
}

func (s *MemStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	return nil
}
