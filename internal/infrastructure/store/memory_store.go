package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
)

// MemoryStore holds the serialized cart document in memory. Used for
// tests and ephemeral runs. It round-trips through the same JSON
// document as the durable backends so persistence behavior matches.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return []domain.LineItem{}, nil
	}

	var items []domain.LineItem
	if err := json.Unmarshal(s.data, &items); err != nil {
		return []domain.LineItem{}, nil
	}
	return items, nil
}

func (s *MemoryStore) Save(ctx context.Context, items []domain.LineItem) error {
	data, err := marshalItems(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Bytes returns the raw stored document, for assertions in tests.
func (s *MemoryStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// SetBytes overwrites the raw stored document, for seeding tests.
func (s *MemoryStore) SetBytes(data []byte) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}
