// internal/inventory/memory.go
package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs unit tests and
// local tooling; the conditional-update semantics match the Postgres store.
type MemoryStore struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]*Status
}

// NewMemoryStore creates an empty in-memory ledger store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{statuses: make(map[uuid.UUID]*Status)}
}

func (s *MemoryStore) FindStatus(_ context.Context, bookID uuid.UUID) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[bookID]
	if !ok {
		return nil, ErrStatusNotFound
	}
	copied := *status
	return &copied, nil
}

func (s *MemoryStore) InsertStatusIfAbsent(_ context.Context, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statuses[status.BookID]; ok {
		return nil
	}
	status.UpdatedAt = time.Now().UTC()
	s.statuses[status.BookID] = &status
	return nil
}

func (s *MemoryStore) DecrementAvailable(_ context.Context, bookID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[bookID]
	if !ok || status.AvailableQty < 1 {
		return false, nil
	}
	status.AvailableQty--
	status.BorrowedQty++
	status.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) IncrementAvailable(_ context.Context, bookID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[bookID]
	if !ok || status.BorrowedQty < 1 {
		return false, nil
	}
	status.AvailableQty++
	status.BorrowedQty--
	status.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) AdjustAvailable(_ context.Context, bookID uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[bookID]
	if !ok {
		return nil
	}
	status.AvailableQty += delta
	if status.AvailableQty < 0 {
		status.AvailableQty = 0
	}
	status.UpdatedAt = time.Now().UTC()
	return nil
}
