// internal/membership/memory.go
package membership

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store for unit tests and local
// tooling.
type MemoryStore struct {
	mu      sync.Mutex
	members map[uuid.UUID]*Member
}

// NewMemoryStore creates an empty in-memory membership store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{members: make(map[uuid.UUID]*Member)}
}

func (s *MemoryStore) InsertMember(_ context.Context, member *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *member
	s.members[member.ID] = &copied
	return nil
}

func (s *MemoryStore) FindMember(_ context.Context, id uuid.UUID) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (s *MemoryStore) ListMembers(_ context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*Member, 0, len(s.members))
	for _, member := range s.members {
		if !matchesFilter(filter, member) {
			continue
		}
		copied := *member
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	total := len(matched)
	if offset >= total {
		return []*Member{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *MemoryStore) UpdateMember(_ context.Context, member *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID]; !ok {
		return ErrMemberNotFound
	}
	copied := *member
	s.members[member.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteMember(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(s.members, id)
	return nil
}

func matchesFilter(filter ListFilter, member *Member) bool {
	if filter.Status != "" && member.Status != filter.Status {
		return false
	}
	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(filter.Search)
	return strings.Contains(strings.ToLower(member.Name), needle) ||
		strings.Contains(strings.ToLower(member.Email), needle)
}
