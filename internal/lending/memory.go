// internal/lending/memory.go
package lending

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"libraledger/internal/catalog"
	"libraledger/internal/membership"
)

// MemoryStore is a mutex-guarded in-memory Store for unit tests and local
// tooling. Books and members are fixture data added up front.
type MemoryStore struct {
	mu      sync.Mutex
	books   map[uuid.UUID]*catalog.Book
	members map[uuid.UUID]*membership.Member
	records map[uuid.UUID]*Record
}

// NewMemoryStore creates an empty in-memory lending store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:   make(map[uuid.UUID]*catalog.Book),
		members: make(map[uuid.UUID]*membership.Member),
		records: make(map[uuid.UUID]*Record),
	}
}

// AddBook registers a book fixture.
func (s *MemoryStore) AddBook(book catalog.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.ID] = &book
}

// AddMember registers a member fixture.
func (s *MemoryStore) AddMember(member membership.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = &member
}

// RecordCount reports how many lending records exist.
func (s *MemoryStore) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemoryStore) FindBook(_ context.Context, id uuid.UUID) (*catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, catalog.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *MemoryStore) FindMember(_ context.Context, id uuid.UUID) (*membership.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.members[id]
	if !ok {
		return nil, membership.ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (s *MemoryStore) CreateRecord(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *MemoryStore) FindRecord(_ context.Context, id uuid.UUID) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrLendingNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *MemoryStore) MarkReturned(_ context.Context, id uuid.UUID, returnedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || record.Status != StatusBorrowed {
		return false, nil
	}
	record.Status = StatusReturned
	record.ReturnDate = &returnedAt
	return true, nil
}

func (s *MemoryStore) FindDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrLendingNotFound
	}
	return s.detailLocked(record), nil
}

func (s *MemoryStore) ListDetails(_ context.Context) ([]*Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	details := make([]*Detail, 0, len(s.records))
	for _, record := range s.records {
		details = append(details, s.detailLocked(record))
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].BorrowedDate.After(details[j].BorrowedDate)
	})
	return details, nil
}

func (s *MemoryStore) detailLocked(record *Record) *Detail {
	detail := &Detail{Record: *record}
	if book, ok := s.books[record.BookID]; ok {
		detail.BookTitle = book.Title
		detail.BookAuthor = book.Author
	}
	if member, ok := s.members[record.MemberID]; ok {
		detail.MemberName = member.Name
		detail.MemberEmail = member.Email
	}
	return detail
}
