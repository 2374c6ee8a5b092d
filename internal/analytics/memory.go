// internal/analytics/memory.go
package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for unit tests and local tooling. It is
// fed individual borrow events and book registrations and derives the
// aggregates on read, mirroring what the SQL group-bys produce.
type MemoryStore struct {
	mu      sync.Mutex
	borrows []borrowEvent
	books   map[uuid.UUID]bookInfo
}

type borrowEvent struct {
	bookID     uuid.UUID
	borrowedAt time.Time
}

type bookInfo struct {
	title        string
	author       string
	categoryID   uuid.UUID
	categoryName string
}

// NewMemoryStore creates an empty in-memory analytics store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: make(map[uuid.UUID]bookInfo)}
}

// AddBook registers a book so borrows and distributions can resolve it.
func (s *MemoryStore) AddBook(id uuid.UUID, title, author string, categoryID uuid.UUID, categoryName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[id] = bookInfo{title: title, author: author, categoryID: categoryID, categoryName: categoryName}
}

// AddBorrow records one borrow event.
func (s *MemoryStore) AddBorrow(bookID uuid.UUID, borrowedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.borrows = append(s.borrows, borrowEvent{bookID: bookID, borrowedAt: borrowedAt})
}

func (s *MemoryStore) MostBorrowed(_ context.Context, limit int) ([]*MostBorrowedBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[uuid.UUID]int)
	for _, event := range s.borrows {
		counts[event.bookID]++
	}

	ranked := make([]*MostBorrowedBook, 0, len(counts))
	for bookID, count := range counts {
		info := s.books[bookID]
		ranked = append(ranked, &MostBorrowedBook{
			BookID:      bookID,
			BookTitle:   info.title,
			BookAuthor:  info.author,
			BorrowCount: count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].BorrowCount > ranked[j].BorrowCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *MemoryStore) BorrowDatesSince(_ context.Context, since time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := []time.Time{}
	for _, event := range s.borrows {
		if !event.borrowedAt.Before(since) {
			dates = append(dates, event.borrowedAt)
		}
	}
	return dates, nil
}

func (s *MemoryStore) CategoryDistribution(_ context.Context) ([]*CategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[uuid.UUID]*CategoryCount)
	for _, info := range s.books {
		if existing, ok := counts[info.categoryID]; ok {
			existing.BookCount++
			continue
		}
		counts[info.categoryID] = &CategoryCount{
			CategoryID:   info.categoryID,
			CategoryName: info.categoryName,
			BookCount:    1,
		}
	}

	result := make([]*CategoryCount, 0, len(counts))
	for _, count := range counts {
		result = append(result, count)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].BookCount > result[j].BookCount
	})
	return result, nil
}
