// internal/catalog/memory.go
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store for unit tests and local
// tooling. Search matching mirrors the SQL ILIKE behaviour.
type MemoryStore struct {
	mu         sync.Mutex
	books      map[uuid.UUID]*Book
	categories map[uuid.UUID]*Category
}

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:      make(map[uuid.UUID]*Book),
		categories: make(map[uuid.UUID]*Category),
	}
}

func (s *MemoryStore) InsertBook(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *MemoryStore) FindBook(_ context.Context, id uuid.UUID) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *MemoryStore) ListBooks(_ context.Context, search string, limit, offset int) ([]*Book, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*Book, 0, len(s.books))
	for _, book := range s.books {
		if matchesSearch(search, book.Title, book.Author) {
			copied := *book
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return page(matched, limit, offset), len(matched), nil
}

func (s *MemoryStore) UpdateBook(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; !ok {
		return ErrBookNotFound
	}
	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteBook(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *MemoryStore) InsertCategory(_ context.Context, category *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *MemoryStore) FindCategory(_ context.Context, id uuid.UUID) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *MemoryStore) ListCategories(_ context.Context, search string, limit, offset int) ([]*Category, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*Category, 0, len(s.categories))
	for _, category := range s.categories {
		if matchesSearch(search, category.Name) {
			copied := *category
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	return page(matched, limit, offset), len(matched), nil
}

func (s *MemoryStore) BooksByCategory(_ context.Context, categoryID uuid.UUID) ([]*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := []*Book{}
	for _, book := range s.books {
		if book.CategoryID == categoryID {
			copied := *book
			books = append(books, &copied)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].Title < books[j].Title
	})
	return books, nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, category *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return ErrCategoryNotFound
	}
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteCategory(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
