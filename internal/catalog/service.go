// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the catalog service.
type Service interface {
	CreateBook(ctx context.Context, input CreateBookInput) (*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, search string, limit, offset int) ([]*Book, int, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, name string) (*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error)
	CategoryBooks(ctx context.Context, id uuid.UUID) ([]*Book, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Store is the persistence collaborator for books and categories.
type Store interface {
	InsertBook(ctx context.Context, book *Book) error
	FindBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, search string, limit, offset int) ([]*Book, int, error)
	UpdateBook(ctx context.Context, book *Book) error
	DeleteBook(ctx context.Context, id uuid.UUID) error

	InsertCategory(ctx context.Context, category *Category) error
	FindCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error)
	BooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Book, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
