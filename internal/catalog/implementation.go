// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"libraledger/internal/inventory"
)

// service implements the Service interface.
type service struct {
	store  Store
	ledger inventory.Ledger
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new catalog service instance.
func NewService(store Store, ledger inventory.Ledger, logger *slog.Logger) Service {
	return &service{
		store:  store,
		ledger: ledger,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*Book, error) {
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if _, err := s.store.FindCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := s.now()
	book := &Book{
		ID:         uuid.New(),
		Title:      input.Title,
		Author:     input.Author,
		ISBN:       input.ISBN,
		Quantity:   input.Quantity,
		CategoryID: input.CategoryID,
		CreatedBy:  input.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertBook(ctx, book); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	return book, nil
}

func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.store.FindBook(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, search string, limit, offset int) ([]*Book, int, error) {
	return s.store.ListBooks(ctx, search, limit, offset)
}

// UpdateBook applies the new fields and keeps the inventory ledger in step: a
// quantity change shifts the available count by the same delta, so
// available + borrowed == quantity still holds with copies out on loan.
func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*Book, error) {
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}

	book, err := s.store.FindBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	delta := input.Quantity - book.Quantity

	book.Title = input.Title
	book.Author = input.Author
	book.ISBN = input.ISBN
	book.Quantity = input.Quantity
	book.CategoryID = input.CategoryID
	book.UpdatedAt = s.now()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	if err := s.ledger.AdjustQuantity(ctx, id, delta); err != nil {
		s.logger.ErrorContext(ctx, "ledger adjustment failed after book update",
			slog.String("book_id", id.String()),
			slog.Int("delta", delta),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("adjust ledger: %w", err)
	}

	return book, nil
}

func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.FindBook(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteBook(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	now := s.now()
	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	return category, nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.store.FindCategory(ctx, id)
}

func (s *service) ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error) {
	return s.store.ListCategories(ctx, search, limit, offset)
}

func (s *service) CategoryBooks(ctx context.Context, id uuid.UUID) ([]*Book, error) {
	if _, err := s.store.FindCategory(ctx, id); err != nil {
		return nil, err
	}
	return s.store.BooksByCategory(ctx, id)
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	category, err := s.store.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.UpdatedAt = s.now()
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.FindCategory(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, id)
}
