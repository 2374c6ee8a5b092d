// internal/catalog/domain.go
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Book is a title the library owns, with the total quantity of copies set by
// a librarian. Availability is tracked separately by the inventory ledger.
type Book struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Author     string    `json:"author" db:"author"`
	ISBN       string    `json:"isbn" db:"isbn"`
	Quantity   int       `json:"quantity" db:"quantity"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	CreatedBy  uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Category groups books for browsing and the distribution dashboard.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBookInput carries the fields of a new book.
type CreateBookInput struct {
	Title      string
	Author     string
	ISBN       string
	Quantity   int
	CategoryID uuid.UUID
	CreatedBy  uuid.UUID
}

// UpdateBookInput carries the fields of a book update. All fields are
// applied; quantity changes are propagated to the inventory ledger.
type UpdateBookInput struct {
	Title      string
	Author     string
	ISBN       string
	Quantity   int
	CategoryID uuid.UUID
}
