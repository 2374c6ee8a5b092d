// Package inventory holds the per-book availability ledger: the denormalized
// available/borrowed counter pair and the only two mutators allowed to touch
// it during circulation.
package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInsufficientStock is returned when a reservation finds no
	// available copy.
	ErrInsufficientStock = errors.New("insufficient stock: no available copies")

	// ErrStatusNotFound is returned when no ledger row exists for a book.
	ErrStatusNotFound = errors.New("inventory status not found")

	// ErrNoLoansOutstanding is returned when a release finds nothing
	// borrowed. It indicates a caller broke the one-release-per-loan
	// discipline and must be treated as a data-integrity problem.
	ErrNoLoansOutstanding = errors.New("no loans outstanding for book")
)

// Status is the ledger row for one book. Between operations
// AvailableQty + BorrowedQty always equals the book's total quantity, and
// neither counter goes negative.
type Status struct {
	BookID       uuid.UUID `json:"book_id" db:"book_id"`
	AvailableQty int       `json:"available_qty" db:"available_qty"`
	BorrowedQty  int       `json:"borrowed_qty" db:"borrowed_qty"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
