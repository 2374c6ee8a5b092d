// internal/inventory/service.go
package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Ledger is the authority over a book's availability counters. Reservations
// and releases are atomic: two concurrent reservations for the last copy
// yield exactly one success and one ErrInsufficientStock.
type Ledger interface {
	// EnsureInitialized lazily seeds the ledger row for a book with the
	// full quantity available. Idempotent: an existing row is untouched.
	EnsureInitialized(ctx context.Context, bookID uuid.UUID, totalQuantity int) error

	// ReserveOne atomically moves one copy from available to borrowed.
	ReserveOne(ctx context.Context, bookID uuid.UUID) error

	// ReleaseOne atomically moves one copy from borrowed back to available.
	ReleaseOne(ctx context.Context, bookID uuid.UUID) error

	// AdjustQuantity shifts the available count by delta when a book's
	// total quantity changes. A missing ledger row is a no-op: the next
	// EnsureInitialized seeds from the new quantity.
	AdjustQuantity(ctx context.Context, bookID uuid.UUID, delta int) error

	// Status reads the current counters for a book.
	Status(ctx context.Context, bookID uuid.UUID) (*Status, error)
}

// Store is the persistence collaborator behind the ledger. The two counter
// mutators are conditional writes that report whether a row qualified, so
// precondition checks and updates happen in one statement rather than
// read-then-write.
type Store interface {
	FindStatus(ctx context.Context, bookID uuid.UUID) (*Status, error)
	InsertStatusIfAbsent(ctx context.Context, status Status) error

	// DecrementAvailable applies available-1/borrowed+1 only when
	// available >= 1, reporting whether a row changed.
	DecrementAvailable(ctx context.Context, bookID uuid.UUID) (bool, error)

	// IncrementAvailable applies available+1/borrowed-1 only when
	// borrowed >= 1, reporting whether a row changed.
	IncrementAvailable(ctx context.Context, bookID uuid.UUID) (bool, error)

	// AdjustAvailable shifts available by delta, clamping at zero.
	AdjustAvailable(ctx context.Context, bookID uuid.UUID, delta int) error
}
