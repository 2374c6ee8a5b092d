// internal/lending/domain.go
package lending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a lending record. The only transition is
// BORROWED -> RETURNED; a returned record is terminal and a new borrow always
// creates a new record.
type Status string

const (
	StatusBorrowed Status = "BORROWED"
	StatusReturned Status = "RETURNED"
)

var (
	// ErrLendingNotFound is returned when no lending record exists for an id.
	ErrLendingNotFound = errors.New("lending record not found")

	// ErrNoCopiesAvailable is returned when a borrow finds every copy out.
	ErrNoCopiesAvailable = errors.New("no copies available for this book")

	// ErrAlreadyReturned is returned on a second return of the same record.
	// Returning is deliberately not idempotent: a silent no-op would hide
	// the double-increment it was about to cause.
	ErrAlreadyReturned = errors.New("lending already returned")

	// ErrInconsistency signals that the record state and the inventory
	// counters diverged mid-operation. The ledger needs manual
	// reconciliation; callers must not retry.
	ErrInconsistency = errors.New("inventory inconsistency detected")

	// ErrInvalidInput covers malformed borrow requests.
	ErrInvalidInput = errors.New("invalid input")
)

// Record is one borrow-to-return cycle of a single copy.
type Record struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	BookID       uuid.UUID  `json:"book_id" db:"book_id"`
	MemberID     uuid.UUID  `json:"member_id" db:"member_id"`
	BorrowedDate time.Time  `json:"borrowed_date" db:"borrowed_date"`
	DueDate      time.Time  `json:"due_date" db:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty" db:"return_date"`
	Status       Status     `json:"status" db:"status"`
	CreatedBy    uuid.UUID  `json:"created_by" db:"created_by"`
}

// Detail is a lending record joined with its book and member context for
// listing pages.
type Detail struct {
	Record
	BookTitle   string `json:"book_title" db:"book_title"`
	BookAuthor  string `json:"book_author" db:"book_author"`
	MemberName  string `json:"member_name" db:"member_name"`
	MemberEmail string `json:"member_email" db:"member_email"`
}
