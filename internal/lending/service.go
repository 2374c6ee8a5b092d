// internal/lending/service.go
package lending

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libraledger/internal/catalog"
	"libraledger/internal/membership"
)

// Service is the lending transaction manager. Borrow and Return each run the
// paired record/counter transition as one logical unit of work.
type Service interface {
	Borrow(ctx context.Context, bookID, memberID uuid.UUID, dueDate time.Time, actorID uuid.UUID) (*Record, error)
	Return(ctx context.Context, lendingID uuid.UUID) (*Record, error)
	Get(ctx context.Context, id uuid.UUID) (*Detail, error)
	List(ctx context.Context) ([]*Detail, error)
}

// Store is the persistence collaborator for lending records and the lookups
// a borrow needs. MarkReturned is a conditional transition guarded on the
// BORROWED state so a racing double return cannot both succeed.
type Store interface {
	FindBook(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
	FindMember(ctx context.Context, id uuid.UUID) (*membership.Member, error)

	CreateRecord(ctx context.Context, record *Record) error
	FindRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error)

	FindDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListDetails(ctx context.Context) ([]*Detail, error)
}
