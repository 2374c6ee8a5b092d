// internal/lending/implementation.go
package lending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"libraledger/internal/inventory"
)

// service implements the Service interface.
type service struct {
	store  Store
	ledger inventory.Ledger
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time

	borrows metric.Int64Counter
	returns metric.Int64Counter
}

// NewService creates a new lending transaction manager.
func NewService(store Store, ledger inventory.Ledger, logger *slog.Logger) Service {
	meter := otel.Meter("libraledger/lending")
	borrows, _ := meter.Int64Counter("lending.borrow.count",
		metric.WithDescription("Completed borrow operations"))
	returns, _ := meter.Int64Counter("lending.return.count",
		metric.WithDescription("Completed return operations"))

	return &service{
		store:   store,
		ledger:  ledger,
		logger:  logger,
		tracer:  otel.Tracer("libraledger/lending"),
		now:     func() time.Time { return time.Now().UTC() },
		borrows: borrows,
		returns: returns,
	}
}

// Borrow checks out one copy of a book to a member. The ordering is
// reserve-then-create: a stock failure aborts before any record exists, and
// the only compensation path is releasing the reservation when record
// creation fails.
func (s *service) Borrow(ctx context.Context, bookID, memberID uuid.UUID, dueDate time.Time, actorID uuid.UUID) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "lending.borrow",
		trace.WithAttributes(
			attribute.String("book.id", bookID.String()),
			attribute.String("member.id", memberID.String()),
		),
	)
	defer span.End()

	if dueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrInvalidInput)
	}

	book, err := s.store.FindBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindMember(ctx, memberID); err != nil {
		return nil, err
	}

	// Lazy-migration path for books created before the ledger existed.
	if err := s.ledger.EnsureInitialized(ctx, bookID, book.Quantity); err != nil {
		return nil, fmt.Errorf("ensure inventory initialized: %w", err)
	}

	if err := s.ledger.ReserveOne(ctx, bookID); err != nil {
		if errors.Is(err, inventory.ErrInsufficientStock) {
			span.SetAttributes(attribute.Bool("stock.exhausted", true))
			return nil, ErrNoCopiesAvailable
		}
		return nil, fmt.Errorf("reserve copy: %w", err)
	}

	record := &Record{
		ID:           uuid.New(),
		BookID:       bookID,
		MemberID:     memberID,
		BorrowedDate: s.now(),
		DueDate:      dueDate,
		Status:       StatusBorrowed,
		CreatedBy:    actorID,
	}

	if err := s.store.CreateRecord(ctx, record); err != nil {
		// The reservation already succeeded; undo it so the copy is
		// not stranded as borrowed with no record.
		if releaseErr := s.ledger.ReleaseOne(ctx, bookID); releaseErr != nil {
			s.logger.ErrorContext(ctx, "DATA INTEGRITY: reservation rollback failed, counters need reconciliation",
				slog.String("book_id", bookID.String()),
				slog.String("create_error", err.Error()),
				slog.String("release_error", releaseErr.Error()))
			return nil, fmt.Errorf("%w: record creation and rollback both failed: %v", ErrInconsistency, err)
		}
		return nil, fmt.Errorf("create lending record: %w", err)
	}

	s.borrows.Add(ctx, 1)
	span.SetAttributes(attribute.String("lending.id", record.ID.String()))

	return record, nil
}

// Return marks a lending record returned and releases the copy back to the
// ledger. The record transition commits first; a release failure afterwards
// leaves a correct record with stale counters, which is surfaced as
// ErrInconsistency and logged for manual reconciliation rather than ignored.
func (s *service) Return(ctx context.Context, lendingID uuid.UUID) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "lending.return",
		trace.WithAttributes(attribute.String("lending.id", lendingID.String())),
	)
	defer span.End()

	record, err := s.store.FindRecord(ctx, lendingID)
	if err != nil {
		return nil, err
	}
	if record.Status == StatusReturned {
		return nil, ErrAlreadyReturned
	}

	returnedAt := s.now()
	transitioned, err := s.store.MarkReturned(ctx, lendingID, returnedAt)
	if err != nil {
		return nil, fmt.Errorf("mark returned: %w", err)
	}
	if !transitioned {
		// A concurrent return won the race between our status check and
		// the conditional update.
		return nil, ErrAlreadyReturned
	}

	record.Status = StatusReturned
	record.ReturnDate = &returnedAt

	if err := s.ledger.ReleaseOne(ctx, record.BookID); err != nil {
		s.logger.ErrorContext(ctx, "DATA INTEGRITY: record returned but counter release failed, counters need reconciliation",
			slog.String("lending_id", lendingID.String()),
			slog.String("book_id", record.BookID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: release after return: %v", ErrInconsistency, err)
	}

	s.returns.Add(ctx, 1)

	return record, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return s.store.FindDetail(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Detail, error) {
	return s.store.ListDetails(ctx)
}
