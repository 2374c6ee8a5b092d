// internal/inventory/implementation.go
package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ledger implements the Ledger interface over a Store.
type ledger struct {
	store  Store
	logger *slog.Logger
	tracer trace.Tracer
}

// NewLedger creates a new inventory ledger instance.
func NewLedger(store Store, logger *slog.Logger) Ledger {
	return &ledger{
		store:  store,
		logger: logger,
		tracer: otel.Tracer("libraledger/inventory"),
	}
}

func (l *ledger) EnsureInitialized(ctx context.Context, bookID uuid.UUID, totalQuantity int) error {
	ctx, span := l.tracer.Start(ctx, "inventory.ensure_initialized",
		trace.WithAttributes(
			attribute.String("book.id", bookID.String()),
			attribute.Int("book.quantity", totalQuantity),
		),
	)
	defer span.End()

	if totalQuantity < 0 {
		return fmt.Errorf("invalid total quantity %d for book %s", totalQuantity, bookID)
	}

	status := Status{
		BookID:       bookID,
		AvailableQty: totalQuantity,
		BorrowedQty:  0,
	}
	if err := l.store.InsertStatusIfAbsent(ctx, status); err != nil {
		return fmt.Errorf("initialize inventory status: %w", err)
	}

	return nil
}

func (l *ledger) ReserveOne(ctx context.Context, bookID uuid.UUID) error {
	ctx, span := l.tracer.Start(ctx, "inventory.reserve_one",
		trace.WithAttributes(attribute.String("book.id", bookID.String())),
	)
	defer span.End()

	reserved, err := l.store.DecrementAvailable(ctx, bookID)
	if err != nil {
		return fmt.Errorf("reserve copy: %w", err)
	}
	if !reserved {
		// Zero rows qualified: either the row is missing or every copy
		// is already out. Borrow callers run EnsureInitialized first,
		// so distinguish the two for the error taxonomy.
		if _, findErr := l.store.FindStatus(ctx, bookID); findErr != nil {
			span.SetAttributes(attribute.Bool("status.missing", true))
			return findErr
		}
		span.SetAttributes(attribute.Bool("stock.exhausted", true))
		return ErrInsufficientStock
	}

	return nil
}

func (l *ledger) ReleaseOne(ctx context.Context, bookID uuid.UUID) error {
	ctx, span := l.tracer.Start(ctx, "inventory.release_one",
		trace.WithAttributes(attribute.String("book.id", bookID.String())),
	)
	defer span.End()

	released, err := l.store.IncrementAvailable(ctx, bookID)
	if err != nil {
		return fmt.Errorf("release copy: %w", err)
	}
	if !released {
		l.logger.ErrorContext(ctx, "release with no outstanding loans",
			slog.String("book_id", bookID.String()))
		return ErrNoLoansOutstanding
	}

	return nil
}

func (l *ledger) AdjustQuantity(ctx context.Context, bookID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}

	ctx, span := l.tracer.Start(ctx, "inventory.adjust_quantity",
		trace.WithAttributes(
			attribute.String("book.id", bookID.String()),
			attribute.Int("delta", delta),
		),
	)
	defer span.End()

	if err := l.store.AdjustAvailable(ctx, bookID, delta); err != nil {
		return fmt.Errorf("adjust available quantity: %w", err)
	}

	return nil
}

func (l *ledger) Status(ctx context.Context, bookID uuid.UUID) (*Status, error) {
	return l.store.FindStatus(ctx, bookID)
}
