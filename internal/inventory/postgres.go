// internal/inventory/postgres.go
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	tableBookStatus = "book_status"
	colBookID       = "book_id"
	colAvailableQty = "available_qty"
	colBorrowedQty  = "borrowed_qty"
	colUpdatedAt    = "updated_at"
)

var dialect = goqu.Dialect("postgres")

// PostgresStore persists ledger rows in the book_status table. Both counter
// mutators are single conditional UPDATE statements checked via rows
// affected, so concurrent reservations of the last copy cannot both succeed
// and no lost update is possible.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new Postgres-backed ledger store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindStatus(ctx context.Context, bookID uuid.UUID) (*Status, error) {
	query, args, err := dialect.From(tableBookStatus).
		Select(colBookID, colAvailableQty, colBorrowedQty, colUpdatedAt).
		Where(goqu.C(colBookID).Eq(bookID.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	status := &Status{}
	if err := s.db.GetContext(ctx, status, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("query inventory status: %w", err)
	}

	return status, nil
}

func (s *PostgresStore) InsertStatusIfAbsent(ctx context.Context, status Status) error {
	query, args, err := dialect.Insert(tableBookStatus).
		Cols(colBookID, colAvailableQty, colBorrowedQty).
		Vals(goqu.Vals{status.BookID.String(), status.AvailableQty, status.BorrowedQty}).
		OnConflict(goqu.DoNothing()).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build status insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert inventory status: %w", err)
	}

	return nil
}

func (s *PostgresStore) DecrementAvailable(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query, args, err := dialect.Update(tableBookStatus).
		Set(goqu.Record{
			colAvailableQty: goqu.L("available_qty - 1"),
			colBorrowedQty:  goqu.L("borrowed_qty + 1"),
			colUpdatedAt:    goqu.L("NOW()"),
		}).
		Where(
			goqu.C(colBookID).Eq(bookID.String()),
			goqu.C(colAvailableQty).Gte(1),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build decrement statement: %w", err)
	}

	return s.execCountingRows(ctx, query, args)
}

func (s *PostgresStore) IncrementAvailable(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query, args, err := dialect.Update(tableBookStatus).
		Set(goqu.Record{
			colAvailableQty: goqu.L("available_qty + 1"),
			colBorrowedQty:  goqu.L("borrowed_qty - 1"),
			colUpdatedAt:    goqu.L("NOW()"),
		}).
		Where(
			goqu.C(colBookID).Eq(bookID.String()),
			goqu.C(colBorrowedQty).Gte(1),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build increment statement: %w", err)
	}

	return s.execCountingRows(ctx, query, args)
}

func (s *PostgresStore) AdjustAvailable(ctx context.Context, bookID uuid.UUID, delta int) error {
	query, args, err := dialect.Update(tableBookStatus).
		Set(goqu.Record{
			colAvailableQty: goqu.L("GREATEST(available_qty + ?, 0)", delta),
			colUpdatedAt:    goqu.L("NOW()"),
		}).
		Where(goqu.C(colBookID).Eq(bookID.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build adjust statement: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust available quantity: %w", err)
	}

	return nil
}

func (s *PostgresStore) execCountingRows(ctx context.Context, query string, args []interface{}) (bool, error) {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("execute counter update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected == 1, nil
}
