// internal/lending/postgres.go
package lending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libraledger/internal/catalog"
	"libraledger/internal/membership"
)

const tableLendings = "lendings"

var recordColumns = []interface{}{
	"id", "book_id", "member_id", "borrowed_date", "due_date", "return_date", "status", "created_by",
}

var dialect = goqu.Dialect("postgres")

// PostgresStore persists lending records and delegates book/member lookups
// to the catalog and membership stores over the same connection pool.
type PostgresStore struct {
	db      *sqlx.DB
	books   *catalog.PostgresStore
	members *membership.PostgresStore
}

// NewPostgresStore creates a new Postgres-backed lending store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		books:   catalog.NewPostgresStore(db),
		members: membership.NewPostgresStore(db),
	}
}

func (s *PostgresStore) FindBook(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	return s.books.FindBook(ctx, id)
}

func (s *PostgresStore) FindMember(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	return s.members.FindMember(ctx, id)
}

func (s *PostgresStore) CreateRecord(ctx context.Context, record *Record) error {
	query, args, err := dialect.Insert(tableLendings).
		Cols("id", "book_id", "member_id", "borrowed_date", "due_date", "status", "created_by").
		Vals(goqu.Vals{
			record.ID.String(), record.BookID.String(), record.MemberID.String(),
			record.BorrowedDate, record.DueDate, string(record.Status), record.CreatedBy.String(),
		}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build record insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert lending record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	query, args, err := dialect.From(tableLendings).
		Select(recordColumns...).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build record query: %w", err)
	}

	record := &Record{}
	if err := s.db.GetContext(ctx, record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLendingNotFound
		}
		return nil, fmt.Errorf("query lending record: %w", err)
	}
	return record, nil
}

// MarkReturned transitions a record to RETURNED only from BORROWED. The
// status guard in the WHERE clause makes a racing double return lose by
// matching zero rows instead of double-counting.
func (s *PostgresStore) MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error) {
	query, args, err := dialect.Update(tableLendings).
		Set(goqu.Record{
			"status":      string(StatusReturned),
			"return_date": returnedAt,
			"updated_at":  goqu.L("NOW()"),
		}).
		Where(
			goqu.C("id").Eq(id.String()),
			goqu.C("status").Eq(string(StatusBorrowed)),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build return update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark lending returned: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected == 1, nil
}

func (s *PostgresStore) FindDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	query, args, err := detailQuery().
		Where(goqu.I("l.id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build detail query: %w", err)
	}

	detail := &Detail{}
	if err := s.db.GetContext(ctx, detail, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLendingNotFound
		}
		return nil, fmt.Errorf("query lending detail: %w", err)
	}
	return detail, nil
}

func (s *PostgresStore) ListDetails(ctx context.Context) ([]*Detail, error) {
	query, args, err := detailQuery().
		Order(goqu.I("l.borrowed_date").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build detail list: %w", err)
	}

	details := []*Detail{}
	if err := s.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, fmt.Errorf("list lending details: %w", err)
	}
	return details, nil
}

func detailQuery() *goqu.SelectDataset {
	return dialect.From(goqu.T(tableLendings).As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("l.member_id")))).
		Select(
			goqu.I("l.id"), goqu.I("l.book_id"), goqu.I("l.member_id"),
			goqu.I("l.borrowed_date"), goqu.I("l.due_date"), goqu.I("l.return_date"),
			goqu.I("l.status"), goqu.I("l.created_by"),
			goqu.I("b.title").As("book_title"),
			goqu.I("b.author").As("book_author"),
			goqu.I("m.name").As("member_name"),
			goqu.I("m.email").As("member_email"),
		)
}
