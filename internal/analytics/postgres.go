// internal/analytics/postgres.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jmoiron/sqlx"
)

var dialect = goqu.Dialect("postgres")

// PostgresStore runs the aggregation queries against the circulation tables.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new Postgres-backed analytics store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) MostBorrowed(ctx context.Context, limit int) ([]*MostBorrowedBook, error) {
	query, args, err := dialect.From(goqu.T("lendings").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(
			goqu.I("l.book_id"),
			goqu.I("b.title").As("book_title"),
			goqu.I("b.author").As("book_author"),
			goqu.COUNT(goqu.Star()).As("borrow_count"),
		).
		GroupBy(goqu.I("l.book_id"), goqu.I("b.title"), goqu.I("b.author")).
		Order(goqu.I("borrow_count").Desc()).
		Limit(uint(limit)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build most borrowed query: %w", err)
	}

	books := []*MostBorrowedBook{}
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("query most borrowed: %w", err)
	}
	return books, nil
}

func (s *PostgresStore) BorrowDatesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	query, args, err := dialect.From("lendings").
		Select(goqu.C("borrowed_date")).
		Where(goqu.C("borrowed_date").Gte(since)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build borrow dates query: %w", err)
	}

	dates := []time.Time{}
	if err := s.db.SelectContext(ctx, &dates, query, args...); err != nil {
		return nil, fmt.Errorf("query borrow dates: %w", err)
	}
	return dates, nil
}

func (s *PostgresStore) CategoryDistribution(ctx context.Context) ([]*CategoryCount, error) {
	query, args, err := dialect.From(goqu.T("books").As("b")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.category_id")))).
		Select(
			goqu.I("b.category_id"),
			goqu.I("c.name").As("category_name"),
			goqu.COUNT(goqu.Star()).As("book_count"),
		).
		GroupBy(goqu.I("b.category_id"), goqu.I("c.name")).
		Order(goqu.I("book_count").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build category distribution query: %w", err)
	}

	counts := []*CategoryCount{}
	if err := s.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("query category distribution: %w", err)
	}
	return counts, nil
}
