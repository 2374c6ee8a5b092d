// internal/membership/postgres.go
package membership

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

const tableMembers = "members"

var memberColumns = []interface{}{
	"id", "name", "email", "phone", "status", "joined_date", "created_at", "updated_at",
}

var dialect = goqu.Dialect("postgres")

// PostgresStore persists members.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new Postgres-backed membership store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertMember(ctx context.Context, member *Member) error {
	query, args, err := dialect.Insert(tableMembers).
		Cols("id", "name", "email", "phone", "status", "joined_date", "created_at", "updated_at").
		Vals(goqu.Vals{
			member.ID.String(), member.Name, member.Email, member.Phone,
			member.Status, member.JoinedDate, member.CreatedAt, member.UpdatedAt,
		}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build member insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	query, args, err := dialect.From(tableMembers).
		Select(memberColumns...).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build member query: %w", err)
	}

	member := &Member{}
	if err := s.db.GetContext(ctx, member, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("query member: %w", err)
	}
	return member, nil
}

func (s *PostgresStore) ListMembers(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error) {
	base := dialect.From(tableMembers)
	if filter.Status != "" {
		base = base.Where(goqu.C("status").Eq(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("email").ILike(pattern),
		))
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT("*")).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build member count: %w", err)
	}
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	query, args, err := base.Select(memberColumns...).
		Order(goqu.C("joined_date").Desc()).
		Limit(uint(limit)).Offset(uint(offset)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build member list: %w", err)
	}

	members := []*Member{}
	if err := s.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	return members, total, nil
}

func (s *PostgresStore) UpdateMember(ctx context.Context, member *Member) error {
	query, args, err := dialect.Update(tableMembers).
		Set(goqu.Record{
			"name":        member.Name,
			"email":       member.Email,
			"phone":       member.Phone,
			"status":      member.Status,
			"joined_date": member.JoinedDate,
			"updated_at":  member.UpdatedAt,
		}).
		Where(goqu.C("id").Eq(member.ID.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build member update: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteMember(ctx context.Context, id uuid.UUID) error {
	query, args, err := dialect.Delete(tableMembers).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build member delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
