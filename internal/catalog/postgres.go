// internal/catalog/postgres.go
package catalog

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
	tableBooks      = "books"
	tableCategories = "categories"
)

var bookColumns = []interface{}{
	"id", "title", "author", "isbn", "quantity", "category_id", "created_by", "created_at", "updated_at",
}

var dialect = goqu.Dialect("postgres")

// PostgresStore persists books and categories.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new Postgres-backed catalog store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertBook(ctx context.Context, book *Book) error {
	query, args, err := dialect.Insert(tableBooks).
		Cols("id", "title", "author", "isbn", "quantity", "category_id", "created_by", "created_at", "updated_at").
		Vals(goqu.Vals{
			book.ID.String(), book.Title, book.Author, book.ISBN, book.Quantity,
			book.CategoryID.String(), book.CreatedBy.String(), book.CreatedAt, book.UpdatedAt,
		}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build book insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	query, args, err := dialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build book query: %w", err)
	}

	book := &Book{}
	if err := s.db.GetContext(ctx, book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("query book: %w", err)
	}
	return book, nil
}

func (s *PostgresStore) ListBooks(ctx context.Context, search string, limit, offset int) ([]*Book, int, error) {
	base := dialect.From(tableBooks)
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("author").ILike(pattern),
		))
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT("*")).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build book count: %w", err)
	}
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query, args, err := base.Select(bookColumns...).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).Offset(uint(offset)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build book list: %w", err)
	}

	books := []*Book{}
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, nil
}

func (s *PostgresStore) UpdateBook(ctx context.Context, book *Book) error {
	query, args, err := dialect.Update(tableBooks).
		Set(goqu.Record{
			"title":       book.Title,
			"author":      book.Author,
			"isbn":        book.ISBN,
			"quantity":    book.Quantity,
			"category_id": book.CategoryID.String(),
			"updated_at":  book.UpdatedAt,
		}).
		Where(goqu.C("id").Eq(book.ID.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build book update: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	query, args, err := dialect.Delete(tableBooks).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build book delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertCategory(ctx context.Context, category *Category) error {
	query, args, err := dialect.Insert(tableCategories).
		Cols("id", "name", "created_at", "updated_at").
		Vals(goqu.Vals{category.ID.String(), category.Name, category.CreatedAt, category.UpdatedAt}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build category insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	query, args, err := dialect.From(tableCategories).
		Select("id", "name", "created_at", "updated_at").
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}

	category := &Category{}
	if err := s.db.GetContext(ctx, category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return category, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error) {
	base := dialect.From(tableCategories)
	if search != "" {
		base = base.Where(goqu.C("name").ILike("%" + search + "%"))
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT("*")).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build category count: %w", err)
	}
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query, args, err := base.Select("id", "name", "created_at", "updated_at").
		Order(goqu.C("name").Asc()).
		Limit(uint(limit)).Offset(uint(offset)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build category list: %w", err)
	}

	categories := []*Category{}
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return categories, total, nil
}

func (s *PostgresStore) BooksByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Book, error) {
	query, args, err := dialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("category_id").Eq(categoryID.String())).
		Order(goqu.C("title").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build category books query: %w", err)
	}

	books := []*Book{}
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("query category books: %w", err)
	}
	return books, nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, category *Category) error {
	query, args, err := dialect.Update(tableCategories).
		Set(goqu.Record{
			"name":       category.Name,
			"updated_at": category.UpdatedAt,
		}).
		Where(goqu.C("id").Eq(category.ID.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build category update: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	query, args, err := dialect.Delete(tableCategories).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build category delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
