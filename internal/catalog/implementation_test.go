package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraledger/internal/inventory"
)

type catalogFixture struct {
	store   *MemoryStore
	ledger  inventory.Ledger
	service Service
}

func newCatalogFixture(t *testing.T) (*catalogFixture, *Category) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryStore()
	ledger := inventory.NewLedger(inventory.NewMemoryStore(), logger)
	f := &catalogFixture{
		store:   store,
		ledger:  ledger,
		service: NewService(store, ledger, logger),
	}

	category, err := f.service.CreateCategory(context.Background(), "Science Fiction")
	require.NoError(t, err)
	return f, category
}

func TestCreateBook(t *testing.T) {
	f, category := newCatalogFixture(t)
	ctx := context.Background()

	book, err := f.service.CreateBook(ctx, CreateBookInput{
		Title:      "Dune",
		Author:     "Frank Herbert",
		ISBN:       "9780441013593",
		Quantity:   4,
		CategoryID: category.ID,
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, 4, book.Quantity)
	assert.False(t, book.CreatedAt.IsZero())

	found, err := f.service.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
}

func TestCreateBookRejectsNegativeQuantity(t *testing.T) {
	f, category := newCatalogFixture(t)

	_, err := f.service.CreateBook(context.Background(), CreateBookInput{
		Title:      "Dune",
		Author:     "Frank Herbert",
		Quantity:   -1,
		CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBookUnknownCategory(t *testing.T) {
	f, _ := newCatalogFixture(t)

	_, err := f.service.CreateBook(context.Background(), CreateBookInput{
		Title:      "Dune",
		Author:     "Frank Herbert",
		Quantity:   1,
		CategoryID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateBookAdjustsLedgerByDelta(t *testing.T) {
	f, category := newCatalogFixture(t)
	ctx := context.Background()

	book, err := f.service.CreateBook(ctx, CreateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 3, CategoryID: category.ID,
	})
	require.NoError(t, err)

	// One copy out on loan before the quantity change.
	require.NoError(t, f.ledger.EnsureInitialized(ctx, book.ID, 3))
	require.NoError(t, f.ledger.ReserveOne(ctx, book.ID))

	updated, err := f.service.UpdateBook(ctx, book.ID, UpdateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 5, CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	// available moved by +2; the borrowed copy is untouched.
	status, err := f.ledger.Status(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, status.AvailableQty)
	assert.Equal(t, 1, status.BorrowedQty)
}

func TestUpdateBookShrinkingQuantity(t *testing.T) {
	f, category := newCatalogFixture(t)
	ctx := context.Background()

	book, err := f.service.CreateBook(ctx, CreateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 3, CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.ledger.EnsureInitialized(ctx, book.ID, 3))

	_, err = f.service.UpdateBook(ctx, book.ID, UpdateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	status, err := f.ledger.Status(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.AvailableQty)
}

func TestUpdateBookNotFound(t *testing.T) {
	f, category := newCatalogFixture(t)

	_, err := f.service.UpdateBook(context.Background(), uuid.New(), UpdateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 1, CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestListBooksSearchAndPagination(t *testing.T) {
	f, category := newCatalogFixture(t)
	ctx := context.Background()

	titles := []string{"Dune", "Dune Messiah", "Hyperion"}
	for _, title := range titles {
		_, err := f.service.CreateBook(ctx, CreateBookInput{
			Title: title, Author: "Author", Quantity: 1, CategoryID: category.ID,
		})
		require.NoError(t, err)
	}

	books, total, err := f.service.ListBooks(ctx, "dune", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, books, 2)

	books, total, err = f.service.ListBooks(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, books, 1)
}

func TestDeleteBook(t *testing.T) {
	f, category := newCatalogFixture(t)
	ctx := context.Background()

	book, err := f.service.CreateBook(ctx, CreateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteBook(ctx, book.ID))

	_, err = f.service.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = f.service.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCategoryLifecycle(t *testing.T) {
	f, category := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateCategory(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := f.service.UpdateCategory(ctx, category.ID, "Speculative Fiction")
	require.NoError(t, err)
	assert.Equal(t, "Speculative Fiction", updated.Name)

	book, err := f.service.CreateBook(ctx, CreateBookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	books, err := f.service.CategoryBooks(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.ID, books[0].ID)

	_, err = f.service.CategoryBooks(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, f.service.DeleteCategory(ctx, category.ID))
	_, err = f.service.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
