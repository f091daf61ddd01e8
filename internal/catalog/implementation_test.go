package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libracore/internal/catalog"
	"libracore/internal/store"
	"libracore/pkg/ledger"
)

func newService() catalog.Service {
	return catalog.NewService(ledger.New(), store.NewBookStore())
}

func TestAddBookDefaults(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	book, err := svc.AddBook(ctx, catalog.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
		ISBN:   "9780441013593",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, 1, book.TotalCopies)
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Equal(t, "available", book.Status)
	assert.False(t, book.AddedDate.IsZero())
	assert.Equal(t, 1, book.Version)
}

func TestAddBookRequiresCoreFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddBook(ctx, catalog.Book{Author: "Frank Herbert", ISBN: "9780441013593"})
	assert.Error(t, err)
	_, err = svc.AddBook(ctx, catalog.Book{Title: "Dune", ISBN: "9780441013593"})
	assert.Error(t, err)
	_, err = svc.AddBook(ctx, catalog.Book{Title: "Dune", Author: "Frank Herbert"})
	assert.Error(t, err)
}

func TestAddBooksBatch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	added, err := svc.AddBooks(ctx, []catalog.Book{
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", TotalCopies: 3},
		{Title: "Hamlet", Author: "Shakespeare", ISBN: "9780743477123"},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)

	all, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdjustCopies(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	book, err := svc.AddBook(ctx, catalog.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", TotalCopies: 3})
	require.NoError(t, err)

	require.NoError(t, svc.AdjustCopies(ctx, book.ID, 5, 4))

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalCopies)
	assert.Equal(t, 4, got.AvailableCopies)

	assert.Error(t, svc.AdjustCopies(ctx, book.ID, 5, 6), "available cannot exceed total")
	assert.Error(t, svc.AdjustCopies(ctx, book.ID, 5, -1))
}

func TestSearch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddBooks(ctx, []catalog.Book{
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Keywords: []string{"science fiction", "desert"}},
		{Title: "Dune Messiah", Author: "Frank Herbert", ISBN: "9780441172696"},
		{Title: "Hamlet", Author: "William Shakespeare", ISBN: "9780743477123", Keywords: []string{"drama"}},
	})
	require.NoError(t, err)

	byTitle, err := svc.Search(ctx, "dune")
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	byAuthor, err := svc.Search(ctx, "shakespeare")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 1)

	byKeyword, err := svc.Search(ctx, "desert")
	require.NoError(t, err)
	assert.Len(t, byKeyword, 1)

	none, err := svc.Search(ctx, "tolstoy")
	require.NoError(t, err)
	assert.Empty(t, none)

	blank, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, blank)
}
