package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libracore/internal/catalog"
	"libracore/internal/circulation"
	"libracore/internal/membership"
	"libracore/internal/store"
)

func TestMemberStoreCRUD(t *testing.T) {
	s := store.NewMemberStore()
	ctx := context.Background()

	member := &membership.Member{ID: uuid.New(), Email: "a@example.com", Name: "A", Role: membership.RolePatron, Version: 1}
	require.NoError(t, s.Insert(ctx, member))
	assert.Error(t, s.Insert(ctx, member), "duplicate insert must fail")

	got, err := s.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	got.CurrentBorrows = 3
	require.NoError(t, s.Update(ctx, got))
	again, err := s.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.CurrentBorrows)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &membership.Member{ID: uuid.New()}), store.ErrNotFound)
}

func TestMemberStoreReturnsCopies(t *testing.T) {
	s := store.NewMemberStore()
	ctx := context.Background()
	member := &membership.Member{ID: uuid.New(), Email: "a@example.com", Version: 1}
	require.NoError(t, s.Insert(ctx, member))

	got, err := s.Get(ctx, member.ID)
	require.NoError(t, err)
	got.FinesOwed = 500

	fresh, err := s.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.FinesOwed, "mutating a returned record must not touch the store")
}

func TestBookStoreDeepCopiesKeywords(t *testing.T) {
	s := store.NewBookStore()
	ctx := context.Background()
	book := &catalog.Book{ID: uuid.New(), Title: "Dune", Keywords: []string{"fiction"}, Version: 1}
	require.NoError(t, s.Insert(ctx, book))

	got, err := s.Get(ctx, book.ID)
	require.NoError(t, err)
	got.Keywords[0] = "mutated"

	fresh, err := s.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fiction"}, fresh.Keywords)
}

func TestBookStoreList(t *testing.T) {
	s := store.NewBookStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Insert(ctx, &catalog.Book{ID: uuid.New(), Title: "Book", Version: 1}))
	}
	books, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 3)
}

func TestLoanStoreByMember(t *testing.T) {
	s := store.NewLoanStore()
	ctx := context.Background()
	memberID := uuid.New()

	for i := 0; i < 2; i++ {
		loan := &circulation.Loan{ID: uuid.New(), MemberID: memberID, BookID: uuid.New(), DueDate: time.Now(), Status: circulation.LoanActive, Version: 1}
		require.NoError(t, s.Insert(ctx, loan))
	}
	other := &circulation.Loan{ID: uuid.New(), MemberID: uuid.New(), BookID: uuid.New(), Status: circulation.LoanActive, Version: 1}
	require.NoError(t, s.Insert(ctx, other))

	loans, err := s.ByMember(ctx, memberID)
	require.NoError(t, err)
	assert.Len(t, loans, 2)

	none, err := s.ByMember(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHoldStorePendingByBookFiltersStatus(t *testing.T) {
	s := store.NewHoldStore()
	ctx := context.Background()
	bookID := uuid.New()

	pending := &circulation.Hold{ID: uuid.New(), BookID: bookID, MemberID: uuid.New(), Status: circulation.HoldPending, QueuePosition: 1, Version: 1}
	cancelled := &circulation.Hold{ID: uuid.New(), BookID: bookID, MemberID: uuid.New(), Status: circulation.HoldPending, QueuePosition: 2, Version: 1}
	require.NoError(t, s.Insert(ctx, pending))
	require.NoError(t, s.Insert(ctx, cancelled))

	cancelled.Status = circulation.HoldCancelled
	require.NoError(t, s.Update(ctx, cancelled))

	got, err := s.PendingByBook(ctx, bookID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
}
