// Package store provides the in-memory read models the services project
// state into. Stores hand out copies, never shared pointers, so a caller
// mutating a record cannot bypass the service layer.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"libracore/internal/catalog"
	"libracore/internal/circulation"
	"libracore/internal/membership"
)

var ErrNotFound = fmt.Errorf("not found")

// MemberStore keeps members keyed by ID.
type MemberStore struct {
	mu      sync.RWMutex
	members map[uuid.UUID]membership.Member
}

func NewMemberStore() *MemberStore {
	return &MemberStore{members: make(map[uuid.UUID]membership.Member)}
}

func (s *MemberStore) Insert(_ context.Context, member *membership.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.members[member.ID]; exists {
		return fmt.Errorf("member %s already exists", member.ID)
	}
	s.members[member.ID] = *member
	return nil
}

func (s *MemberStore) Get(_ context.Context, id uuid.UUID) (*membership.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return &member, nil
}

func (s *MemberStore) Update(_ context.Context, member *membership.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member.ID]; !ok {
		return fmt.Errorf("member %s: %w", member.ID, ErrNotFound)
	}
	s.members[member.ID] = *member
	return nil
}

// BookStore keeps books keyed by ID.
type BookStore struct {
	mu    sync.RWMutex
	books map[uuid.UUID]catalog.Book
}

func NewBookStore() *BookStore {
	return &BookStore{books: make(map[uuid.UUID]catalog.Book)}
}

func (s *BookStore) Insert(_ context.Context, book *catalog.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.books[book.ID]; exists {
		return fmt.Errorf("book %s already exists", book.ID)
	}
	s.books[book.ID] = copyBook(book)
	return nil
}

func (s *BookStore) Get(_ context.Context, id uuid.UUID) (*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[id]
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	out := copyBook(&book)
	return &out, nil
}

func (s *BookStore) Update(_ context.Context, book *catalog.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[book.ID]; !ok {
		return fmt.Errorf("book %s: %w", book.ID, ErrNotFound)
	}
	s.books[book.ID] = copyBook(book)
	return nil
}

func (s *BookStore) List(_ context.Context) ([]*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]*catalog.Book, 0, len(s.books))
	for id := range s.books {
		book := s.books[id]
		out := copyBook(&book)
		books = append(books, &out)
	}
	return books, nil
}

// copyBook deep-copies the keywords slice along with the record.
func copyBook(book *catalog.Book) catalog.Book {
	out := *book
	if book.Keywords != nil {
		out.Keywords = append([]string(nil), book.Keywords...)
	}
	return out
}

// LoanStore keeps loans keyed by ID with a per-member index.
type LoanStore struct {
	mu       sync.RWMutex
	loans    map[uuid.UUID]circulation.Loan
	byMember map[uuid.UUID][]uuid.UUID
}

func NewLoanStore() *LoanStore {
	return &LoanStore{
		loans:    make(map[uuid.UUID]circulation.Loan),
		byMember: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *LoanStore) Insert(_ context.Context, loan *circulation.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.loans[loan.ID]; exists {
		return fmt.Errorf("loan %s already exists", loan.ID)
	}
	s.loans[loan.ID] = *loan
	s.byMember[loan.MemberID] = append(s.byMember[loan.MemberID], loan.ID)
	return nil
}

func (s *LoanStore) Get(_ context.Context, id uuid.UUID) (*circulation.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loan, ok := s.loans[id]
	if !ok {
		return nil, fmt.Errorf("loan %s: %w", id, ErrNotFound)
	}
	return &loan, nil
}

func (s *LoanStore) Update(_ context.Context, loan *circulation.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[loan.ID]; !ok {
		return fmt.Errorf("loan %s: %w", loan.ID, ErrNotFound)
	}
	s.loans[loan.ID] = *loan
	return nil
}

func (s *LoanStore) ByMember(_ context.Context, memberID uuid.UUID) ([]*circulation.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byMember[memberID]
	loans := make([]*circulation.Loan, 0, len(ids))
	for _, id := range ids {
		loan := s.loans[id]
		loans = append(loans, &loan)
	}
	return loans, nil
}

// HoldStore keeps holds keyed by ID with a per-book index.
type HoldStore struct {
	mu     sync.RWMutex
	holds  map[uuid.UUID]circulation.Hold
	byBook map[uuid.UUID][]uuid.UUID
}

func NewHoldStore() *HoldStore {
	return &HoldStore{
		holds:  make(map[uuid.UUID]circulation.Hold),
		byBook: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *HoldStore) Insert(_ context.Context, hold *circulation.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.holds[hold.ID]; exists {
		return fmt.Errorf("hold %s already exists", hold.ID)
	}
	s.holds[hold.ID] = *hold
	s.byBook[hold.BookID] = append(s.byBook[hold.BookID], hold.ID)
	return nil
}

func (s *HoldStore) Get(_ context.Context, id uuid.UUID) (*circulation.Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hold, ok := s.holds[id]
	if !ok {
		return nil, fmt.Errorf("hold %s: %w", id, ErrNotFound)
	}
	return &hold, nil
}

func (s *HoldStore) Update(_ context.Context, hold *circulation.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.holds[hold.ID]; !ok {
		return fmt.Errorf("hold %s: %w", hold.ID, ErrNotFound)
	}
	s.holds[hold.ID] = *hold
	return nil
}

func (s *HoldStore) PendingByBook(_ context.Context, bookID uuid.UUID) ([]*circulation.Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []*circulation.Hold
	for _, id := range s.byBook[bookID] {
		hold := s.holds[id]
		if hold.Status == circulation.HoldPending {
			h := hold
			pending = append(pending, &h)
		}
	}
	return pending, nil
}
