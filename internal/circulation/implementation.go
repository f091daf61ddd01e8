// internal/circulation/implementation.go
package circulation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libracore/internal/catalog"
	"libracore/internal/membership"
	"libracore/pkg/ledger"
)

// MemberDirectory is the slice of the membership read model circulation needs.
type MemberDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*membership.Member, error)
	Update(ctx context.Context, member *membership.Member) error
}

// BookInventory is the slice of the catalog read model circulation needs.
type BookInventory interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
	Update(ctx context.Context, book *catalog.Book) error
}

// LoanStore is the loan read model.
type LoanStore interface {
	Insert(ctx context.Context, loan *Loan) error
	Get(ctx context.Context, id uuid.UUID) (*Loan, error)
	Update(ctx context.Context, loan *Loan) error
	ByMember(ctx context.Context, memberID uuid.UUID) ([]*Loan, error)
}

// HoldStore is the reservation read model.
type HoldStore interface {
	Insert(ctx context.Context, hold *Hold) error
	Get(ctx context.Context, id uuid.UUID) (*Hold, error)
	Update(ctx context.Context, hold *Hold) error
	PendingByBook(ctx context.Context, bookID uuid.UUID) ([]*Hold, error)
}

// service implements the Service interface.
type service struct {
	journal  *ledger.Ledger
	loans    LoanStore
	holds    HoldStore
	members  MemberDirectory
	books    BookInventory
	policies *PolicyTable
	fees     FeeStructure
}

// NewService creates a new circulation service instance.
func NewService(journal *ledger.Ledger, loans LoanStore, holds HoldStore, members MemberDirectory, books BookInventory, policies *PolicyTable, fees FeeStructure) Service {
	return &service{
		journal:  journal,
		loans:    loans,
		holds:    holds,
		members:  members,
		books:    books,
		policies: policies,
		fees:     fees,
	}
}

// Checkout runs the precondition chain and issues a loan. Preconditions are
// ordered: expired membership, overdue items, fines/borrowing limit, book
// availability. The first failing check's message is surfaced.
func (s *service) Checkout(ctx context.Context, memberID, bookID uuid.UUID) (*Loan, Decision, error) {
	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to get member: %w", err)
	}

	if membership.IsExpired(member.MembershipExpiry) {
		return nil, Deny("Membership expired. Please renew before checking out."), nil
	}

	loans, err := s.loans.ByMember(ctx, memberID)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to list loans: %w", err)
	}
	for _, loan := range loans {
		if loan.Status == LoanOverdue || (loan.Status == LoanActive && IsOverdue(loan.DueDate)) {
			return nil, Deny("You have overdue items. Please return them before checking out."), nil
		}
	}

	if d := s.policies.CanCheckout(member); !d.Allowed {
		return nil, d, nil
	}

	book, err := s.books.Get(ctx, bookID)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to get book: %w", err)
	}
	if book.AvailableCopies <= 0 {
		return nil, Deny("Book is not available."), nil
	}

	now := time.Now()
	loan := &Loan{
		ID:        uuid.New(),
		MemberID:  memberID,
		BookID:    bookID,
		IssueDate: now,
		DueDate:   s.policies.DueDateFor(now, member.Role),
		Status:    LoanActive,
		Version:   1,
	}

	eventData := LoanCheckedOutEvent{
		LoanID:   loan.ID,
		MemberID: memberID,
		BookID:   bookID,
		DueDate:  loan.DueDate,
	}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "LoanCheckedOut", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, loan.ID, "loan", 0, []ledger.Event{event}); err != nil {
		return nil, Decision{}, fmt.Errorf("failed to append event: %w", err)
	}

	book.AvailableCopies--
	if err := s.books.Update(ctx, book); err != nil {
		return nil, Decision{}, fmt.Errorf("failed to update book: %w", err)
	}

	member.CurrentBorrows++
	if err := s.members.Update(ctx, member); err != nil {
		return nil, Decision{}, fmt.Errorf("failed to update member: %w", err)
	}

	if err := s.loans.Insert(ctx, loan); err != nil {
		return nil, Decision{}, fmt.Errorf("failed to update read model: %w", err)
	}

	return loan, Allow(), nil
}

// Return closes a loan, computes any overdue fine against the fee structure
// and adds it to the member's balance.
func (s *service) Return(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	loan, err := s.loans.Get(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	if loan.Status != LoanActive && loan.Status != LoanOverdue {
		return nil, fmt.Errorf("loan %s is not active", loanID)
	}

	now := time.Now()
	fine := s.fees.CalculateFine(loan.DueDate, now)

	eventData := LoanReturnedEvent{LoanID: loanID, ReturnDate: now, Fine: fine}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "LoanReturned", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, loanID, "loan", loan.Version, []ledger.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	loan.ReturnDate = &now
	loan.Status = LoanReturned
	loan.Fine = fine
	loan.Version++

	member, err := s.members.Get(ctx, loan.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if fine > 0 {
		member.FinesOwed += fine
	}
	if member.CurrentBorrows > 0 {
		member.CurrentBorrows--
	}
	if err := s.members.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	book, err := s.books.Get(ctx, loan.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book.AvailableCopies < book.TotalCopies {
		book.AvailableCopies++
	}
	if err := s.books.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	return loan, nil
}

// Renew extends a loan's due date by a fixed increment. Eligibility is
// re-verified here, at the mutation point, and the version-checked append
// turns concurrent renewals of the same loan into a conflict.
func (s *service) Renew(ctx context.Context, loanID uuid.UUID) (*Loan, Decision, error) {
	loan, err := s.loans.Get(ctx, loanID)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to get loan: %w", err)
	}
	if loan.Status != LoanActive && loan.Status != LoanOverdue {
		return nil, Decision{}, fmt.Errorf("loan %s is not active", loanID)
	}

	pending, err := s.holds.PendingByBook(ctx, loan.BookID)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to list holds: %w", err)
	}

	hasHolds := len(pending) > 0
	if !CanRenew(loan.RenewCount, hasHolds) {
		if hasHolds {
			return nil, Deny("Cannot renew: another member has a hold on this book."), nil
		}
		return nil, Deny(fmt.Sprintf("Maximum renewals reached (%d/%d).", loan.RenewCount, MaxRenewals)), nil
	}

	newDueDate := loan.DueDate.AddDate(0, 0, RenewalExtensionDays)
	eventData := LoanRenewedEvent{
		LoanID:     loanID,
		NewDueDate: newDueDate,
		RenewCount: loan.RenewCount + 1,
	}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "LoanRenewed", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, loanID, "loan", loan.Version, []ledger.Event{event}); err != nil {
		return nil, Decision{}, fmt.Errorf("failed to append event: %w", err)
	}

	loan.DueDate = newDueDate
	loan.RenewCount++
	loan.Version++
	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, Decision{}, fmt.Errorf("failed to update read model: %w", err)
	}

	return loan, Allow(), nil
}

// MarkLost closes a loan as lost with the fine fixed at the replacement cost.
func (s *service) MarkLost(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	loan, err := s.loans.Get(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	if loan.Status != LoanActive && loan.Status != LoanOverdue {
		return nil, fmt.Errorf("loan %s is not active", loanID)
	}

	fine := s.fees.ReplacementCost
	eventData := LoanMarkedLostEvent{LoanID: loanID, Fine: fine}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "LoanMarkedLost", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, loanID, "loan", loan.Version, []ledger.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	loan.Status = LoanLost
	loan.Fine = fine
	loan.FinePaid = false
	loan.Version++

	member, err := s.members.Get(ctx, loan.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	member.FinesOwed += fine
	if member.CurrentBorrows > 0 {
		member.CurrentBorrows--
	}
	if err := s.members.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	// The copy is gone from the collection.
	book, err := s.books.Get(ctx, loan.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book.TotalCopies > 0 {
		book.TotalCopies--
	}
	if err := s.books.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	return loan, nil
}

// PayFine records a settled fine. The actual money movement belongs to the
// external payment processor; this only clears the balance.
func (s *service) PayFine(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	loan, err := s.loans.Get(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	if loan.Fine <= 0 || loan.FinePaid {
		return nil, fmt.Errorf("loan %s has no outstanding fine", loanID)
	}

	eventData := FinePaidEvent{LoanID: loanID, Amount: loan.Fine}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "FinePaid", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, loanID, "loan", loan.Version, []ledger.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	member, err := s.members.Get(ctx, loan.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	member.FinesOwed -= loan.Fine
	if member.FinesOwed < 0 {
		member.FinesOwed = 0
	}
	if err := s.members.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	loan.FinePaid = true
	loan.Version++
	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	return loan, nil
}

// PlaceHold queues a reservation behind any existing pending holds.
func (s *service) PlaceHold(ctx context.Context, memberID, bookID uuid.UUID) (*Hold, error) {
	if _, err := s.members.Get(ctx, memberID); err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	pending, err := s.holds.PendingByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holds: %w", err)
	}

	hold := &Hold{
		ID:            uuid.New(),
		MemberID:      memberID,
		BookID:        bookID,
		ReserveDate:   time.Now(),
		QueuePosition: len(pending) + 1,
		Status:        HoldPending,
		Version:       1,
	}

	eventData := HoldPlacedEvent{
		HoldID:        hold.ID,
		MemberID:      memberID,
		BookID:        bookID,
		QueuePosition: hold.QueuePosition,
	}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "HoldPlaced", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, hold.ID, "hold", 0, []ledger.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	if err := s.holds.Insert(ctx, hold); err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	return hold, nil
}

// CancelHold withdraws a pending reservation.
func (s *service) CancelHold(ctx context.Context, holdID uuid.UUID) error {
	hold, err := s.holds.Get(ctx, holdID)
	if err != nil {
		return fmt.Errorf("failed to get hold: %w", err)
	}
	if hold.Status != HoldPending {
		return fmt.Errorf("hold %s is not pending", holdID)
	}

	eventData := HoldCancelledEvent{HoldID: holdID}
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{EventType: "HoldCancelled", EventData: jsonData}
	if err := s.journal.AppendEvents(ctx, holdID, "hold", hold.Version, []ledger.Event{event}); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	hold.Status = HoldCancelled
	hold.Version++
	return s.holds.Update(ctx, hold)
}
