// internal/circulation/domain.go
package circulation

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus tracks a loan through its lifecycle.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
	LoanLost     LoanStatus = "lost"
)

// Loan represents a book checked out by a member.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	MemberID   uuid.UUID  `json:"member_id"`
	BookID     uuid.UUID  `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	RenewCount int        `json:"renew_count"`
	Fine       float64    `json:"fine"`
	FinePaid   bool       `json:"fine_paid"`
	Status     LoanStatus `json:"status"`
	Version    int        `json:"version"`
}

// HoldStatus tracks a reservation through its lifecycle.
type HoldStatus string

const (
	HoldPending   HoldStatus = "pending"
	HoldReady     HoldStatus = "ready"
	HoldCancelled HoldStatus = "cancelled"
	HoldFulfilled HoldStatus = "fulfilled"
)

// Hold is a queued reservation for a book. A pending hold blocks renewal by
// the current borrower.
type Hold struct {
	ID            uuid.UUID  `json:"id"`
	MemberID      uuid.UUID  `json:"member_id"`
	BookID        uuid.UUID  `json:"book_id"`
	ReserveDate   time.Time  `json:"reserve_date"`
	QueuePosition int        `json:"queue_position"`
	Status        HoldStatus `json:"status"`
	Version       int        `json:"version"`
}

// Decision is the outcome of an eligibility check. Checks never fail; denial
// carries a reason callers can show to the member verbatim.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a user-facing reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// LoanCheckedOutEvent is published when a book is checked out.
type LoanCheckedOutEvent struct {
	LoanID   uuid.UUID `json:"loan_id"`
	MemberID uuid.UUID `json:"member_id"`
	BookID   uuid.UUID `json:"book_id"`
	DueDate  time.Time `json:"due_date"`
}

// LoanReturnedEvent is published when a book comes back.
type LoanReturnedEvent struct {
	LoanID     uuid.UUID `json:"loan_id"`
	ReturnDate time.Time `json:"return_date"`
	Fine       float64   `json:"fine"`
}

// LoanRenewedEvent is published when a due date is extended.
type LoanRenewedEvent struct {
	LoanID     uuid.UUID `json:"loan_id"`
	NewDueDate time.Time `json:"new_due_date"`
	RenewCount int       `json:"renew_count"`
}

// LoanMarkedLostEvent is published when a book is declared lost.
type LoanMarkedLostEvent struct {
	LoanID uuid.UUID `json:"loan_id"`
	Fine   float64   `json:"fine"`
}

// FinePaidEvent is published when a loan's fine is settled.
type FinePaidEvent struct {
	LoanID uuid.UUID `json:"loan_id"`
	Amount float64   `json:"amount"`
}

// HoldPlacedEvent is published when a reservation is queued.
type HoldPlacedEvent struct {
	HoldID        uuid.UUID `json:"hold_id"`
	MemberID      uuid.UUID `json:"member_id"`
	BookID        uuid.UUID `json:"book_id"`
	QueuePosition int       `json:"queue_position"`
}

// HoldCancelledEvent is published when a reservation is withdrawn.
type HoldCancelledEvent struct {
	HoldID uuid.UUID `json:"hold_id"`
}
