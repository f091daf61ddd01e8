// internal/circulation/service.go
package circulation

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the circulation service.
type Service interface {
	Checkout(ctx context.Context, memberID, bookID uuid.UUID) (*Loan, Decision, error)
	Return(ctx context.Context, loanID uuid.UUID) (*Loan, error)
	Renew(ctx context.Context, loanID uuid.UUID) (*Loan, Decision, error)
	MarkLost(ctx context.Context, loanID uuid.UUID) (*Loan, error)
	PayFine(ctx context.Context, loanID uuid.UUID) (*Loan, error)
	PlaceHold(ctx context.Context, memberID, bookID uuid.UUID) (*Hold, error)
	CancelHold(ctx context.Context, holdID uuid.UUID) error
}
