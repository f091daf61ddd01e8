// internal/membership/service.go
package membership

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the interface for the membership service.
type Service interface {
	RegisterMember(ctx context.Context, email, name string, role Role) (*Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*Member, error)
	SetMembershipExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	GetExpiryStatus(ctx context.Context, id uuid.UUID) (*ExpiryStatus, error)
}
