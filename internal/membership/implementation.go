// internal/membership/implementation.go
package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"libracore/pkg/ledger"
)

// Store is the read model the service projects members into.
type Store interface {
	Insert(ctx context.Context, member *Member) error
	Get(ctx context.Context, id uuid.UUID) (*Member, error)
	Update(ctx context.Context, member *Member) error
}

// service implements the Service interface.
type service struct {
	journal     *ledger.Ledger
	store       Store
	rateLimiter *rate.Limiter
}

// NewService creates a new membership service instance.
func NewService(journal *ledger.Ledger, store Store) Service {
	return &service{
		journal:     journal,
		store:       store,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 registrations per minute
	}
}

// RegisterMember creates a new member with an active, non-expiring membership.
func (s *service) RegisterMember(ctx context.Context, email, name string, role Role) (*Member, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	if role == "" {
		role = RolePatron
	}

	id := uuid.New()
	eventData := MemberRegisteredEvent{
		ID:    id,
		Email: email,
		Name:  name,
		Role:  role,
	}

	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{
		EventType: "MemberRegistered",
		EventData: jsonData,
	}

	if err := s.journal.AppendEvents(ctx, id, "member", 0, []ledger.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	member := &Member{
		ID:       id,
		Email:    email,
		Name:     name,
		Role:     role,
		Status:   "active",
		JoinDate: time.Now(),
		Version:  1,
	}

	if err := s.store.Insert(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	return member, nil
}

// GetMember retrieves a member by their ID.
func (s *service) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	member, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// SetMembershipExpiry sets or moves a member's expiry date.
func (s *service) SetMembershipExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	member, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}

	eventData := MemberExpirySetEvent{
		ID:        id,
		ExpiresAt: expiresAt,
	}

	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := ledger.Event{
		EventType: "MemberExpirySet",
		EventData: jsonData,
	}

	if err := s.journal.AppendEvents(ctx, id, "member", member.Version, []ledger.Event{event}); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	member.MembershipExpiry = &expiresAt
	member.Version++
	return s.store.Update(ctx, member)
}

// GetExpiryStatus evaluates a member's expiry date into a warning level.
func (s *service) GetExpiryStatus(ctx context.Context, id uuid.UUID) (*ExpiryStatus, error) {
	member, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	status := EvaluateExpiry(member.MembershipExpiry)
	return &status, nil
}
