// internal/membership/domain.go
package membership

import (
	"time"

	"github.com/google/uuid"
)

// Role determines a member's borrowing privileges.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RolePatron    Role = "patron"
)

// Member represents a library member.
type Member struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             Role       `json:"role"`
	Status           string     `json:"status"`
	CurrentBorrows   int        `json:"current_borrows"`
	FinesOwed        float64    `json:"fines_owed"`
	MembershipExpiry *time.Time `json:"membership_expiry,omitempty"`
	JoinDate         time.Time  `json:"join_date"`
	Version          int        `json:"version"`
}

// ExpiryStatus is the evaluated state of a member's expiry date.
type ExpiryStatus struct {
	Expired      bool  `json:"expired"`
	DaysUntil    *int  `json:"days_until_expiry,omitempty"`
	WarningLevel Level `json:"warning_level"`
	NeverExpires bool  `json:"never_expires"`
}

// MemberRegisteredEvent is published when a new member registers.
type MemberRegisteredEvent struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

// MemberExpirySetEvent is published when a member's expiry date changes.
type MemberExpirySetEvent struct {
	ID        uuid.UUID `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
