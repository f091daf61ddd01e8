// internal/circulation/policy.go
package circulation

import (
	"sync"
	"time"

	"libracore/internal/membership"
)

// RolePolicy is the per-role loan period and borrowing limit.
type RolePolicy struct {
	LoanPeriodDays int `json:"loan_period_days"`
	MaxBooks       int `json:"max_books"`
}

// DefaultPolicies returns the hardcoded fallback table.
func DefaultPolicies() map[membership.Role]RolePolicy {
	return map[membership.Role]RolePolicy{
		membership.RolePatron:    {LoanPeriodDays: 14, MaxBooks: 5},
		membership.RoleLibrarian: {LoanPeriodDays: 21, MaxBooks: 15},
		membership.RoleAdmin:     {LoanPeriodDays: 30, MaxBooks: 20},
	}
}

// PolicyTable is the runtime role-policy configuration. Reads are cheap and
// concurrent; Replace swaps the whole table and is meant to be called from a
// single administrative path.
type PolicyTable struct {
	mu       sync.RWMutex
	policies map[membership.Role]RolePolicy
}

// NewPolicyTable returns a table seeded with the defaults.
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{policies: DefaultPolicies()}
}

// Replace swaps the whole table. There is no partial-field update.
func (t *PolicyTable) Replace(policies map[membership.Role]RolePolicy) {
	copied := make(map[membership.Role]RolePolicy, len(policies))
	for role, p := range policies {
		copied[role] = p
	}

	t.mu.Lock()
	t.policies = copied
	t.mu.Unlock()
}

// Snapshot returns a copy of the current table.
func (t *PolicyTable) Snapshot() map[membership.Role]RolePolicy {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make(map[membership.Role]RolePolicy, len(t.policies))
	for role, p := range t.policies {
		copied[role] = p
	}
	return copied
}

// LoanPeriod returns the loan period in days for a role, falling back to the
// hardcoded defaults for missing or zero entries. It never fails.
func (t *PolicyTable) LoanPeriod(role membership.Role) int {
	t.mu.RLock()
	p, ok := t.policies[role]
	t.mu.RUnlock()

	if ok && p.LoanPeriodDays > 0 {
		return p.LoanPeriodDays
	}
	return defaultPolicy(role).LoanPeriodDays
}

// MaxBooks returns the borrowing limit for a role with the same fallback.
func (t *PolicyTable) MaxBooks(role membership.Role) int {
	t.mu.RLock()
	p, ok := t.policies[role]
	t.mu.RUnlock()

	if ok && p.MaxBooks > 0 {
		return p.MaxBooks
	}
	return defaultPolicy(role).MaxBooks
}

// DueDateFor returns the due date for a loan issued at the given time.
func (t *PolicyTable) DueDateFor(issue time.Time, role membership.Role) time.Time {
	return issue.AddDate(0, 0, t.LoanPeriod(role))
}

// defaultPolicy resolves unknown roles to the patron policy, the most
// restrictive one.
func defaultPolicy(role membership.Role) RolePolicy {
	defaults := DefaultPolicies()
	if p, ok := defaults[role]; ok {
		return p
	}
	return defaults[membership.RolePatron]
}
