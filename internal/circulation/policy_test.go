package circulation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"libracore/internal/circulation"
	"libracore/internal/membership"
)

func TestPolicyTableDefaults(t *testing.T) {
	table := circulation.NewPolicyTable()

	assert.Equal(t, 14, table.LoanPeriod(membership.RolePatron))
	assert.Equal(t, 5, table.MaxBooks(membership.RolePatron))
	assert.Equal(t, 21, table.LoanPeriod(membership.RoleLibrarian))
	assert.Equal(t, 15, table.MaxBooks(membership.RoleLibrarian))
	assert.Equal(t, 30, table.LoanPeriod(membership.RoleAdmin))
	assert.Equal(t, 20, table.MaxBooks(membership.RoleAdmin))
}

func TestPolicyTableReplaceIsWholesale(t *testing.T) {
	table := circulation.NewPolicyTable()

	table.Replace(map[membership.Role]circulation.RolePolicy{
		membership.RolePatron: {LoanPeriodDays: 7, MaxBooks: 3},
	})

	assert.Equal(t, 7, table.LoanPeriod(membership.RolePatron))
	assert.Equal(t, 3, table.MaxBooks(membership.RolePatron))

	// The replaced table has no librarian entry; lookups fall back to the
	// hardcoded defaults, never fail.
	assert.Equal(t, 21, table.LoanPeriod(membership.RoleLibrarian))
	assert.Equal(t, 15, table.MaxBooks(membership.RoleLibrarian))
}

func TestPolicyTableZeroEntryFallsBack(t *testing.T) {
	table := circulation.NewPolicyTable()
	table.Replace(map[membership.Role]circulation.RolePolicy{
		membership.RolePatron: {LoanPeriodDays: 0, MaxBooks: 0},
	})

	assert.Equal(t, 14, table.LoanPeriod(membership.RolePatron))
	assert.Equal(t, 5, table.MaxBooks(membership.RolePatron))
}

func TestPolicyTableUnknownRoleGetsPatronPolicy(t *testing.T) {
	table := circulation.NewPolicyTable()

	assert.Equal(t, 14, table.LoanPeriod(membership.Role("guest")))
	assert.Equal(t, 5, table.MaxBooks(membership.Role("guest")))
}

func TestDueDateFor(t *testing.T) {
	table := circulation.NewPolicyTable()
	issue := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, issue.AddDate(0, 0, 14), table.DueDateFor(issue, membership.RolePatron))
	assert.Equal(t, issue.AddDate(0, 0, 30), table.DueDateFor(issue, membership.RoleAdmin))
}

func TestPolicyTableSnapshotIsACopy(t *testing.T) {
	table := circulation.NewPolicyTable()

	snapshot := table.Snapshot()
	snapshot[membership.RolePatron] = circulation.RolePolicy{LoanPeriodDays: 1, MaxBooks: 1}

	assert.Equal(t, 14, table.LoanPeriod(membership.RolePatron))
}
