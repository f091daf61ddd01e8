// internal/circulation/eligibility.go
package circulation

import (
	"fmt"

	"libracore/internal/membership"
)

// CanCheckout decides whether a member may borrow another book. The fine
// check runs before the limit check, so when both conditions hold the
// reported reason names the fines.
func (t *PolicyTable) CanCheckout(member *membership.Member) Decision {
	if member.FinesOwed > MaxFineThreshold {
		return Deny(fmt.Sprintf("Excessive fines (%s%.2f). Please pay before checking out.", CurrencySymbol, member.FinesOwed))
	}

	maxBooks := t.MaxBooks(member.Role)
	if member.CurrentBorrows >= maxBooks {
		return Deny(fmt.Sprintf("Borrowing limit reached (%d/%d books).", member.CurrentBorrows, maxBooks))
	}

	return Allow()
}

// CanRenew reports whether a loan may be renewed. Holds strictly dominate: a
// pending hold blocks renewal regardless of remaining renewal count.
func CanRenew(renewCount int, hasHolds bool) bool {
	return renewCount < MaxRenewals && !hasHolds
}
