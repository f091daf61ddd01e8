// internal/membership/expiry.go
package membership

import (
	"math"
	"time"
)

// Level classifies how close a membership is to expiring.
type Level string

const (
	LevelNone     Level = "none"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
	LevelExpired  Level = "expired"
)

// IsExpired reports whether the expiry date has passed. A nil expiry means a
// non-expiring membership.
func IsExpired(expiry *time.Time) bool {
	if expiry == nil {
		return false
	}
	return expiry.Before(time.Now())
}

// DaysUntilExpiry returns the signed calendar-day count until expiry
// (negative when already expired). ok is false for non-expiring memberships.
func DaysUntilExpiry(expiry *time.Time) (days int, ok bool) {
	if expiry == nil {
		return 0, false
	}
	diff := time.Until(*expiry)
	return int(math.Ceil(diff.Hours() / 24)), true
}

// WarningLevel classifies an expiry date. Cutoffs are inclusive: 7 days out
// is still critical, 30 days out is still a warning.
func WarningLevel(expiry *time.Time) Level {
	days, ok := DaysUntilExpiry(expiry)
	if !ok {
		return LevelNone
	}
	switch {
	case days < 0:
		return LevelExpired
	case days <= 7:
		return LevelCritical
	case days <= 30:
		return LevelWarning
	default:
		return LevelNone
	}
}

// EvaluateExpiry bundles the three checks for callers that render the result.
func EvaluateExpiry(expiry *time.Time) ExpiryStatus {
	status := ExpiryStatus{
		Expired:      IsExpired(expiry),
		WarningLevel: WarningLevel(expiry),
		NeverExpires: expiry == nil,
	}
	if days, ok := DaysUntilExpiry(expiry); ok {
		status.DaysUntil = &days
	}
	return status
}
