// internal/circulation/fees.go
package circulation

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	CurrencySymbol  = "Rs."
	CurrencyRatePKR = 280 // 1 USD = 280 PKR

	DefaultFineRatePerDay = 50 // per day overdue
	MaxRenewals           = 2
	RenewalExtensionDays  = 14
	MaxFineThreshold      = 2500 // block checkouts above this balance
)

// FeeStructure holds the configurable fine rates. MaxAmount of 0 means no cap.
type FeeStructure struct {
	RatePerDay      float64 `json:"rate_per_day"`
	MaxAmount       float64 `json:"max_amount,omitempty"`
	ReplacementCost float64 `json:"replacement_cost"`
}

// DefaultFees returns the stock fee structure.
func DefaultFees() FeeStructure {
	return FeeStructure{
		RatePerDay:      DefaultFineRatePerDay,
		ReplacementCost: 2000,
	}
}

// CalculateFine computes the overdue fine for a loan returned at the given
// time. A zero returned time means "now". Lateness counts calendar days:
// one second past the due date is a full day late.
func (f FeeStructure) CalculateFine(due, returned time.Time) float64 {
	if returned.IsZero() {
		returned = time.Now()
	}

	daysLate := ceilDays(returned.Sub(due))
	if daysLate <= 0 {
		return 0
	}

	fine := math.Round(float64(daysLate)*f.RatePerDay*100) / 100
	if f.MaxAmount > 0 && fine > f.MaxAmount {
		fine = f.MaxAmount
	}
	return fine
}

// DaysUntilDue returns the signed day count until the due date; negative
// means overdue.
func DaysUntilDue(due time.Time) int {
	return ceilDays(time.Until(due))
}

// IsOverdue reports whether the due date has passed.
func IsOverdue(due time.Time) bool {
	return due.Before(time.Now())
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// ConvertUSD converts a US-dollar amount into the display currency at the
// fixed rate. All amounts inside the engine are already in the display
// currency; this is the only place the rate is applied, so callers must not
// convert again.
func ConvertUSD(amountUSD float64) float64 {
	return amountUSD * CurrencyRatePKR
}

// FormatAmount renders an amount already in the display currency, e.g.
// "Rs. 1,250.00".
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	out := CurrencySymbol + " " + b.String() + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatUSD converts then formats. Presentation-boundary helper only.
func FormatUSD(amountUSD float64) string {
	return FormatAmount(ConvertUSD(amountUSD))
}
