package itc

import (
	"time"

	"lekha/internal/domain"
)

// CalculateDeadline returns the last date to claim credit for a
// self-invoice: November 30 of the financial year following the one
// containing the self-invoice date (Indian FY runs April–March, so any
// invoice dated Apr 2024 – Mar 2025 has deadline 30 Nov 2025).
func CalculateDeadline(selfInvoiceDate time.Time) time.Time {
	fyStart := domain.FinancialYearStart(selfInvoiceDate)
	return time.Date(fyStart.Year()+1, time.November, 30, 0, 0, 0, 0, time.UTC)
}

// DaysRemaining counts whole days from asOf until the deadline,
// flooring at zero once expired.
func DaysRemaining(deadline, asOf time.Time) int {
	days := int(deadline.Sub(asOf).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Expired reports whether the claim window has closed as of asOf.
func Expired(deadline, asOf time.Time) bool {
	return asOf.After(deadline)
}

// UrgencyFor grades how urgently a claim must be filed.
func UrgencyFor(daysRemaining int) domain.ClaimUrgency {
	switch {
	case daysRemaining <= 30:
		return domain.UrgencyCritical
	case daysRemaining <= 60:
		return domain.UrgencyHigh
	case daysRemaining <= 90:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyNormal
	}
}
