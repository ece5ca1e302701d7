// Package recon matches a business's recorded purchase invoices
// against government-published GSTR-2B entries. Matching is
// tolerance-based: GSTIN is a hard gate, invoice numbers are compared
// after normalization, and dates and amounts are allowed small
// configurable drift that reduces a confidence score.
package recon

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// Tolerances configures the matcher. Defaults follow the GSTN
// reconciliation conventions: 3 days of date drift, 1% amount drift
// with a ₹1 absolute floor for very small invoices.
type Tolerances struct {
	DateToleranceDays  int
	AmountTolerancePct decimal.Decimal
	AmountToleranceAbs decimal.Decimal
	ConfidenceFloor    int
}

// DefaultTolerances returns the standard matcher configuration.
func DefaultTolerances() Tolerances {
	return Tolerances{
		DateToleranceDays:  3,
		AmountTolerancePct: decimal.NewFromInt(1),
		AmountToleranceAbs: decimal.NewFromInt(1),
		ConfidenceFloor:    70,
	}
}

// Confidence deductions per signal.
const (
	deductPerDayDrift   = 1  // within date tolerance
	deductDateBeyondTol = 25 // past date tolerance but identity still matches
	deductAmountDrift   = 2  // per component inside amount tolerance
)

// MismatchDetails carries signed per-component differences
// (GSTR-2B value minus recorded value), so callers can tell
// over-reporting from under-reporting.
type MismatchDetails struct {
	TaxableValueDiff decimal.Decimal `json:"taxable_value_diff"`
	IGSTDiff         decimal.Decimal `json:"igst_diff"`
	CGSTDiff         decimal.Decimal `json:"cgst_diff"`
	SGSTDiff         decimal.Decimal `json:"sgst_diff"`
}

// PairResult is the outcome of matching one invoice/entry pair.
type PairResult struct {
	Status          domain.MatchStatus `json:"status"`
	Confidence      int                `json:"confidence"`
	MatchedFields   []string           `json:"matched_fields,omitempty"`
	Reasons         []string           `json:"reasons,omitempty"`
	MismatchDetails *MismatchDetails   `json:"mismatch_details,omitempty"`
}

// Matcher evaluates invoice/GSTR-2B pairs under a set of tolerances.
// It is stateless and safe for concurrent use.
type Matcher struct {
	tol Tolerances
}

// NewMatcher creates a matcher with the given tolerances.
func NewMatcher(tol Tolerances) *Matcher {
	return &Matcher{tol: tol}
}

// MatchPair matches one recorded purchase invoice against one GSTR-2B
// entry. A GSTIN mismatch is an immediate NO_MATCH with no partial
// credit; differing invoice numbers after normalization mean the pair
// identifies different invoices and also cannot match.
func (m *Matcher) MatchPair(inv *domain.PurchaseInvoice, entry *domain.GSTR2BEntry) PairResult {
	if normalizeGSTIN(inv.VendorGSTIN) != normalizeGSTIN(entry.VendorGSTIN) {
		return PairResult{
			Status:  domain.MatchStatusNoMatch,
			Reasons: []string{"vendor GSTIN differs; pairs with different GSTINs never match"},
		}
	}

	res := PairResult{
		Confidence:    100,
		MatchedFields: []string{"gstin"},
	}

	if NormalizeInvoiceNumber(inv.InvoiceNumber) != NormalizeInvoiceNumber(entry.InvoiceNumber) {
		res.Status = domain.MatchStatusNoMatch
		res.Confidence = 0
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"invoice number %q does not identify GSTR-2B entry %q", inv.InvoiceNumber, entry.InvoiceNumber))
		return res
	}
	res.MatchedFields = append(res.MatchedFields, "invoice_number")

	dayDiff := absDays(inv.InvoiceDate, entry.InvoiceDate)
	switch {
	case dayDiff == 0:
		res.MatchedFields = append(res.MatchedFields, "invoice_date")
	case dayDiff <= m.tol.DateToleranceDays:
		res.Confidence -= dayDiff * deductPerDayDrift
		res.Reasons = append(res.Reasons, fmt.Sprintf("invoice date drifts %d day(s)", dayDiff))
	default:
		res.Confidence -= deductDateBeyondTol
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"invoice date drifts %d days, beyond the %d-day tolerance", dayDiff, m.tol.DateToleranceDays))
	}

	details := MismatchDetails{
		TaxableValueDiff: entry.TaxableValue.Sub(inv.TaxableValue),
		IGSTDiff:         entry.IGST.Sub(inv.IGST),
		CGSTDiff:         entry.CGST.Sub(inv.CGST),
		SGSTDiff:         entry.SGST.Sub(inv.SGST),
	}

	amountBreach := false
	for _, c := range []struct {
		field    string
		recorded decimal.Decimal
		diff     decimal.Decimal
	}{
		{"taxable_value", inv.TaxableValue, details.TaxableValueDiff},
		{"igst", inv.IGST, details.IGSTDiff},
		{"cgst", inv.CGST, details.CGSTDiff},
		{"sgst", inv.SGST, details.SGSTDiff},
	} {
		tolerance := m.amountTolerance(c.recorded)
		switch {
		case c.diff.IsZero():
			res.MatchedFields = append(res.MatchedFields, c.field)
		case c.diff.Abs().LessThanOrEqual(tolerance):
			res.Confidence -= deductAmountDrift
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"%s differs by %s, within tolerance %s", c.field, c.diff, tolerance))
		default:
			amountBreach = true
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"%s differs by %s, beyond tolerance %s", c.field, c.diff, tolerance))
		}
	}

	if res.Confidence < 0 {
		res.Confidence = 0
	}

	if amountBreach {
		res.Status = domain.MatchStatusAmountMismatch
		res.MismatchDetails = &details
		return res
	}
	if res.Confidence >= m.tol.ConfidenceFloor {
		res.Status = domain.MatchStatusMatched
		return res
	}
	res.Status = domain.MatchStatusNoMatch
	return res
}

// amountTolerance is max(pct% of the recorded value, the absolute
// floor), so tiny invoices are not failed over paise-level noise.
func (m *Matcher) amountTolerance(recorded decimal.Decimal) decimal.Decimal {
	pct := recorded.Abs().Mul(m.tol.AmountTolerancePct).Div(decimal.NewFromInt(100))
	if pct.LessThan(m.tol.AmountToleranceAbs) {
		return m.tol.AmountToleranceAbs
	}
	return pct
}

// NormalizeInvoiceNumber strips separators and case-folds an invoice
// number for identity comparison.
func NormalizeInvoiceNumber(s string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "/", "", ".", "", "_", "")
	return strings.ToUpper(replacer.Replace(strings.TrimSpace(s)))
}

func normalizeGSTIN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func absDays(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
