package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidGSTIN reports whether s is a well-formed 15-character GSTIN.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// Jurisdiction is either a two-digit Indian state/UT code or the
// "outside India" sentinel. Exactly one of the two is set.
type Jurisdiction struct {
	StateCode string `json:"state_code,omitempty"`
	Foreign   bool   `json:"foreign,omitempty"`
}

// StateJurisdiction builds a domestic jurisdiction from a state code.
func StateJurisdiction(code string) Jurisdiction {
	return Jurisdiction{StateCode: code}
}

// ForeignJurisdiction is the "outside India" sentinel.
func ForeignJurisdiction() Jurisdiction {
	return Jurisdiction{Foreign: true}
}

func (j Jurisdiction) String() string {
	if j.Foreign {
		return "outside India"
	}
	return fmt.Sprintf("state %s", j.StateCode)
}

// TaxComponents is an immutable CGST/SGST/IGST/cess split, rounded to
// 2 decimals. Either IGST alone or CGST+SGST carry the tax; cess may
// co-occur with either. Corrections produce a new set plus a credit or
// debit note, never an in-place edit.
type TaxComponents struct {
	IGST     decimal.Decimal `json:"igst"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	Cess     decimal.Decimal `json:"cess"`
	TotalTax decimal.Decimal `json:"total_tax"`
}

// LineItem is a single line on a purchase or self-invoice.
type LineItem struct {
	Description string          `json:"description"`
	HSNSACCode  string          `json:"hsn_sac_code"`
	Amount      decimal.Decimal `json:"amount"`
}

// ForeignCurrencyDetails accompanies an import-of-services self-invoice.
// ExchangeRate is the RBI/CBIC reference rate on the invoice date.
type ForeignCurrencyDetails struct {
	Currency      string          `json:"currency"`
	ForeignAmount decimal.Decimal `json:"foreign_amount"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
}

// SelfInvoice is a reverse-charge transaction the recipient raises on
// itself. Immutable once filed in a return period. ForeignCurrency is
// present iff RCMType is import of services.
type SelfInvoice struct {
	SupplierName        string                  `json:"supplier_name"`
	SupplierGSTIN       string                  `json:"supplier_gstin,omitempty"`
	RCMType             RCMType                 `json:"rcm_type"`
	InvoiceDate         time.Time               `json:"invoice_date"`
	DateOfReceipt       time.Time               `json:"date_of_receipt_of_supply"`
	LineItems           []LineItem              `json:"line_items"`
	TaxableAmount       decimal.Decimal         `json:"taxable_amount"`
	Tax                 TaxComponents           `json:"tax_components"`
	RCMLiability        decimal.Decimal         `json:"rcm_liability"`
	ITCClaimable        decimal.Decimal         `json:"itc_claimable"`
	PlaceOfSupply       string                  `json:"place_of_supply"`
	LiabilityTable      GSTR3BTable             `json:"gstr3b_liability_table"`
	ITCTable            GSTR3BTable             `json:"gstr3b_itc_table"`
	ForeignCurrency     *ForeignCurrencyDetails `json:"foreign_currency_details,omitempty"`
}

// FinancialYearStart returns April 1 of the Indian financial year
// (April–March) containing d.
func FinancialYearStart(d time.Time) time.Time {
	year := d.Year()
	if d.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// ITCClaim tracks a credit arising from a self-invoice evaluation.
// UtilizedAmount never exceeds TotalITCAmount; Deadline is Nov 30 of
// the financial year following the self-invoice's financial year.
type ITCClaim struct {
	ID             uuid.UUID         `json:"id"`
	SourceRef      string            `json:"source_transaction_ref"`
	Category       ITCCategory       `json:"category"`
	TotalITCAmount decimal.Decimal   `json:"total_itc_amount"`
	UtilizedAmount decimal.Decimal   `json:"utilized_amount"`
	Status         EligibilityStatus `json:"eligibility_status"`
	StatusReason   string            `json:"status_reason,omitempty"`
	Deadline       time.Time         `json:"deadline"`
	Urgency        ClaimUrgency      `json:"urgency"`
}

// PurchaseInvoice is the business's own record of an inward supply,
// matched against GSTR-2B during reconciliation.
type PurchaseInvoice struct {
	Ref           string          `json:"ref"`
	VendorGSTIN   string          `json:"vendor_gstin"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
}

// GSTR2BEntry is a government-reported inward supply row. The matcher
// only ever writes MatchStatus; everything else is read-only input.
type GSTR2BEntry struct {
	VendorGSTIN   string          `json:"vendor_gstin"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	MatchStatus   MatchStatus     `json:"match_status,omitempty"`
}

// TotalTax is the entry's reported tax across components.
func (e *GSTR2BEntry) TotalTax() decimal.Decimal {
	return e.IGST.Add(e.CGST).Add(e.SGST)
}

// TotalTax is the invoice's recorded tax across components.
func (p *PurchaseInvoice) TotalTax() decimal.Decimal {
	return p.IGST.Add(p.CGST).Add(p.SGST)
}

// ForeignSupplierProfile is static reference data describing a known
// multinational vendor. Seeded at build time; never mutated by the engine.
type ForeignSupplierProfile struct {
	SupplierCode    string   `json:"supplier_code" db:"supplier_code"`
	NamePatterns    []string `json:"name_patterns" db:"-"`
	Domains         []string `json:"domains" db:"-"`
	DefaultCode     string   `json:"default_code" db:"default_code"`
	DefaultGSTRate  float64  `json:"default_gst_rate" db:"default_gst_rate"`
	ServiceCategory string   `json:"service_category" db:"service_category"`
	DefaultCurrency string   `json:"default_currency" db:"default_currency"`
	BillingCountry  string   `json:"billing_country" db:"billing_country"`
}
