// Package rcm computes reverse-charge self-invoices: the recipient
// raises an invoice on itself, pays the tax directly, and (subject to
// eligibility) claims it back as input tax credit.
//
// Two variants share the place-of-supply resolver: supplies from Indian
// unregistered suppliers, and import of services from foreign suppliers
// (always IGST, with foreign-currency conversion).
package rcm

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/gst/tax"
)

const (
	// Rule 47A: a self-invoice must be issued within 30 days of the
	// date of receipt of supply.
	selfInvoiceMaxDays = 30
	// Accountants get a warning a few days before the statutory cutoff.
	selfInvoiceWarnAfterDays = 25
)

// DateValidation is the outcome of the 30-day compliance check.
// Business-rule failures land in Errors/Warnings; they are never
// returned as Go errors.
type DateValidation struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Result pairs a computed self-invoice with its date compliance check.
type Result struct {
	SelfInvoice *domain.SelfInvoice `json:"self_invoice"`
	Validation  DateValidation      `json:"validation"`
}

// IndianUnregisteredRequest describes a reverse-charge purchase from an
// Indian supplier who is not GST-registered.
type IndianUnregisteredRequest struct {
	SupplierName   string
	SupplierState  string
	RecipientGSTIN string
	RecipientState string
	InvoiceDate    time.Time
	DateOfReceipt  time.Time
	LineItems      []domain.LineItem
	Rate           decimal.Decimal
}

// ImportOfServicesRequest describes a reverse-charge import of services
// from a supplier outside India. Currency, ForeignAmount and
// ExchangeRate travel together; a partially supplied set is rejected.
type ImportOfServicesRequest struct {
	SupplierName   string
	RecipientGSTIN string
	RecipientState string
	InvoiceDate    time.Time
	DateOfReceipt  time.Time
	Description    string
	SACCode        string
	Currency       string
	ForeignAmount  decimal.Decimal
	ExchangeRate   decimal.Decimal
	Rate           decimal.Decimal
}

// CalculateIndianUnregistered builds a self-invoice for an Indian
// unregistered-supplier RCM event. The taxable amount is the sum of
// line items; liability and claimable ITC both equal the computed tax.
// Liability reports on GSTR-3B table 3.1(d), credit on 4(A)(3).
func CalculateIndianUnregistered(req IndianUnregisteredRequest) (*Result, error) {
	if err := validateIdentity(req.SupplierName, req.RecipientGSTIN); err != nil {
		return nil, err
	}
	if len(req.LineItems) == 0 {
		return nil, domain.ErrNoLineItems
	}

	amount := decimal.Zero
	for _, li := range req.LineItems {
		amount = amount.Add(li.Amount)
	}

	supplier := domain.StateJurisdiction(req.SupplierState)
	recipient := domain.StateJurisdiction(req.RecipientState)
	components, err := tax.ComputeComponents(amount, req.Rate, supplier, recipient)
	if err != nil {
		return nil, err
	}

	supplyType, err := tax.ResolveSupplyType(supplier, recipient)
	if err != nil {
		return nil, err
	}

	inv := &domain.SelfInvoice{
		SupplierName:   req.SupplierName,
		RCMType:        domain.RCMIndianUnregistered,
		InvoiceDate:    req.InvoiceDate,
		DateOfReceipt:  req.DateOfReceipt,
		LineItems:      req.LineItems,
		TaxableAmount:  amount,
		Tax:            components,
		RCMLiability:   components.TotalTax,
		ITCClaimable:   components.TotalTax,
		PlaceOfSupply:  domesticPlaceOfSupply(req.RecipientState, supplyType),
		LiabilityTable: domain.GSTR3BTable31d,
		ITCTable:       domain.GSTR3BTable4A3,
	}

	return &Result{
		SelfInvoice: inv,
		Validation:  ValidateDates(req.DateOfReceipt, req.InvoiceDate),
	}, nil
}

// CalculateImportOfServices builds a self-invoice for an
// import-of-services RCM event. The supplier is outside India by
// definition, so the tax is always 100% IGST on the INR-converted
// amount. Liability reports on GSTR-3B table 3.1(a), credit on 4(A)(3).
func CalculateImportOfServices(req ImportOfServicesRequest) (*Result, error) {
	if err := validateIdentity(req.SupplierName, req.RecipientGSTIN); err != nil {
		return nil, err
	}
	if req.Currency == "" || req.ForeignAmount.IsZero() || req.ExchangeRate.IsZero() {
		return nil, domain.ErrIncompleteFXDetails
	}
	if req.ForeignAmount.IsNegative() || req.ExchangeRate.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	amountInINR := req.ForeignAmount.Mul(req.ExchangeRate).RoundBank(2)
	recipient := domain.StateJurisdiction(req.RecipientState)
	components, err := tax.ComputeComponents(amountInINR, req.Rate, domain.ForeignJurisdiction(), recipient)
	if err != nil {
		return nil, err
	}

	item := domain.LineItem{
		Description: req.Description,
		HSNSACCode:  req.SACCode,
		Amount:      amountInINR,
	}

	inv := &domain.SelfInvoice{
		SupplierName:  req.SupplierName,
		RCMType:       domain.RCMImportOfServices,
		InvoiceDate:   req.InvoiceDate,
		DateOfReceipt: req.DateOfReceipt,
		LineItems:     []domain.LineItem{item},
		TaxableAmount: amountInINR,
		Tax:           components,
		RCMLiability:  components.TotalTax,
		ITCClaimable:  components.TotalTax,
		PlaceOfSupply: "Outside India (Import of Services)",
		ForeignCurrency: &domain.ForeignCurrencyDetails{
			Currency:      req.Currency,
			ForeignAmount: req.ForeignAmount,
			ExchangeRate:  req.ExchangeRate,
		},
		LiabilityTable: domain.GSTR3BTable31a,
		ITCTable:       domain.GSTR3BTable4A3,
	}

	return &Result{
		SelfInvoice: inv,
		Validation:  ValidateDates(req.DateOfReceipt, req.InvoiceDate),
	}, nil
}

// ValidateDates runs the Rule 47A compliance check between the date of
// receipt of supply and the self-invoice date. The invoice must not
// predate the receipt, and must be issued within 30 days of it; a gap
// past 25 days draws a warning so the accountant has lead time.
func ValidateDates(receiptDate, invoiceDate time.Time) DateValidation {
	v := DateValidation{IsValid: true}

	if invoiceDate.Before(receiptDate) {
		v.IsValid = false
		v.Errors = append(v.Errors, fmt.Sprintf(
			"self-invoice date %s precedes date of receipt of supply %s",
			invoiceDate.Format("2006-01-02"), receiptDate.Format("2006-01-02")))
		return v
	}

	gap := int(invoiceDate.Sub(receiptDate).Hours() / 24)
	if gap > selfInvoiceMaxDays {
		v.IsValid = false
		v.Errors = append(v.Errors, fmt.Sprintf(
			"Rule 47A: self-invoice must be issued within %d days of receipt of supply (gap is %d days)",
			selfInvoiceMaxDays, gap))
	} else if gap > selfInvoiceWarnAfterDays {
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"self-invoice is %d days after receipt of supply; the Rule 47A %d-day window closes in %d days",
			gap, selfInvoiceMaxDays, selfInvoiceMaxDays-gap))
	}

	return v
}

func validateIdentity(supplierName, recipientGSTIN string) error {
	if supplierName == "" {
		return domain.ErrMissingSupplierName
	}
	if recipientGSTIN == "" {
		return domain.ErrMissingGSTIN
	}
	if !domain.ValidGSTIN(recipientGSTIN) {
		return domain.ErrInvalidGSTIN
	}
	return nil
}

func domesticPlaceOfSupply(stateCode string, supplyType domain.SupplyType) string {
	name, ok := tax.StateName(stateCode)
	if !ok {
		return stateCode
	}
	if supplyType == domain.SupplyIntrastate {
		return fmt.Sprintf("%s (Intrastate)", name)
	}
	return fmt.Sprintf("%s (Interstate)", name)
}
