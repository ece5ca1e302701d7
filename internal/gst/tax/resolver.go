// Package tax resolves place of supply and computes the CGST/SGST/IGST
// split for a transaction. Intrastate supplies split the rate evenly
// into CGST and SGST; interstate and import supplies carry the full
// rate as IGST. All amounts are banker's-rounded to 2 decimals per
// component, matching how GST returns are actually computed: CGST and
// SGST each carry independent rounding versus a single IGST figure.
package tax

import (
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// statutoryRates are the GST slabs, including the 0% exempt slab.
var statutoryRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// ValidRate reports whether rate is one of the statutory GST slabs.
func ValidRate(rate decimal.Decimal) bool {
	for _, r := range statutoryRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// ResolveSupplyType classifies a transaction as intrastate, interstate
// or import from the supplier and recipient jurisdictions. The
// recipient is the Indian business running this engine and must be a
// domestic jurisdiction.
func ResolveSupplyType(supplier, recipient domain.Jurisdiction) (domain.SupplyType, error) {
	if recipient.Foreign {
		return "", domain.ErrForeignRecipient
	}
	if !ValidStateCode(recipient.StateCode) {
		return "", domain.ErrInvalidStateCode
	}
	if supplier.Foreign {
		return domain.SupplyImport, nil
	}
	if !ValidStateCode(supplier.StateCode) {
		return "", domain.ErrInvalidStateCode
	}
	if supplier.StateCode == recipient.StateCode {
		return domain.SupplyIntrastate, nil
	}
	return domain.SupplyInterstate, nil
}

// ComputeComponents computes the tax split for a taxable amount at a
// statutory rate. Intrastate: rate/2 applied to the amount for CGST
// and SGST, each rounded independently. Interstate or import: the full
// rate as IGST.
func ComputeComponents(amount, rate decimal.Decimal, supplier, recipient domain.Jurisdiction) (domain.TaxComponents, error) {
	return ComputeComponentsWithCess(amount, rate, decimal.Zero, supplier, recipient)
}

// ComputeComponentsWithCess is ComputeComponents plus a compensation
// cess rate applied to the same taxable base. Cess co-occurs with
// either split.
func ComputeComponentsWithCess(amount, rate, cessRate decimal.Decimal, supplier, recipient domain.Jurisdiction) (domain.TaxComponents, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.TaxComponents{}, domain.ErrInvalidAmount
	}
	if !ValidRate(rate) {
		return domain.TaxComponents{}, domain.ErrInvalidRate
	}
	if cessRate.IsNegative() {
		return domain.TaxComponents{}, domain.ErrInvalidRate
	}

	supplyType, err := ResolveSupplyType(supplier, recipient)
	if err != nil {
		return domain.TaxComponents{}, err
	}

	tc := domain.TaxComponents{
		IGST: decimal.Zero.Round(2),
		CGST: decimal.Zero.Round(2),
		SGST: decimal.Zero.Round(2),
		Cess: amount.Mul(cessRate).Div(hundred).RoundBank(2),
	}

	switch supplyType {
	case domain.SupplyIntrastate:
		half := rate.Div(two)
		tc.CGST = amount.Mul(half).Div(hundred).RoundBank(2)
		tc.SGST = amount.Mul(half).Div(hundred).RoundBank(2)
	default:
		tc.IGST = amount.Mul(rate).Div(hundred).RoundBank(2)
	}

	tc.TotalTax = tc.IGST.Add(tc.CGST).Add(tc.SGST).Add(tc.Cess)
	return tc, nil
}
