// Package gstr2b reads the GSTR-2B statement workbook downloaded from
// the GST portal and the purchase register export, producing the
// inputs the reconciliation matcher consumes.
package gstr2b

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"lekha/internal/domain"
)

// B2BSheet is the sheet carrying regular inward B2B supplies.
const B2BSheet = "B2B"

// B2B sheet column layout. The portal workbook front-loads several
// banner and header rows; data rows are detected by a valid GSTIN in
// the first column rather than by a fixed offset.
const (
	colGSTIN = iota
	colTradeName
	colInvoiceNumber
	colInvoiceType
	colInvoiceDate
	colInvoiceValue
	colPlaceOfSupply
	colReverseCharge
	colTaxableValue
	colIGST
	colCGST
	colSGST
	colCess
)

// dateLayouts covers the formats seen across portal exports.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// ParseWorkbook opens a GSTR-2B workbook and parses its B2B sheet.
func ParseWorkbook(path string) ([]domain.GSTR2BEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open GSTR-2B workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads the B2B sheet of an already-open workbook. Rows without
// a valid supplier GSTIN (banners, headers, totals) are skipped; rows
// with a GSTIN but an unparseable date or amount are counted and
// dropped rather than failing the whole statement.
func Parse(f *excelize.File) ([]domain.GSTR2BEntry, error) {
	rows, err := f.GetRows(B2BSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", B2BSheet, err)
	}

	var entries []domain.GSTR2BEntry
	skipped := 0
	for i, row := range rows {
		gstin := strings.ToUpper(strings.TrimSpace(cellVal(row, colGSTIN)))
		if !domain.ValidGSTIN(gstin) {
			continue
		}

		entry, perr := parseB2BRow(row, gstin)
		if perr != nil {
			log.Printf("gstr2b: skipping row %d: %v", i+1, perr)
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if skipped > 0 {
		log.Printf("gstr2b: parsed %d entries, skipped %d malformed rows", len(entries), skipped)
	}
	return entries, nil
}

func parseB2BRow(row []string, gstin string) (domain.GSTR2BEntry, error) {
	var entry domain.GSTR2BEntry

	invoiceNo := strings.TrimSpace(cellVal(row, colInvoiceNumber))
	if invoiceNo == "" {
		return entry, fmt.Errorf("missing invoice number")
	}

	invoiceDate, err := parseDate(cellVal(row, colInvoiceDate))
	if err != nil {
		return entry, fmt.Errorf("invoice date: %w", err)
	}

	taxable, err := parseAmount(cellVal(row, colTaxableValue))
	if err != nil {
		return entry, fmt.Errorf("taxable value: %w", err)
	}
	igst, err := parseAmount(cellVal(row, colIGST))
	if err != nil {
		return entry, fmt.Errorf("igst: %w", err)
	}
	cgst, err := parseAmount(cellVal(row, colCGST))
	if err != nil {
		return entry, fmt.Errorf("cgst: %w", err)
	}
	sgst, err := parseAmount(cellVal(row, colSGST))
	if err != nil {
		return entry, fmt.Errorf("sgst: %w", err)
	}

	return domain.GSTR2BEntry{
		VendorGSTIN:   gstin,
		InvoiceNumber: invoiceNo,
		InvoiceDate:   invoiceDate,
		TaxableValue:  taxable,
		IGST:          igst,
		CGST:          cgst,
		SGST:          sgst,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount accepts portal number formatting: thousands separators
// and blank cells (zero).
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
