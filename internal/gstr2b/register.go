package gstr2b

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"lekha/internal/domain"
)

// Purchase register CSV column layout:
// ref, vendor_gstin, invoice_number, invoice_date, taxable_value, igst, cgst, sgst
const registerColumns = 8

// RegisterSheet is the sheet name used by workbook-format registers.
const RegisterSheet = "Register"

// ReadPurchaseRegisterFile reads a purchase register from disk,
// dispatching on extension: .xlsx registers are read from the Register
// sheet, anything else is treated as CSV.
func ReadPurchaseRegisterFile(path string) ([]domain.PurchaseInvoice, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readRegisterWorkbook(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open purchase register: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadPurchaseRegister(f)
}

func readRegisterWorkbook(path string) ([]domain.PurchaseInvoice, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open purchase register: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(RegisterSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", RegisterSheet, err)
	}

	var invoices []domain.PurchaseInvoice
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "ref") {
			continue
		}
		if len(row) < registerColumns {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+1, registerColumns, len(row))
		}
		inv, perr := parseRegisterRow(row)
		if perr != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, perr)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// ReadPurchaseRegister parses purchase register rows. Unlike the
// portal workbook, the register is the caller's own data, so a
// malformed row is an error rather than something to skip.
func ReadPurchaseRegister(r io.Reader) ([]domain.PurchaseInvoice, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var invoices []domain.PurchaseInvoice
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read purchase register: %w", err)
		}
		line++

		// Header row.
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "ref") {
			continue
		}
		if len(record) < registerColumns {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", line, registerColumns, len(record))
		}

		inv, err := parseRegisterRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func parseRegisterRow(record []string) (domain.PurchaseInvoice, error) {
	var inv domain.PurchaseInvoice

	gstin := strings.ToUpper(strings.TrimSpace(record[1]))
	if !domain.ValidGSTIN(gstin) {
		return inv, fmt.Errorf("vendor GSTIN %q: %w", record[1], domain.ErrInvalidGSTIN)
	}

	invoiceNo := strings.TrimSpace(record[2])
	if invoiceNo == "" {
		return inv, fmt.Errorf("missing invoice number")
	}

	invoiceDate, err := parseDate(record[3])
	if err != nil {
		return inv, fmt.Errorf("invoice date: %w", err)
	}

	taxable, err := parseAmount(record[4])
	if err != nil {
		return inv, fmt.Errorf("taxable value: %w", err)
	}
	igst, err := parseAmount(record[5])
	if err != nil {
		return inv, fmt.Errorf("igst: %w", err)
	}
	cgst, err := parseAmount(record[6])
	if err != nil {
		return inv, fmt.Errorf("cgst: %w", err)
	}
	sgst, err := parseAmount(record[7])
	if err != nil {
		return inv, fmt.Errorf("sgst: %w", err)
	}

	return domain.PurchaseInvoice{
		Ref:           strings.TrimSpace(record[0]),
		VendorGSTIN:   gstin,
		InvoiceNumber: invoiceNo,
		InvoiceDate:   invoiceDate,
		TaxableValue:  taxable,
		IGST:          igst,
		CGST:          cgst,
		SGST:          sgst,
	}, nil
}
