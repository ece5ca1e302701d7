package gstr2b_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lekha/internal/domain"
	"lekha/internal/gstr2b"
)

// workbook builds an in-memory B2B sheet shaped like a portal export:
// banner rows, a header row, then the given data rows.
func workbook(t *testing.T, dataRows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(gstr2b.B2BSheet)
	require.NoError(t, err)

	banner := [][]interface{}{
		{"Goods and Services Tax - GSTR-2B"},
		{"Taxable inward supplies received from registered persons"},
		{"GSTIN of supplier", "Trade/Legal name", "Invoice number", "Invoice type",
			"Invoice Date", "Invoice Value", "Place of supply", "Supply attract reverse charge",
			"Taxable Value", "Integrated Tax", "Central Tax", "State/UT Tax", "Cess"},
	}
	for i, row := range append(banner, dataRows...) {
		cell, cerr := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, cerr)
		require.NoError(t, f.SetSheetRow(gstr2b.B2BSheet, cell, &row))
	}
	return f
}

func TestParse(t *testing.T) {
	t.Run("parses_data_rows_past_headers", func(t *testing.T) {
		f := workbook(t, [][]interface{}{
			{"27AAPFU0939F1ZV", "Udyog Traders", "INV-2024-0042", "Regular", "12-09-2024",
				"1,18,000", "27-Maharashtra", "N", "1,00,000", "18000", "0", "0", "0"},
			{"29AAACI1681G1ZM", "Infotech Services", "S-778", "Regular", "25-09-2024",
				"11800", "29-Karnataka", "N", "10000", "0", "900", "900", "0"},
		})
		entries, err := gstr2b.Parse(f)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		first := entries[0]
		assert.Equal(t, "27AAPFU0939F1ZV", first.VendorGSTIN)
		assert.Equal(t, "INV-2024-0042", first.InvoiceNumber)
		assert.Equal(t, time.Date(2024, time.September, 12, 0, 0, 0, 0, time.UTC), first.InvoiceDate)
		assert.True(t, first.TaxableValue.Equal(decimal.NewFromInt(100000)))
		assert.True(t, first.IGST.Equal(decimal.NewFromInt(18000)))

		second := entries[1]
		assert.True(t, second.CGST.Equal(decimal.NewFromInt(900)))
		assert.True(t, second.SGST.Equal(decimal.NewFromInt(900)))
	})

	t.Run("skips_rows_without_valid_gstin", func(t *testing.T) {
		f := workbook(t, [][]interface{}{
			{"Total", "", "", "", "", "129800", "", "", "110000", "18000", "900", "900", "0"},
			{"27AAPFU0939F1ZV", "Udyog Traders", "INV-2024-0042", "Regular", "12-09-2024",
				"118000", "27-Maharashtra", "N", "100000", "18000", "0", "0", "0"},
		})
		entries, err := gstr2b.Parse(f)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("drops_malformed_data_rows", func(t *testing.T) {
		f := workbook(t, [][]interface{}{
			{"27AAPFU0939F1ZV", "Udyog Traders", "INV-1", "Regular", "not-a-date",
				"118000", "27-Maharashtra", "N", "100000", "18000", "0", "0", "0"},
			{"27AAPFU0939F1ZV", "Udyog Traders", "INV-2", "Regular", "12-09-2024",
				"118000", "27-Maharashtra", "N", "100000", "18000", "0", "0", "0"},
		})
		entries, err := gstr2b.Parse(f)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "INV-2", entries[0].InvoiceNumber)
	})

	t.Run("blank_amounts_read_as_zero", func(t *testing.T) {
		f := workbook(t, [][]interface{}{
			{"27AAPFU0939F1ZV", "Udyog Traders", "INV-3", "Regular", "12-09-2024",
				"118000", "27-Maharashtra", "N", "100000", "", "", "", ""},
		})
		entries, err := gstr2b.Parse(f)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IGST.IsZero())
	})

	t.Run("missing_sheet", func(t *testing.T) {
		_, err := gstr2b.Parse(excelize.NewFile())
		assert.Error(t, err)
	})
}

func TestReadPurchaseRegister(t *testing.T) {
	const register = `ref,vendor_gstin,invoice_number,invoice_date,taxable_value,igst,cgst,sgst
PUR-001,27AAPFU0939F1ZV,INV-2024-0042,12-09-2024,100000,18000,0,0
PUR-002,29aaaci1681g1zm,S-778,25-09-2024,10000,0,900,900
`

	t.Run("parses_rows", func(t *testing.T) {
		invoices, err := gstr2b.ReadPurchaseRegister(strings.NewReader(register))
		require.NoError(t, err)
		require.Len(t, invoices, 2)
		assert.Equal(t, "PUR-001", invoices[0].Ref)
		assert.True(t, invoices[0].TaxableValue.Equal(decimal.NewFromInt(100000)))
		// Lowercase GSTINs are normalized on the way in.
		assert.Equal(t, "29AAACI1681G1ZM", invoices[1].VendorGSTIN)
	})

	t.Run("invalid_gstin_fails_the_row", func(t *testing.T) {
		bad := "ref,vendor_gstin,invoice_number,invoice_date,taxable_value,igst,cgst,sgst\n" +
			"PUR-001,NOT-A-GSTIN,INV-1,12-09-2024,100,18,0,0\n"
		_, err := gstr2b.ReadPurchaseRegister(strings.NewReader(bad))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)
	})

	t.Run("bad_amount_reports_row_number", func(t *testing.T) {
		bad := "ref,vendor_gstin,invoice_number,invoice_date,taxable_value,igst,cgst,sgst\n" +
			"PUR-001,27AAPFU0939F1ZV,INV-1,12-09-2024,abc,18,0,0\n"
		_, err := gstr2b.ReadPurchaseRegister(strings.NewReader(bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("empty_register", func(t *testing.T) {
		invoices, err := gstr2b.ReadPurchaseRegister(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})
}

func TestReadPurchaseRegisterFileWorkbook(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet(gstr2b.RegisterSheet)
	require.NoError(t, err)

	rows := [][]interface{}{
		{"ref", "vendor_gstin", "invoice_number", "invoice_date", "taxable_value", "igst", "cgst", "sgst"},
		{"PUR-001", "27AAPFU0939F1ZV", "INV-2024-0042", "12-09-2024", "100000", "18000", "0", "0"},
	}
	for i, row := range rows {
		cell, cerr := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, cerr)
		require.NoError(t, f.SetSheetRow(gstr2b.RegisterSheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "register.xlsx")
	require.NoError(t, f.SaveAs(path))

	invoices, err := gstr2b.ReadPurchaseRegisterFile(path)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "PUR-001", invoices[0].Ref)
	assert.True(t, invoices[0].IGST.Equal(decimal.NewFromInt(18000)))
}
