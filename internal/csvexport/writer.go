// Package csvexport renders a reconciliation run as a CSV report,
// one row per purchase invoice or unmatched GSTR-2B entry.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/gst/recon"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Report section labels for rows that have no pair result.
const (
	sectionNotIn2B  = "NOT_IN_2B"
	sectionIn2BOnly = "IN_2B_ONLY"
)

// columns defines the CSV header row.
var columns = []string{
	"Ref",
	"Vendor GSTIN",
	"Invoice Number",
	"Invoice Date",
	"Taxable Value",
	"IGST",
	"CGST",
	"SGST",
	"Total Tax",
	"Status",
	"Confidence",
	"Matched Fields",
	"Reasons",
	"2B Invoice Date",
	"Taxable Value Diff",
	"IGST Diff",
	"CGST Diff",
	"SGST Diff",
}

// Writer wraps csv.Writer for exporting reconciliation reports.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult writes every partition of a reconciliation run:
// matched pairs first, then amount mismatches, then invoices missing
// from GSTR-2B, then 2B entries with no recorded purchase.
func (w *Writer) WriteResult(res *recon.Result) error {
	for i := range res.Matched {
		if err := w.csv.Write(pairToRow(&res.Matched[i])); err != nil {
			return err
		}
	}
	for i := range res.AmountMismatches {
		if err := w.csv.Write(pairToRow(&res.AmountMismatches[i])); err != nil {
			return err
		}
	}
	for i := range res.NotIn2B {
		if err := w.csv.Write(invoiceToRow(&res.NotIn2B[i])); err != nil {
			return err
		}
	}
	for i := range res.In2BOnly {
		if err := w.csv.Write(entryToRow(&res.In2BOnly[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary appends a footer block after the data rows: a blank
// separator, then label/value pairs in the first two columns.
func (w *Writer) WriteSummary(sum recon.Summary) error {
	footer := [][2]string{
		{"Total Invoices", strconv.Itoa(sum.TotalInvoices)},
		{"Total GSTR-2B Entries", strconv.Itoa(sum.TotalEntries)},
		{"Matched", strconv.Itoa(sum.MatchedCount)},
		{"Amount Mismatches", strconv.Itoa(sum.AmountMismatchCount)},
		{"Not In GSTR-2B", strconv.Itoa(sum.NotIn2BCount)},
		{"In GSTR-2B Only", strconv.Itoa(sum.In2BOnlyCount)},
		{"Total Matched ITC", formatMoney(sum.TotalMatchedITC)},
	}

	if err := w.csv.Write(make([]string, len(columns))); err != nil {
		return err
	}
	for _, pair := range footer {
		row := make([]string, len(columns))
		row[0], row[1] = pair[0], pair[1]
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func pairToRow(p *recon.Pair) []string {
	row := make([]string, len(columns))
	inv := &p.Invoice

	row[0] = inv.Ref
	row[1] = inv.VendorGSTIN
	row[2] = inv.InvoiceNumber
	row[3] = formatDate(inv.InvoiceDate)
	row[4] = formatMoney(inv.TaxableValue)
	row[5] = formatMoney(inv.IGST)
	row[6] = formatMoney(inv.CGST)
	row[7] = formatMoney(inv.SGST)
	row[8] = formatMoney(inv.TotalTax())
	row[9] = string(p.Result.Status)
	row[10] = strconv.Itoa(p.Result.Confidence)
	row[11] = strings.Join(p.Result.MatchedFields, "; ")
	row[12] = strings.Join(p.Result.Reasons, "; ")
	row[13] = formatDate(p.Entry.InvoiceDate)

	if d := p.Result.MismatchDetails; d != nil {
		row[14] = formatMoney(d.TaxableValueDiff)
		row[15] = formatMoney(d.IGSTDiff)
		row[16] = formatMoney(d.CGSTDiff)
		row[17] = formatMoney(d.SGSTDiff)
	}
	return row
}

func invoiceToRow(inv *domain.PurchaseInvoice) []string {
	row := make([]string, len(columns))
	row[0] = inv.Ref
	row[1] = inv.VendorGSTIN
	row[2] = inv.InvoiceNumber
	row[3] = formatDate(inv.InvoiceDate)
	row[4] = formatMoney(inv.TaxableValue)
	row[5] = formatMoney(inv.IGST)
	row[6] = formatMoney(inv.CGST)
	row[7] = formatMoney(inv.SGST)
	row[8] = formatMoney(inv.TotalTax())
	row[9] = sectionNotIn2B
	row[12] = "not reported by supplier; ITC at risk"
	return row
}

func entryToRow(e *domain.GSTR2BEntry) []string {
	row := make([]string, len(columns))
	row[1] = e.VendorGSTIN
	row[2] = e.InvoiceNumber
	row[3] = formatDate(e.InvoiceDate)
	row[4] = formatMoney(e.TaxableValue)
	row[5] = formatMoney(e.IGST)
	row[6] = formatMoney(e.CGST)
	row[7] = formatMoney(e.SGST)
	row[8] = formatMoney(e.TotalTax())
	row[9] = sectionIn2BOnly
	row[12] = "reported in GSTR-2B with no recorded purchase"
	return row
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use as a filename.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized report filename.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
