package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"lekha/internal/csvexport"
	"lekha/internal/gst/recon"
	"lekha/internal/gstr2b"
)

// ReconciliationService runs a purchase register against a GSTR-2B
// statement and renders the result as a CSV report.
type ReconciliationService interface {
	Reconcile(ctx context.Context, registerPath, statementPath string) (*recon.Result, error)
	ExportCSV(res *recon.Result, name string) (string, error)
}

type reconciliationService struct {
	matcher   *recon.Matcher
	outputDir string
}

// NewReconciliationService creates a ReconciliationService writing
// reports under outputDir.
func NewReconciliationService(tol recon.Tolerances, outputDir string) ReconciliationService {
	return &reconciliationService{
		matcher:   recon.NewMatcher(tol),
		outputDir: outputDir,
	}
}

func (s *reconciliationService) Reconcile(ctx context.Context, registerPath, statementPath string) (*recon.Result, error) {
	invoices, err := gstr2b.ReadPurchaseRegisterFile(registerPath)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	entries, err := gstr2b.ParseWorkbook(statementPath)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	res := s.matcher.Run(invoices, entries)
	log.Printf("reconcile: %d invoices vs %d entries: %d matched, %d amount mismatches, %d not in 2B, %d in 2B only",
		res.Summary.TotalInvoices, res.Summary.TotalEntries,
		res.Summary.MatchedCount, res.Summary.AmountMismatchCount,
		res.Summary.NotIn2BCount, res.Summary.In2BOnlyCount)
	return res, nil
}

// ExportCSV writes the report with a UTF-8 BOM so the file opens
// cleanly in Excel. Returns the written path.
func (s *reconciliationService) ExportCSV(res *recon.Result, name string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("export: create output dir: %w", err)
	}

	path := filepath.Join(s.outputDir, csvexport.BuildFilename(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	w := csvexport.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := w.WriteResult(res); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := w.WriteSummary(res.Summary); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	log.Printf("reconcile: report written to %s", path)
	return path, nil
}
