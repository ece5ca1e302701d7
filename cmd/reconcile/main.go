// Command reconcile matches a purchase register export against a
// GSTR-2B statement workbook and writes a CSV report.
// Usage: go run ./cmd/reconcile -register purchases.csv -gstr2b gstr2b.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"lekha/internal/config"
	"lekha/internal/gst/recon"
	"lekha/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	registerPath := flag.String("register", "", "purchase register CSV path")
	statementPath := flag.String("gstr2b", "", "GSTR-2B workbook path (.xlsx)")
	reportName := flag.String("name", "reconciliation", "report name used in the output filename")
	outputDir := flag.String("out", "", "report output directory (overrides config)")
	flag.Parse()

	if *registerPath == "" || *statementPath == "" {
		flag.Usage()
		return fmt.Errorf("both -register and -gstr2b are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dir := cfg.Reports.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}

	svc := service.NewReconciliationService(tolerances(&cfg.Recon), dir)

	res, err := svc.Reconcile(context.Background(), *registerPath, *statementPath)
	if err != nil {
		return err
	}

	path, err := svc.ExportCSV(res, *reportName)
	if err != nil {
		return err
	}

	log.Printf("Matched ITC total: ₹%s", res.Summary.TotalMatchedITC.StringFixed(2))
	log.Printf("Report: %s", path)
	return nil
}

func tolerances(cfg *config.ReconConfig) recon.Tolerances {
	return recon.Tolerances{
		DateToleranceDays:  cfg.DateToleranceDays,
		AmountTolerancePct: decimal.NewFromFloat(cfg.AmountTolerancePct),
		AmountToleranceAbs: decimal.NewFromFloat(cfg.AmountToleranceAbs),
		ConfidenceFloor:    cfg.ConfidenceFloor,
	}
}
