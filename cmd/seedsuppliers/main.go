// Command seedsuppliers converts the built-in foreign supplier
// registry and the Section 17(5) blocked-credit table into SQL seed
// files.
// Usage: go run ./cmd/seedsuppliers
// Output: db/seeds/foreign_supplier_profiles.sql, db/seeds/itc_blocked_credit_rules.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"lekha/internal/gst/itc"
	"lekha/internal/gst/suppliers"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := writeSupplierSeed("db/seeds/foreign_supplier_profiles.sql"); err != nil {
		return fmt.Errorf("supplier seed: %w", err)
	}
	if err := writeRuleSeed("db/seeds/itc_blocked_credit_rules.sql"); err != nil {
		return fmt.Errorf("rule seed: %w", err)
	}
	return nil
}

func writeSupplierSeed(outPath string) error {
	profiles := suppliers.BuiltinProfiles()

	var b strings.Builder
	b.WriteString("-- Foreign supplier profile seed data generated from the built-in registry.\n")
	fmt.Fprintf(&b, "-- %d profiles.\n", len(profiles))
	b.WriteString("BEGIN;\n\n")
	b.WriteString("INSERT INTO foreign_supplier_profiles\n")
	b.WriteString("  (supplier_code, name_patterns, domains, default_code, default_gst_rate, service_category, default_currency, billing_country) VALUES\n")

	for i := range profiles {
		p := &profiles[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %.2f, '%s', '%s', '%s')",
			escapeSQL(p.SupplierCode),
			escapeSQL(strings.Join(p.NamePatterns, ",")),
			escapeSQL(strings.Join(p.Domains, ",")),
			escapeSQL(p.DefaultCode),
			p.DefaultGSTRate,
			escapeSQL(p.ServiceCategory),
			escapeSQL(p.DefaultCurrency),
			escapeSQL(p.BillingCountry))
	}

	b.WriteString("\nON CONFLICT (supplier_code) DO NOTHING;\n\nCOMMIT;\n")

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return err
	}
	log.Printf("Generated %d supplier profiles in %s", len(profiles), outPath)
	return nil
}

func writeRuleSeed(outPath string) error {
	rules := itc.DefaultRules()

	var b strings.Builder
	b.WriteString("-- Section 17(5) blocked-credit rule seed data.\n")
	fmt.Fprintf(&b, "-- %d rules.\n", len(rules))
	b.WriteString("BEGIN;\n\n")
	b.WriteString("INSERT INTO itc_blocked_credit_rules (category, section, description, active) VALUES\n")

	for i, r := range rules {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %t)",
			escapeSQL(string(r.Category)), escapeSQL(r.Section), escapeSQL(r.Description), r.Active)
	}

	b.WriteString("\nON CONFLICT (category) DO NOTHING;\n\nCOMMIT;\n")

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return err
	}
	log.Printf("Generated %d blocked-credit rules in %s", len(rules), outPath)
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
