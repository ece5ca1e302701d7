package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type supplierProfileRepo struct {
	db *sqlx.DB
}

// NewSupplierProfileRepo creates a new PostgreSQL-backed SupplierProfileRepository.
func NewSupplierProfileRepo(db *sqlx.DB) port.SupplierProfileRepository {
	return &supplierProfileRepo{db: db}
}

// Name patterns and domains are stored as comma-separated text.
type supplierProfileRow struct {
	SupplierCode    string  `db:"supplier_code"`
	NamePatterns    string  `db:"name_patterns"`
	Domains         string  `db:"domains"`
	DefaultCode     string  `db:"default_code"`
	DefaultGSTRate  float64 `db:"default_gst_rate"`
	ServiceCategory string  `db:"service_category"`
	DefaultCurrency string  `db:"default_currency"`
	BillingCountry  string  `db:"billing_country"`
}

func (r *supplierProfileRepo) LoadAll(ctx context.Context) ([]domain.ForeignSupplierProfile, error) {
	var rows []supplierProfileRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT supplier_code, name_patterns, domains, default_code, default_gst_rate,
		        service_category, default_currency, billing_country
		 FROM foreign_supplier_profiles
		 ORDER BY supplier_code`)
	if err != nil {
		return nil, fmt.Errorf("supplierProfileRepo.LoadAll: %w", err)
	}

	profiles := make([]domain.ForeignSupplierProfile, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		profiles = append(profiles, domain.ForeignSupplierProfile{
			SupplierCode:    row.SupplierCode,
			NamePatterns:    splitList(row.NamePatterns),
			Domains:         splitList(row.Domains),
			DefaultCode:     row.DefaultCode,
			DefaultGSTRate:  row.DefaultGSTRate,
			ServiceCategory: row.ServiceCategory,
			DefaultCurrency: row.DefaultCurrency,
			BillingCountry:  row.BillingCountry,
		})
	}
	return profiles, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
