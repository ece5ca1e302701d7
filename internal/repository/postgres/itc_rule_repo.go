package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lekha/internal/gst/itc"
	"lekha/internal/port"
)

type itcRuleRepo struct {
	db *sqlx.DB
}

// NewITCRuleRepo creates a new PostgreSQL-backed ITCRuleRepository.
func NewITCRuleRepo(db *sqlx.DB) port.ITCRuleRepository {
	return &itcRuleRepo{db: db}
}

func (r *itcRuleRepo) LoadActive(ctx context.Context) ([]itc.Rule, error) {
	var rules []itc.Rule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT category, section, description, active
		 FROM itc_blocked_credit_rules
		 WHERE active
		 ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("itcRuleRepo.LoadActive: %w", err)
	}
	return rules, nil
}
