package port

import (
	"context"

	"lekha/internal/gst/itc"
)

// ITCRuleRepository defines the contract for blocked-credit rule data
// access. Rules carry their Section 17(5) citation; only active rules
// participate in eligibility decisions.
type ITCRuleRepository interface {
	LoadActive(ctx context.Context) ([]itc.Rule, error)
}
