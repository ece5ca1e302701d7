package port

import (
	"context"

	"lekha/internal/domain"
)

// SupplierProfileRepository defines the contract for foreign supplier
// profile data access. Profiles seed the fuzzy-match registry.
type SupplierProfileRepository interface {
	LoadAll(ctx context.Context) ([]domain.ForeignSupplierProfile, error)
}
