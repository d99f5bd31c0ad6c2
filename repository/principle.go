package repository

import (
	"context"

	"github.com/rbe-platform/backend/domain"
)

type PrincipleFilter struct {
	Region   string
	Category string
	Status   string
	Page     int
	Limit    int
}

// PrincipleRepository exposes the fixed 100-row principles dataset.
// There is no create or delete; rows are seeded by migration.
type PrincipleRepository interface {
	List(ctx context.Context, filter PrincipleFilter) ([]domain.Principle, error)
	GetByNumber(ctx context.Context, number int) (*domain.Principle, error)
	UpdateByNumber(ctx context.Context, number int, patch domain.PrinciplePatch) (*domain.Principle, error)
	StatsSummary(ctx context.Context) (*domain.PrincipleSummary, error)
	StatsByCategory(ctx context.Context) ([]domain.PrincipleCategoryStat, error)
}
