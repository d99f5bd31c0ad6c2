package repository

import (
	"context"

	"github.com/rbe-platform/backend/domain"
)

// ResourceFilter narrows and pages the resources listing. Zero values mean
// "not supplied" and are omitted from the generated WHERE clause.
type ResourceFilter struct {
	Region   string
	Category string
	SortBy   string
	Order    string
	Page     int
	Limit    int
}

type ResourceRepository interface {
	// List returns one page of resources plus the total row count for the
	// same filter set.
	List(ctx context.Context, filter ResourceFilter) ([]domain.Resource, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	Update(ctx context.Context, id string, patch domain.ResourcePatch) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Regions(ctx context.Context) ([]string, error)
}
