package repository

import (
	"context"

	"github.com/rbe-platform/backend/domain"
)

type CityFilter struct {
	Region string
	Status string
	Page   int
	Limit  int
}

type CityRepository interface {
	List(ctx context.Context, filter CityFilter) ([]domain.CircularCity, error)
	GetByID(ctx context.Context, id string) (*domain.CircularCity, error)
	Create(ctx context.Context, city *domain.CircularCity) (*domain.CircularCity, error)
	Update(ctx context.Context, id string, patch domain.CityPatch) (*domain.CircularCity, error)
	Delete(ctx context.Context, id string) error
	StatsByStatus(ctx context.Context) ([]domain.CityStatusStat, error)
	Summary(ctx context.Context) (*domain.CitySummary, error)
}
