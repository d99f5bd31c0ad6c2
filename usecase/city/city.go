package city

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type UseCase struct {
	cities repository.CityRepository
	logger *zap.Logger
}

func New(cities repository.CityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		cities: cities,
		logger: logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.CityFilter) ([]domain.CircularCity, error) {
	return uc.cities.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.CircularCity, error) {
	return uc.cities.GetByID(ctx, id)
}

func (uc *UseCase) Create(ctx context.Context, city *domain.CircularCity) (*domain.CircularCity, error) {
	if city.Region == "" {
		city.Region = domain.DefaultRegion
	}
	created, err := uc.cities.Create(ctx, city)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("circular city created",
		zap.String("id", created.ID),
		zap.String("name", created.Name),
		zap.String("status", created.Status),
	)
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, id string, patch domain.CityPatch) (*domain.CircularCity, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	return uc.cities.Update(ctx, id, patch)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.cities.Delete(ctx, id)
}

func (uc *UseCase) StatsByStatus(ctx context.Context) ([]domain.CityStatusStat, error) {
	return uc.cities.StatsByStatus(ctx)
}

func (uc *UseCase) Summary(ctx context.Context) (*domain.CitySummary, error) {
	return uc.cities.Summary(ctx)
}
