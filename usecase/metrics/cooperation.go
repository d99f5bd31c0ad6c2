// Package metrics holds the use cases for the four time-series surfaces:
// cooperation, automation, environmental and social.
package metrics

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type CooperationUseCase struct {
	metrics repository.CooperationRepository
	logger  *zap.Logger
}

func NewCooperation(metrics repository.CooperationRepository, logger *zap.Logger) *CooperationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CooperationUseCase{
		metrics: metrics,
		logger:  logger,
	}
}

func (uc *CooperationUseCase) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.CooperationMetric, error) {
	return uc.metrics.List(ctx, filter)
}

func (uc *CooperationUseCase) Get(ctx context.Context, id string) (*domain.CooperationMetric, error) {
	return uc.metrics.GetByID(ctx, id)
}

func (uc *CooperationUseCase) Create(ctx context.Context, metric *domain.CooperationMetric) (*domain.CooperationMetric, error) {
	created, err := uc.metrics.Create(ctx, metric)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("cooperation metric created",
		zap.String("id", created.ID),
		zap.String("region_from", created.RegionFrom),
	)
	return created, nil
}

func (uc *CooperationUseCase) Delete(ctx context.Context, id string) error {
	return uc.metrics.Delete(ctx, id)
}

func (uc *CooperationUseCase) StatsByRegion(ctx context.Context) ([]domain.CooperationRegionStat, error) {
	return uc.metrics.StatsByRegion(ctx)
}

func (uc *CooperationUseCase) StatsByType(ctx context.Context) ([]domain.CooperationTypeStat, error) {
	return uc.metrics.StatsByType(ctx)
}
