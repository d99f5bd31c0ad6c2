package metrics

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type EnvironmentalUseCase struct {
	metrics repository.EnvironmentalRepository
	logger  *zap.Logger
}

func NewEnvironmental(metrics repository.EnvironmentalRepository, logger *zap.Logger) *EnvironmentalUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnvironmentalUseCase{
		metrics: metrics,
		logger:  logger,
	}
}

func (uc *EnvironmentalUseCase) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.EnvironmentalMetric, error) {
	return uc.metrics.List(ctx, filter)
}

func (uc *EnvironmentalUseCase) Get(ctx context.Context, id string) (*domain.EnvironmentalMetric, error) {
	return uc.metrics.GetByID(ctx, id)
}

func (uc *EnvironmentalUseCase) Create(ctx context.Context, metric *domain.EnvironmentalMetric) (*domain.EnvironmentalMetric, error) {
	if metric.Region == "" {
		metric.Region = domain.DefaultRegion
	}
	created, err := uc.metrics.Create(ctx, metric)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("environmental metric created",
		zap.String("id", created.ID),
		zap.String("metric_name", created.MetricName),
	)
	return created, nil
}

func (uc *EnvironmentalUseCase) Delete(ctx context.Context, id string) error {
	return uc.metrics.Delete(ctx, id)
}

func (uc *EnvironmentalUseCase) StatsByType(ctx context.Context) ([]domain.EnvironmentalTypeStat, error) {
	return uc.metrics.StatsByType(ctx)
}

func (uc *EnvironmentalUseCase) Latest(ctx context.Context) ([]domain.EnvironmentalLatest, error) {
	return uc.metrics.Latest(ctx)
}
