package metrics

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type SocialUseCase struct {
	metrics repository.SocialRepository
	logger  *zap.Logger
}

func NewSocial(metrics repository.SocialRepository, logger *zap.Logger) *SocialUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SocialUseCase{
		metrics: metrics,
		logger:  logger,
	}
}

func (uc *SocialUseCase) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.SocialMetric, error) {
	return uc.metrics.List(ctx, filter)
}

func (uc *SocialUseCase) Get(ctx context.Context, id string) (*domain.SocialMetric, error) {
	return uc.metrics.GetByID(ctx, id)
}

func (uc *SocialUseCase) Create(ctx context.Context, metric *domain.SocialMetric) (*domain.SocialMetric, error) {
	if metric.Region == "" {
		metric.Region = domain.DefaultRegion
	}
	created, err := uc.metrics.Create(ctx, metric)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("social metric created",
		zap.String("id", created.ID),
		zap.String("metric_name", created.MetricName),
	)
	return created, nil
}

func (uc *SocialUseCase) Delete(ctx context.Context, id string) error {
	return uc.metrics.Delete(ctx, id)
}

func (uc *SocialUseCase) StatsByCategory(ctx context.Context) ([]domain.SocialCategoryStat, error) {
	return uc.metrics.StatsByCategory(ctx)
}

func (uc *SocialUseCase) StatsByRegion(ctx context.Context) ([]domain.SocialRegionStat, error) {
	return uc.metrics.StatsByRegion(ctx)
}

func (uc *SocialUseCase) Latest(ctx context.Context) ([]domain.SocialLatest, error) {
	return uc.metrics.Latest(ctx)
}
