package metrics

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type AutomationUseCase struct {
	records repository.AutomationRepository
	logger  *zap.Logger
}

func NewAutomation(records repository.AutomationRepository, logger *zap.Logger) *AutomationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutomationUseCase{
		records: records,
		logger:  logger,
	}
}

func (uc *AutomationUseCase) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.AutomationProgress, error) {
	return uc.records.List(ctx, filter)
}

func (uc *AutomationUseCase) Get(ctx context.Context, id string) (*domain.AutomationProgress, error) {
	return uc.records.GetByID(ctx, id)
}

func (uc *AutomationUseCase) Create(ctx context.Context, record *domain.AutomationProgress) (*domain.AutomationProgress, error) {
	if record.Region == "" {
		record.Region = domain.DefaultRegion
	}
	created, err := uc.records.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("automation record created",
		zap.String("id", created.ID),
		zap.String("sector", created.Sector),
	)
	return created, nil
}

func (uc *AutomationUseCase) Delete(ctx context.Context, id string) error {
	return uc.records.Delete(ctx, id)
}

func (uc *AutomationUseCase) StatsBySector(ctx context.Context) ([]domain.AutomationSectorStat, error) {
	return uc.records.StatsBySector(ctx)
}

func (uc *AutomationUseCase) Summary(ctx context.Context) (*domain.AutomationSummary, error) {
	return uc.records.Summary(ctx)
}
