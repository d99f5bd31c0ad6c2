package principle

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type UseCase struct {
	principles repository.PrincipleRepository
	logger     *zap.Logger
}

func New(principles repository.PrincipleRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		principles: principles,
		logger:     logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.PrincipleFilter) ([]domain.Principle, error) {
	return uc.principles.List(ctx, filter)
}

func (uc *UseCase) GetByNumber(ctx context.Context, number int) (*domain.Principle, error) {
	return uc.principles.GetByNumber(ctx, number)
}

func (uc *UseCase) UpdateByNumber(ctx context.Context, number int, patch domain.PrinciplePatch) (*domain.Principle, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	updated, err := uc.principles.UpdateByNumber(ctx, number, patch)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("principle updated",
		zap.Int("principle_number", number),
		zap.String("status", updated.Status),
	)
	return updated, nil
}

func (uc *UseCase) StatsSummary(ctx context.Context) (*domain.PrincipleSummary, error) {
	return uc.principles.StatsSummary(ctx)
}

func (uc *UseCase) StatsByCategory(ctx context.Context) ([]domain.PrincipleCategoryStat, error) {
	return uc.principles.StatsByCategory(ctx)
}
