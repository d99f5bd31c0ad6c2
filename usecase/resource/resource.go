package resource

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type UseCase struct {
	resources repository.ResourceRepository
	logger    *zap.Logger
}

func New(resources repository.ResourceRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		resources: resources,
		logger:    logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.ResourceFilter) ([]domain.Resource, int64, error) {
	return uc.resources.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Resource, error) {
	return uc.resources.GetByID(ctx, id)
}

func (uc *UseCase) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	if resource.Region == "" {
		resource.Region = domain.DefaultRegion
	}
	created, err := uc.resources.Create(ctx, resource)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("resource created",
		zap.String("id", created.ID),
		zap.String("category", created.Category),
	)
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, id string, patch domain.ResourcePatch) (*domain.Resource, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	return uc.resources.Update(ctx, id, patch)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.resources.Delete(ctx, id)
}

func (uc *UseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.resources.Categories(ctx)
}

func (uc *UseCase) Regions(ctx context.Context) ([]string, error) {
	return uc.resources.Regions(ctx)
}
