package contribution

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

type UseCase struct {
	contributions repository.ContributionRepository
	logger        *zap.Logger
}

func New(contributions repository.ContributionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		contributions: contributions,
		logger:        logger,
	}
}

// Submit records a pending contribution for the given user.
func (uc *UseCase) Submit(ctx context.Context, contribution *domain.UserContribution) (*domain.UserContribution, error) {
	contribution.Status = domain.ContributionStatusPending
	contribution.Verified = false
	created, err := uc.contributions.Create(ctx, contribution)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("contribution submitted",
		zap.String("id", created.ID),
		zap.String("user_id", created.UserID),
	)
	return created, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.UserContribution, error) {
	return uc.contributions.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.ContributionFilter) ([]domain.UserContribution, error) {
	return uc.contributions.List(ctx, filter)
}

// Review applies a moderation decision. Approval marks the row verified
// unless the reviewer explicitly overrides it.
func (uc *UseCase) Review(ctx context.Context, id, status, reviewerID string, verified *bool) (*domain.UserContribution, error) {
	if status != domain.ContributionStatusApproved && status != domain.ContributionStatusRejected {
		return nil, domain.ErrInvalidPayload
	}
	flag := status == domain.ContributionStatusApproved
	if verified != nil {
		flag = *verified
	}
	reviewed, err := uc.contributions.Review(ctx, id, status, reviewerID, flag)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("contribution reviewed",
		zap.String("id", id),
		zap.String("status", status),
		zap.String("reviewed_by", reviewerID),
	)
	return reviewed, nil
}
