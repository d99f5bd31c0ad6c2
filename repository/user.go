package repository

import (
	"context"

	"github.com/rbe-platform/backend/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetActiveByEmail only matches users whose is_active flag is set;
	// inactive accounts behave as absent so login cannot distinguish them.
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type ContributionFilter struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

type ContributionRepository interface {
	Create(ctx context.Context, contribution *domain.UserContribution) (*domain.UserContribution, error)
	GetByID(ctx context.Context, id string) (*domain.UserContribution, error)
	List(ctx context.Context, filter ContributionFilter) ([]domain.UserContribution, error)
	// Review stamps the moderation decision and the reviewer.
	Review(ctx context.Context, id, status, reviewerID string, verified bool) (*domain.UserContribution, error)
}
