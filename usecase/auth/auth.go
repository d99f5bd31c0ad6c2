// Package auth implements account registration, login and credential
// management. Every failure on the login path collapses to the same
// "Invalid email or password" error so callers cannot probe which accounts
// exist or which are disabled.
package auth

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/pkg/token"
	"github.com/rbe-platform/backend/repository"
)

const bcryptCost = 10

type UseCase struct {
	users  repository.UserRepository
	tokens *token.Manager
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Manager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Session pairs a user with a freshly signed token.
type Session struct {
	User  *domain.User
	Token string
}

// Register creates a contributor account and signs it in.
func (uc *UseCase) Register(ctx context.Context, email, username, password, region string) (*Session, error) {
	exists, err := uc.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}
	if region == "" {
		region = domain.DefaultRegion
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleContributor,
		Region:       region,
	})
	if err != nil {
		return nil, err
	}

	signed, err := uc.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return &Session{User: user, Token: signed}, nil
}

// Login authenticates by email and password. Unknown, inactive and
// wrong-password cases are indistinguishable in the returned error.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.users.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.users.UpdateLastLogin(ctx, user.ID); err != nil {
		uc.logger.Warn("failed to stamp last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	signed, err := uc.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: signed}, nil
}

// Me loads the authenticated user's profile.
func (uc *UseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// Refresh re-signs a token for the same identity with a fresh expiry.
func (uc *UseCase) Refresh(ctx context.Context, userID string) (*Session, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	signed, err := uc.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: signed}, nil
}

// ChangePassword rotates the caller's password after re-verifying the
// current one.
func (uc *UseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.NewError(domain.ErrCodeUnauthorized, "Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := uc.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	uc.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}
