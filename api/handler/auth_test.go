package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/pkg/token"
	authUC "github.com/rbe-platform/backend/usecase/auth"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	user.IsActive = true
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.IsActive {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateLastLogin(context.Context, string) error { return nil }

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = hash
	return nil
}

func newAuthHandler() *AuthHandler {
	uc := authUC.New(newFakeUserRepo(), token.NewManager("test-secret", time.Hour), nil)
	return NewAuthHandler(uc, nil, nil)
}

func TestRegisterAndDuplicateConflict(t *testing.T) {
	h := newAuthHandler()

	body := []byte(`{"email":"ada@example.org","username":"ada","password":"correcthorse"}`)

	ctx := newRequestCtx(http.MethodPost, "/api/auth/register", body)
	h.Register(ctx)
	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	env := parseEnvelope(t, ctx)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.Contains(t, string(env.Data), `"token"`)
	// The password hash never serializes.
	assert.NotContains(t, string(env.Data), "password")

	dup := newRequestCtx(http.MethodPost, "/api/auth/register", body)
	h.Register(dup)
	assert.Equal(t, http.StatusConflict, dup.Response.StatusCode())
	assert.Equal(t, "User with this email or username already exists", parseEnvelope(t, dup).Error)
}

func TestRegisterValidation(t *testing.T) {
	h := newAuthHandler()

	ctx := newRequestCtx(http.MethodPost, "/api/auth/register", []byte(`{"email":"bad","username":"ab","password":"short"}`))
	h.Register(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	h := newAuthHandler()

	ctx := newRequestCtx(http.MethodPost, "/api/auth/login", []byte(`{"email":"ghost@example.org","password":"whatever1"}`))
	h.Login(ctx)

	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, "Invalid email or password", parseEnvelope(t, ctx).Error)
}

func TestMeRequiresIdentityHeader(t *testing.T) {
	h := newAuthHandler()

	ctx := newRequestCtx(http.MethodGet, "/api/auth/me", nil)
	h.Me(ctx)

	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestMeReturnsPublicProfile(t *testing.T) {
	repo := newFakeUserRepo()
	uc := authUC.New(repo, token.NewManager("test-secret", time.Hour), nil)
	h := NewAuthHandler(uc, nil, nil)

	session, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "europe")
	require.NoError(t, err)

	ctx := newRequestCtx(http.MethodGet, "/api/auth/me", nil)
	ctx.Request.Header.Set("X-User-ID", session.User.ID)
	h.Me(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.Contains(t, string(env.Data), `"ada@example.org"`)
	assert.NotContains(t, string(env.Data), "is_active")
}
