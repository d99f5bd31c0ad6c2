package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/pkg/token"
)

type fakeUserRepo struct {
	users       map[string]*domain.User
	lastLoginID string
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

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.lastLoginID = id
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func newTestUseCase(repo *fakeUserRepo) *UseCase {
	return New(repo, token.NewManager("test-secret", time.Hour), nil)
}

func TestRegisterIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	session, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, domain.RoleContributor, session.User.Role)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "correcthorse", session.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.User.PasswordHash), []byte("correcthorse")))
}

func TestRegisterDefaultsRegion(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	session, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRegion, session.User.Region)

	session, err = uc.Register(context.Background(), "grace@example.org", "grace", "correcthorse", "europe")
	require.NoError(t, err)
	assert.Equal(t, "europe", session.User.Region)
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	_, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "ada@example.org", "other", "correcthorse", "")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	_, err = uc.Register(context.Background(), "other@example.org", "ada", "correcthorse", "")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestLoginSuccessStampsLastLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	registered, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)

	session, err := uc.Login(context.Background(), "ada@example.org", "correcthorse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, registered.User.ID, repo.lastLoginID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	_, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)

	inactive, err := uc.Register(context.Background(), "off@example.org", "off", "correcthorse", "")
	require.NoError(t, err)
	repo.users[inactive.User.ID].IsActive = false

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.org", "correcthorse"},
		{"wrong password", "ada@example.org", "wrongpassword"},
		{"inactive account", "off@example.org", "correcthorse"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, domain.ErrInvalidCredentials.Message, err.Error())
		})
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	session, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)
	userID := session.User.ID

	err = uc.ChangePassword(context.Background(), userID, "wrongcurrent", "newpassword123")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	require.NoError(t, uc.ChangePassword(context.Background(), userID, "correcthorse", "newpassword123"))

	_, err = uc.Login(context.Background(), "ada@example.org", "correcthorse")
	assert.Error(t, err)

	_, err = uc.Login(context.Background(), "ada@example.org", "newpassword123")
	assert.NoError(t, err)
}

func TestRefreshReSignsSameIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	session, err := uc.Register(context.Background(), "ada@example.org", "ada", "correcthorse", "")
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.Token)
}
