package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	identityapp "github.com/busstore/backend/internal/application/identity"
	"github.com/busstore/backend/internal/domain/identity"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/infrastructure/auth"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[identity.User]), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var testStore = config.StoreConfig{AdminEmail: "admin@busstore.com"}

func newAuthTestRouter(repo *MockUserRepository) *gin.Engine {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "busstore-backend",
		MaxRefreshCount:        3,
	})
	authService := identityapp.NewAuthService(
		repo, jwtService, auth.NewInMemoryTokenBlacklist(),
		testStore, identityapp.DefaultAuthServiceConfig(), zap.NewNop(),
	)
	userService := identityapp.NewUserService(repo, testStore, zap.NewNop())
	h := NewAuthHandler(authService, userService)

	router := gin.New()
	router.POST("/auth/signup", h.Signup)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.Refresh)
	return router
}

func TestSignupCreatesAccount(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/signup", gin.H{
		"email":    "ana@example.com",
		"password": "s3cret-password",
		"name":     "Ana Souza",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, `"is_admin":false`)
	assert.NotContains(t, body, "password")
}

func TestSignupDuplicateEmailIs409(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/signup", gin.H{
		"email":    "ana@example.com",
		"password": "s3cret-password",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
}

func TestSignupShortPasswordIs400(t *testing.T) {
	repo := new(MockUserRepository)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/signup", gin.H{
		"email":    "ana@example.com",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := new(MockUserRepository)
	user, err := identity.NewUser("ana@example.com", "s3cret-password")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "s3cret-password",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "access_token")
	assert.Contains(t, body, "refresh_token")
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	repo := new(MockUserRepository)
	user, err := identity.NewUser("ana@example.com", "s3cret-password")
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestLoginUnknownEmailIsSame401(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestRefreshGarbageTokenIs401(t *testing.T) {
	repo := new(MockUserRepository)

	w := performJSON(newAuthTestRouter(repo), http.MethodPost, "/auth/refresh", gin.H{
		"refresh_token": "garbage",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
