package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/busstore/backend/internal/domain/identity"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of UserRepository
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

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
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

func (m *MockUserRepository) FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[identity.User]), args.Error(1)
}

var testStore = config.StoreConfig{AdminEmail: "admin@busstore.com"}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("ana@example.com", "s3cret-password")
	require.NoError(t, err)
	return user
}

func TestUserServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Signup(ctx, SignupRequest{
			Email:    "ana@example.com",
			Password: "s3cret-password",
			Name:     "Ana",
		})

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", resp.Email)
		assert.Equal(t, "Ana", resp.Name)
		assert.Equal(t, "active", resp.Status)
		assert.False(t, resp.IsAdmin)
		repo.AssertExpectations(t)
	})

	t.Run("the configured admin email is flagged", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "admin@busstore.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Signup(ctx, SignupRequest{
			Email:    "admin@busstore.com",
			Password: "s3cret-password",
		})

		require.NoError(t, err)
		assert.True(t, resp.IsAdmin)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(true, nil)

		_, err := service.Signup(ctx, SignupRequest{
			Email:    "ana@example.com",
			Password: "s3cret-password",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil)

		_, err := service.Signup(ctx, SignupRequest{
			Email:    "ana@example.com",
			Password: "short",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestUserServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial updates", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		user := newTestUser(t)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		name := "Ana Souza"
		cpf := "123.456.789-01"
		birthDate := "1993-04-17"
		resp, err := service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
			Name:           &name,
			Identification: &cpf,
			BirthDate:      &birthDate,
			Address: &AddressRequest{
				Street:     "Rua Augusta",
				Number:     "100",
				City:       "São Paulo",
				State:      "SP",
				PostalCode: "01304001",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", resp.Name)
		assert.Equal(t, "12345678901", resp.Identification)
		assert.Equal(t, "1993-04-17", resp.BirthDate)
		require.NotNil(t, resp.Address)
		assert.Equal(t, "01304-001", resp.Address.PostalCode)
		repo.AssertExpectations(t)
	})

	t.Run("invalid address is rejected before saving", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		user := newTestUser(t)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
			Address: &AddressRequest{
				Street:     "Rua Augusta",
				City:       "São Paulo",
				State:      "SP",
				PostalCode: "bad-cep",
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("unknown user propagates not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, testStore, zap.NewNop())

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetProfile(ctx, id)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
