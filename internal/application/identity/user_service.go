package identity

import (
	"context"
	"time"

	"github.com/busstore/backend/internal/domain/identity"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles account signup and profile management
type UserService struct {
	userRepo identity.UserRepository
	store    config.StoreConfig
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, store config.StoreConfig, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		store:    store,
		logger:   logger,
	}
}

// Signup creates a new customer account
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		if err := user.SetName(req.Name); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("account created", zap.String("email", user.Email))

	return ToUserResponse(user, s.store.IsAdmin(user.Email)), nil
}

// GetProfile returns the profile of an account
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user, s.store.IsAdmin(user.Email)), nil
}

// UpdateProfile applies a partial update to an account's profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := user.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Identification != nil {
		if err := user.SetIdentification(*req.Identification); err != nil {
			return nil, err
		}
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date must be YYYY-MM-DD")
		}
		if err := user.SetBirthDate(birthDate); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		address, err := req.Address.ToAddress()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		user.SetAddress(address)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user, s.store.IsAdmin(user.Email)), nil
}

// Deactivate disables an account
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.Deactivate(); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("account deactivated", zap.String("email", user.Email))
	return nil
}
