package identity

import (
	"context"
	"time"

	"github.com/busstore/backend/internal/domain/identity"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/infrastructure/auth"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig tunes login lockout behavior
type AuthServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultAuthServiceConfig returns the default lockout settings
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication for store accounts
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	store      config.StoreConfig
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	store config.StoreConfig,
	cfg AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = DefaultAuthServiceConfig().MaxLoginAttempts
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = DefaultAuthServiceConfig().LockDuration
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		store:      store,
		config:     cfg,
		logger:     logger,
	}
}

// Login authenticates a user and issues a token pair. Failed attempts are
// counted on the account and lock it once the limit is reached.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked due to too many failed attempts")
		}
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("failed to record login failure",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
		if locked {
			s.logger.Warn("account locked after repeated login failures",
				zap.String("email", user.Email))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked due to too many failed attempts")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to record login success",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate tokens")
	}

	s.logger.Info("user logged in", zap.String("email", user.Email))

	return &LoginResult{
		User:      ToUserResponse(user, s.store.IsAdmin(user.Email)),
		TokenPair: tokenPair,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist check failed", zap.Error(err))
		return nil, shared.ErrUnauthorized
	}
	if blacklisted {
		return nil, shared.ErrUnauthorized
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.CanLogin() {
		return nil, shared.ErrUnauthorized
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	// The old refresh token cannot be replayed
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("failed to revoke rotated refresh token", zap.Error(err))
	}

	return tokenPair, nil
}

// Logout revokes the access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Already invalid tokens need no revocation
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("failed to blacklist token on logout",
			zap.String("user_id", claims.UserID),
			zap.Error(err))
		return shared.NewDomainError("LOGOUT_FAILED", "Failed to revoke token")
	}

	s.logger.Info("user logged out", zap.String("email", claims.Email))
	return nil
}

// GetCurrentUser loads the account behind a set of validated claims
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user, s.store.IsAdmin(user.Email)), nil
}

// ChangePassword changes a user's password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}
