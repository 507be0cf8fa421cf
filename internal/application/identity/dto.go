package identity

import (
	"time"

	"github.com/busstore/backend/internal/domain/identity"
	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/busstore/backend/internal/infrastructure/auth"
)

// SignupRequest represents a request to create a customer account
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"omitempty,max=200"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the outcome of a successful login
type LoginResult struct {
	User      *UserResponse   `json:"user"`
	TokenPair *auth.TokenPair `json:"tokens"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// AddressRequest carries the shipping address of a profile
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	Number     string `json:"number" binding:"omitempty,max=20"`
	Complement string `json:"complement" binding:"omitempty,max=100"`
	District   string `json:"district" binding:"omitempty,max=100"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,len=2"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// ToAddress converts the request into the address value object
func (r AddressRequest) ToAddress() (valueobject.Address, error) {
	return valueobject.NewAddress(r.Street, r.Number, r.Complement, r.District, r.City, r.State, r.PostalCode)
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name           *string         `json:"name" binding:"omitempty,max=200"`
	Phone          *string         `json:"phone" binding:"omitempty,max=50"`
	Identification *string         `json:"identification" binding:"omitempty,max=20"`
	BirthDate      *string         `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Address        *AddressRequest `json:"address"`
}

// AddressResponse mirrors the stored shipping address
type AddressResponse struct {
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// UserResponse represents a user account in API responses
type UserResponse struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	Name           string           `json:"name,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Identification string           `json:"identification,omitempty"`
	BirthDate      string           `json:"birth_date,omitempty"`
	Address        *AddressResponse `json:"address,omitempty"`
	Status         string           `json:"status"`
	IsAdmin        bool             `json:"is_admin"`
	LastLoginAt    *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToUserResponse converts a user aggregate to its API representation.
// isAdmin comes from configuration, not from the aggregate.
func ToUserResponse(user *identity.User, isAdmin bool) *UserResponse {
	resp := &UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		Name:           user.Name,
		Phone:          user.Phone,
		Identification: user.Identification,
		Status:         string(user.Status),
		IsAdmin:        isAdmin,
		LastLoginAt:    user.LastLoginAt,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if user.BirthDate != nil {
		resp.BirthDate = user.BirthDate.Format("2006-01-02")
	}

	if !user.Address.IsEmpty() {
		resp.Address = &AddressResponse{
			Street:     user.Address.Street(),
			Number:     user.Address.Number(),
			Complement: user.Address.Complement(),
			District:   user.Address.District(),
			City:       user.Address.City(),
			State:      user.Address.State(),
			PostalCode: user.Address.PostalCode(),
		}
	}

	return resp
}
