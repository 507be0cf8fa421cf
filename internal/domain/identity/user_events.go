package identity

import (
	"github.com/busstore/backend/internal/domain/shared"
)

// Event types for the identity domain
const (
	EventTypeUserSignedUp = "identity.user.signed_up"
)

// UserSignedUpEvent is raised when a customer creates an account
type UserSignedUpEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserSignedUpEvent creates a UserSignedUpEvent
func NewUserSignedUpEvent(u *User) *UserSignedUpEvent {
	return &UserSignedUpEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserSignedUp, "User", u.ID),
		Email:           u.Email,
	}
}
