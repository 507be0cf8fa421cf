package identity

import (
	"context"

	"github.com/busstore/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for customer accounts
type UserRepository interface {
	shared.Repository[User]

	// FindByEmail looks up a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail reports whether an account already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindPaginated returns users matching the filter with pagination metadata
	FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[User], error)
}
