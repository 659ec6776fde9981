package identity

import (
	"context"

	"github.com/erp/erpapp/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create persists a new user and assigns its ID
	Create(ctx context.Context, user *User) error

	// Update saves all fields of an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByUsernameOrEmail finds the user whose username or email equals login
	FindByUsernameOrEmail(ctx context.Context, login string) (*User, error)

	// ExistsByUsernameOrEmail checks whether either identifier is taken
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// FindAll lists users
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[User], error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
