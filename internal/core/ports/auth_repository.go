package ports

import (
	"context"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// SetVerified flips the verification flag on an existing user.
	SetVerified(ctx context.Context, id string, verified bool) error
}
