package ports

import (
	"context"
	"time"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

// Session is returned by Register and Login: the signed bearer token plus the
// authenticated user.
type Session struct {
	Token string
	User  *domain.User
}

// AuthService manages accounts and session tokens.
type AuthService interface {
	// Register creates a new, unverified account and opens a session.
	Register(ctx context.Context, email, password, name string) (*Session, error)
	// Login authenticates an existing account, or provisions one on first
	// login with the display name derived from the email local part.
	Login(ctx context.Context, email, password string) (*Session, error)
	// Logout revokes the token with the given id until its natural expiry.
	// Stored claims are unaffected.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	// Verify marks the user as verified, unlocking gated deals.
	Verify(ctx context.Context, userID string) (*domain.User, error)
}
