package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

// VerificationPolicy decides whether a newly provisioned account starts
// verified. It stands in for an external verification service; the decision
// must be deterministic for a given email.
type VerificationPolicy interface {
	Verified(email string) bool
}

// EmailMarkerPolicy verifies accounts whose email local part carries the
// "verified" marker. Demo scaffolding for environments without a real
// verification service.
type EmailMarkerPolicy struct{}

func (EmailMarkerPolicy) Verified(email string) bool {
	return strings.Contains(emailLocalPart(email), "verified")
}

// TokenDenylist abstracts the revoked-token store (Redis).
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthService implements registration, login, logout, and verification.
type AuthService struct {
	users     ports.UserRepository
	denylist  TokenDenylist
	policy    VerificationPolicy
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, denylist TokenDenylist, policy VerificationPolicy, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if policy == nil {
		policy = EmailMarkerPolicy{}
	}
	return &AuthService{users: users, denylist: denylist, policy: policy, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new account. New accounts always start unverified,
// regardless of the verification policy.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*ports.Session, error) {
	if email == "" || name == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.newSession(created)
}

// Login authenticates against the stored password hash. Unknown emails are
// provisioned on first login: the display name is the email local part and
// the verification flag comes from the policy.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.provision(ctx, email, password)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
	}

	return s.newSession(user)
}

// Logout revokes the token until its natural expiry. Previously stored claims
// are untouched; only the session dies.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrUnauthenticated
	}
	return s.denylist.Revoke(ctx, tokenID, expiresAt)
}

// Verify flips the verification flag. Idempotent on already-verified users.
func (s *AuthService) Verify(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return user, nil
	}
	if err := s.users.SetVerified(ctx, userID, true); err != nil {
		return nil, err
	}
	user.IsVerified = true
	return user, nil
}

func (s *AuthService) provision(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         emailLocalPart(email),
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		IsVerified:   s.policy.Verified(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

func (s *AuthService) newSession(user *domain.User) (*ports.Session, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
		"verified": user.IsVerified,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, User: user}, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
