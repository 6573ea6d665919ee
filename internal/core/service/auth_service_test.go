package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.byID[copy.ID] = copy
	r.byEmail[copy.Email] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetVerified(_ context.Context, id string, verified bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = verified
	return nil
}

type stubDenylist struct {
	revoked map[string]time.Time
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.revoked[tokenID] = expiresAt
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	session, err := svc.Register(context.Background(), "alice@example.com", "pass123", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	user := session.User
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("expected member role, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_AlwaysUnverified(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	// The marker email would verify on login provisioning, but registration
	// always starts unverified.
	session, err := svc.Register(context.Background(), "verified.bob@example.com", "pass123", "Bob")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if session.User.IsVerified {
		t.Fatalf("registered account must start unverified")
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "carol@example.com", "12345", "Carol"); err != domain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "dave@example.com", "pass123", "Dave"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "dave@example.com", "pass456", "Dave"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "erin@example.com", "s3cret", "Erin"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := svc.Login(context.Background(), "erin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.User.Name != "Erin" {
		t.Fatalf("unexpected user: %+v", session.User)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleMember {
		t.Fatalf("expected role %s, got %v", domain.RoleMember, claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected token id claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "frank@example.com", "goodpass", "Frank")
	if _, err := svc.Login(context.Background(), "frank@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "grace@example.com", "12345"); err != domain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Login_ProvisionsUnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	session, err := svc.Login(context.Background(), "founder@startup.io", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	user := session.User
	if user.Name != "founder" {
		t.Fatalf("expected display name from email local part, got %q", user.Name)
	}
	if user.IsVerified {
		t.Fatalf("plain email must provision an unverified account")
	}

	// The provisioned password is now the account password.
	if _, err := svc.Login(context.Background(), "founder@startup.io", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials on second login, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "founder@startup.io", "pass123"); err != nil {
		t.Fatalf("second login with original password failed: %v", err)
	}
}

func TestAuthService_Login_VerificationPolicy(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	session, err := svc.Login(context.Background(), "verified.founder@startup.io", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !session.User.IsVerified {
		t.Fatalf("marker email must provision a verified account")
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newStubUserRepo()
	denylist := newStubDenylist()
	svc := NewAuthService(repo, denylist, EmailMarkerPolicy{}, "secret", time.Hour)

	if err := svc.Logout(context.Background(), "", time.Now()); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for empty token id, got %v", err)
	}

	exp := time.Now().Add(time.Hour)
	if err := svc.Logout(context.Background(), "token-1", exp); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := denylist.revoked["token-1"]; !ok {
		t.Fatalf("token not revoked")
	}
}

func TestAuthService_Verify(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubDenylist(), EmailMarkerPolicy{}, "secret", time.Hour)

	session, err := svc.Register(context.Background(), "heidi@example.com", "pass123", "Heidi")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := session.User.ID

	user, err := svc.Verify(context.Background(), id)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !user.IsVerified {
		t.Fatalf("expected verified user")
	}

	// Idempotent on an already-verified user.
	user, err = svc.Verify(context.Background(), id)
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	if !user.IsVerified {
		t.Fatalf("expected user to stay verified")
	}

	if _, err := svc.Verify(context.Background(), "no-such-user"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
