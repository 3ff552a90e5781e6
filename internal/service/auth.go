package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/repository"
	"github.com/tenantlens/tenantlens/internal/validation"
)

// AuthResult is what a successful signup or login hands back to the client.
type AuthResult struct {
	Token string
	Email string
	Name  string
	Admin int
}

type AuthService struct {
	users         repository.UserRepository
	hasher        *PasswordHasher
	verifications *VerificationService
}

func NewAuthService(users repository.UserRepository, hasher *PasswordHasher, verifications *VerificationService) *AuthService {
	return &AuthService{
		users:         users,
		hasher:        hasher,
		verifications: verifications,
	}
}

// RequestVerification issues a code for a new address. Addresses that already
// have an account are rejected before any email goes out.
func (s *AuthService) RequestVerification(ctx context.Context, email string) error {
	email = validation.NormalizeEmail(email)
	if !validation.ValidEmail(email) {
		return ErrInvalidEmail
	}

	_, err := s.users.ByEmail(ctx, email)
	if err == nil {
		return ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("check existing user: %w", err)
	}

	return s.verifications.Issue(ctx, email)
}

// VerifyCode marks the pending verification for email as confirmed.
func (s *AuthService) VerifyCode(email, code string) error {
	return s.verifications.Confirm(validation.NormalizeEmail(email), code)
}

// Signup creates the account. The email must carry a confirmed verification,
// which is consumed here so it cannot back a second signup.
func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)
	if !validation.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if err := s.verifications.Consume(email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The plaintext column is a demo-era holdover kept for store parity;
	// the hash is authoritative from the first login.
	user := &model.User{
		Email:          email,
		Name:           name,
		PasswordPlain:  password,
		PasswordHashed: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return &AuthResult{
		Token: model.DemoToken{Email: email}.String(),
		Email: email,
		Name:  name,
	}, nil
}

// Login verifies credentials against the hashed password when one exists, or
// the legacy plaintext column otherwise. A successful plaintext login
// upgrades the account to a hash in the background of the request.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if s.hasher.LooksLikeEncoded(user.PasswordHashed) {
		if !s.hasher.Verify(password, user.PasswordHashed) {
			return nil, ErrInvalidCredentials
		}
	} else {
		if user.PasswordPlain == "" ||
			subtle.ConstantTimeCompare([]byte(password), []byte(user.PasswordPlain)) != 1 {
			return nil, ErrInvalidCredentials
		}
		s.upgradePassword(ctx, user.Email, password)
	}

	return &AuthResult{
		Token: model.DemoToken{Email: user.Email}.String(),
		Email: user.Email,
		Name:  user.Name,
		Admin: user.Admin,
	}, nil
}

// upgradePassword is best-effort: a failed upgrade leaves the legacy
// credential in place and the login still succeeds.
func (s *AuthService) upgradePassword(ctx context.Context, email, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		slog.WarnContext(ctx, "password upgrade failed", "email", email, "error", err)
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, email, hash); err != nil {
		slog.WarnContext(ctx, "password upgrade failed", "email", email, "error", err)
	}
}
