package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/supabase"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdatePasswordHash persists an upgraded credential; the legacy
	// plaintext column is left untouched.
	UpdatePasswordHash(ctx context.Context, email, hash string) error
}

type userRepository struct {
	client *supabase.Client
}

func NewUserRepository(client *supabase.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.client.Insert(ctx, "users", user, nil)
	if err != nil {
		if supabase.IsDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	query := url.Values{
		"email":  {"eq." + email},
		"select": {"email,name,password_plain,password_hashed,admin"},
	}

	var rows []model.User
	err := r.client.Select(ctx, "users", query.Encode(), &rows)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	return &rows[0], nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	query := url.Values{"email": {"eq." + email}}
	payload := map[string]string{"password_hashed": hash}

	err := r.client.Update(ctx, "users", query.Encode(), payload)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}
