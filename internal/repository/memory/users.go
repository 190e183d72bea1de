package memory

import (
	"context"

	"github.com/egalea504/LightBnB/internal/domain"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

// Users implements repository.UserRepository over a Store.
type Users struct {
	s *Store
}

// GetByEmail returns the first user whose email matches exactly.
func (u *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := checkContext(ctx, "get user by email"); err != nil {
		return nil, err
	}

	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("user", email)
}

// GetByID returns the user with the given identifier.
func (u *Users) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := checkContext(ctx, "get user by id"); err != nil {
		return nil, err
	}

	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("user", id)
}

// Create appends a user with the next sequential identifier. A duplicate
// email is rejected the way the users_email_key constraint rejects it.
func (u *Users) Create(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	if err := checkContext(ctx, "insert user"); err != nil {
		return nil, err
	}

	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Email == nu.Email {
			return nil, apperrors.AlreadyExists("user", "email", nu.Email)
		}
	}

	user := domain.User{
		ID:       int64(len(u.s.users) + 1),
		Name:     nu.Name,
		Email:    nu.Email,
		Password: nu.Password,
	}
	u.s.users = append(u.s.users, user)
	return &user, nil
}
