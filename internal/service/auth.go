package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/egalea504/LightBnB/internal/domain"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

// bcryptCost is the cost factor for password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum length of a new password.
const minPasswordLength = 8

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account with a bcrypt-hashed password and signs the
// new user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, *Session, error) {
	switch {
	case in.Name == "":
		return nil, nil, apperrors.InvalidInput("name is required")
	case in.Email == "":
		return nil, nil, apperrors.InvalidInput("email is required")
	case len(in.Password) < minPasswordLength:
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, nil, apperrors.InvalidInput("password is too long")
		}
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.AddUser(ctx, domain.NewUser{Name: in.Name, Email: in.Email, Password: string(hash)})
	if err != nil {
		return nil, nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.events.PublishUserRegistered(ctx, user); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.log(ctx).InfoContext(ctx, "user registered", slog.Int64("user_id", user.ID))
	return user, session, nil
}

// Login checks the password of the account with email. An unknown email and
// a wrong password both give ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, *Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logFailure(ctx, "login", err, slog.String("email", email))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperrors.Unauthorized("invalid email or password")
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}

	s.log(ctx).InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return user, session, nil
}

// Logout revokes the access token tokenID, which expires at expiresAt.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		s.logFailure(ctx, "logout", err, slog.String("token_id", tokenID))
		return err
	}
	s.log(ctx).InfoContext(ctx, "user logged out", slog.String("token_id", tokenID))
	return nil
}

func (s *Service) issue(user *domain.User) (*Session, error) {
	token, claims, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
