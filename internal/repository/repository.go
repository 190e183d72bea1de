package repository

import (
	"context"

	"github.com/egalea504/LightBnB/internal/domain"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	// GetByEmail returns the first user with the given email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID returns the user with the given identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Create inserts a user and returns the stored record with its generated identifier.
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)
}

// ReservationRepository defines reservation read operations.
type ReservationRepository interface {
	// ListByGuest returns up to limit reservations of a guest ordered by start date,
	// each joined with its property and average rating.
	ListByGuest(ctx context.Context, guestID int64, limit int) ([]domain.GuestReservation, error)
}

// PropertyRepository defines property persistence operations.
type PropertyRepository interface {
	// Search returns properties matching filter ordered by cost per night.
	Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)

	// Create inserts a property and returns the stored record with its generated identifier.
	Create(ctx context.Context, property domain.NewProperty) (*domain.Property, error)
}
