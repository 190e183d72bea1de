package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/egalea504/LightBnB/internal/auth"
	"github.com/egalea504/LightBnB/internal/domain"
	"github.com/egalea504/LightBnB/internal/repository"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
	"github.com/egalea504/LightBnB/pkg/logger"
)

// EventPublisher publishes LightBnB domain events.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishPropertyCreated(ctx context.Context, prop *domain.Property) error
}

// TokenRevoker revokes access tokens before they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Session is an issued access token.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service exposes the LightBnB operations on top of the repositories.
// Failures are logged with the request-scoped logger and returned to the
// caller unchanged, so callers can branch on apperrors sentinels.
type Service struct {
	users        repository.UserRepository
	reservations repository.ReservationRepository
	properties   repository.PropertyRepository

	tokens   *auth.JWTManager
	revoker  TokenRevoker
	events   EventPublisher
	logger   *slog.Logger
	hashCost int
}

// New creates a Service.
func New(
	users repository.UserRepository,
	reservations repository.ReservationRepository,
	properties repository.PropertyRepository,
	tokens *auth.JWTManager,
	revoker TokenRevoker,
	events EventPublisher,
	log *slog.Logger,
) *Service {
	return &Service{
		users:        users,
		reservations: reservations,
		properties:   properties,
		tokens:       tokens,
		revoker:      revoker,
		events:       events,
		logger:       log,
		hashCost:     bcryptCost,
	}
}

// GetUserWithEmail returns the user with the given email.
func (s *Service) GetUserWithEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logFailure(ctx, "get user with email", err, slog.String("email", email))
		return nil, err
	}
	return u, nil
}

// GetUserWithID returns the user with the given identifier.
func (s *Service) GetUserWithID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "get user with id", err, slog.Int64("user_id", id))
		return nil, err
	}
	return u, nil
}

// AddUser stores a user as given. The password is stored verbatim; use
// Register to hash it.
func (s *Service) AddUser(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	u, err := s.users.Create(ctx, nu)
	if err != nil {
		s.logFailure(ctx, "add user", err, slog.String("email", nu.Email))
		return nil, err
	}
	return u, nil
}

// GetAllReservations lists up to limit reservations of a guest, earliest first.
func (s *Service) GetAllReservations(ctx context.Context, guestID int64, limit int) ([]domain.GuestReservation, error) {
	list, err := s.reservations.ListByGuest(ctx, guestID, limit)
	if err != nil {
		s.logFailure(ctx, "get all reservations", err, slog.Int64("guest_id", guestID))
		return nil, err
	}
	return list, nil
}

// GetAllProperties searches properties, cheapest first.
func (s *Service) GetAllProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	props, err := s.properties.Search(ctx, filter)
	if err != nil {
		s.logFailure(ctx, "get all properties", err)
		return nil, err
	}
	return props, nil
}

// AddProperty stores a property and announces it.
func (s *Service) AddProperty(ctx context.Context, np domain.NewProperty) (*domain.Property, error) {
	p, err := s.properties.Create(ctx, np)
	if err != nil {
		s.logFailure(ctx, "add property", err, slog.Int64("owner_id", np.OwnerID))
		return nil, err
	}

	if err := s.events.PublishPropertyCreated(ctx, p); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish property.created event",
			slog.Int64("property_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.log(ctx).InfoContext(ctx, "property added",
		slog.Int64("property_id", p.ID),
		slog.Int64("owner_id", p.OwnerID),
	)
	return p, nil
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, s.logger)
}

// logFailure logs a failed operation. Store failures are errors; lookups that
// found nothing or rejected input are expected and logged at debug level.
func (s *Service) logFailure(ctx context.Context, op string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("operation", op), slog.String("error", err.Error()))

	l := s.log(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrUnauthorized):
		l.DebugContext(ctx, op+" failed", attrs...)
	default:
		l.ErrorContext(ctx, op+" failed", attrs...)
	}
}
