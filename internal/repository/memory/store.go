// Package memory is an in-process implementation of the repository
// interfaces for tests and local runs without PostgreSQL. It reproduces the
// filtering, grouping, ordering and limit rules of the postgres package.
package memory

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/egalea504/LightBnB/internal/domain"
	"github.com/egalea504/LightBnB/internal/repository"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

//go:embed fixtures/*.json
var fixtures embed.FS

var (
	_ repository.UserRepository        = (*Users)(nil)
	_ repository.PropertyRepository    = (*Properties)(nil)
	_ repository.ReservationRepository = (*Reservations)(nil)
)

// Store holds users, properties, reservations and reviews in insertion order.
// The zero value is not usable; call New or NewSeeded.
type Store struct {
	mu           sync.RWMutex
	users        []domain.User
	properties   []domain.Property
	reservations []domain.Reservation
	reviews      []domain.Review
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// NewSeeded returns a store loaded with the bundled fixtures.
func NewSeeded() (*Store, error) {
	return NewFromFS(fixtures, "fixtures")
}

// seedUser mirrors domain.User with the password exposed to JSON.
type seedUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewFromFS loads users.json, properties.json, reservations.json and
// reviews.json from dir in fsys. Missing files leave that table empty.
func NewFromFS(fsys fs.FS, dir string) (*Store, error) {
	s := New()

	var users []seedUser
	if err := readFixture(fsys, dir, "users.json", &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		s.users = append(s.users, domain.User(u))
	}

	if err := readFixture(fsys, dir, "properties.json", &s.properties); err != nil {
		return nil, err
	}
	if err := readFixture(fsys, dir, "reservations.json", &s.reservations); err != nil {
		return nil, err
	}
	if err := readFixture(fsys, dir, "reviews.json", &s.reviews); err != nil {
		return nil, err
	}

	return s, nil
}

func readFixture(fsys fs.FS, dir, name string, v any) error {
	data, err := fs.ReadFile(fsys, dir+"/"+name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

// Users returns the store's UserRepository view.
func (s *Store) Users() *Users { return &Users{s: s} }

// Properties returns the store's PropertyRepository view.
func (s *Store) Properties() *Properties { return &Properties{s: s} }

// Reservations returns the store's ReservationRepository view.
func (s *Store) Reservations() *Reservations { return &Reservations{s: s} }

// AddReservation books propertyID for guestID and returns the stored row.
func (s *Store) AddReservation(r domain.Reservation) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = int64(len(s.reservations) + 1)
	s.reservations = append(s.reservations, r)
	return r
}

// AddReview records a rating for a property.
func (s *Store) AddReview(r domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews = append(s.reviews, r)
}

// ratings groups review ratings by property. Callers hold s.mu.
func (s *Store) ratings() map[int64][]domain.Review {
	byProperty := make(map[int64][]domain.Review)
	for _, r := range s.reviews {
		byProperty[r.PropertyID] = append(byProperty[r.PropertyID], r)
	}
	return byProperty
}

func (s *Store) propertyByID(id int64) (domain.Property, bool) {
	for _, p := range s.properties {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

func (s *Store) userExists(id int64) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func checkContext(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Store(op, err)
	}
	return nil
}
