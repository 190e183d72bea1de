package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/egalea504/LightBnB/internal/domain"
)

// Reservations implements repository.ReservationRepository over a Store.
type Reservations struct {
	s *Store
}

// ListByGuest returns the guest's reservations of reviewed properties in
// start date order, each with the property's average rating.
func (r *Reservations) ListByGuest(ctx context.Context, guestID int64, limit int) ([]domain.GuestReservation, error) {
	if err := checkContext(ctx, "list reservations"); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ratings := r.s.ratings()

	result := make([]domain.GuestReservation, 0)
	for _, res := range r.s.reservations {
		if res.GuestID != guestID {
			continue
		}
		prop, ok := r.s.propertyByID(res.PropertyID)
		if !ok {
			continue
		}
		avg, ok := domain.AverageRating(ratings[prop.ID])
		if !ok {
			continue
		}
		prop.AverageRating = avg
		result = append(result, domain.GuestReservation{Reservation: res, Property: prop})
	}

	slices.SortStableFunc(result, func(a, b domain.GuestReservation) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ID, b.ID))
	})

	if limit = domain.EffectiveLimit(limit); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
