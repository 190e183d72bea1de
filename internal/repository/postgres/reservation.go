package postgres

import (
	"context"

	"github.com/egalea504/LightBnB/internal/domain"
	"github.com/egalea504/LightBnB/pkg/database"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

var selectGuestReservations = `
	SELECT reservations.id, reservations.guest_id, reservations.property_id, reservations.start_date,
		` + propertySelectList + `, ` + averageRatingColumn + `
	FROM reservations
	JOIN properties ON reservations.property_id = properties.id
	JOIN property_reviews ON property_reviews.property_id = properties.id
	WHERE reservations.guest_id = $1
	GROUP BY reservations.id, properties.id
	ORDER BY reservations.start_date
	LIMIT $2`

// ReservationRepository implements repository.ReservationRepository using PostgreSQL.
type ReservationRepository struct {
	db database.DBTX
}

// NewReservationRepository creates a new PostgreSQL-backed reservation repository.
func NewReservationRepository(db database.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ListByGuest returns up to limit reservations of guestID in start date order,
// each with its property and that property's average rating.
func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID int64, limit int) (list []domain.GuestReservation, err error) {
	ctx, end := database.TraceQuery(ctx, "GetAllReservations", selectGuestReservations)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, selectGuestReservations, guestID, domain.EffectiveLimit(limit))
	if err != nil {
		return nil, apperrors.Store("list reservations", err)
	}
	defer rows.Close()

	list = make([]domain.GuestReservation, 0)
	for rows.Next() {
		var gr domain.GuestReservation
		dest := []any{&gr.ID, &gr.GuestID, &gr.PropertyID, &gr.StartDate}
		dest = append(dest, propertyFields(&gr.Property)...)
		dest = append(dest, &gr.Property.AverageRating)

		if err = rows.Scan(dest...); err != nil {
			return nil, apperrors.Store("scan reservation", err)
		}
		list = append(list, gr)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.Store("iterate reservations", err)
	}

	return list, nil
}
