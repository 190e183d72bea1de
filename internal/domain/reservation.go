package domain

import "time"

// Reservation books a property for a guest from StartDate.
type Reservation struct {
	ID         int64     `json:"id"`
	GuestID    int64     `json:"guest_id"`
	PropertyID int64     `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
}

// GuestReservation is a reservation joined with its property and the
// property's average rating, as listed for a guest.
type GuestReservation struct {
	Reservation
	Property Property `json:"property"`
}
