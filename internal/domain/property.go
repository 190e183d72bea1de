package domain

import "math"

// CentsPerUnit converts whole currency units to the cents stored in cost_per_night.
const CentsPerUnit = 100

// MaxPricePerNight is the largest whole-unit price that converts to cents
// without overflowing int64.
const MaxPricePerNight = math.MaxInt64 / CentsPerUnit

// DefaultLimit is the row limit applied when a caller does not pass one.
const DefaultLimit = 10

// Property is a rental listing. AverageRating is derived from property_reviews
// and is zero on records that were not read through an aggregate query.
type Property struct {
	ID                int64   `json:"id"`
	OwnerID           int64   `json:"owner_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ThumbnailPhotoURL string  `json:"thumbnail_photo_url"`
	CoverPhotoURL     string  `json:"cover_photo_url"`
	CostPerNight      int64   `json:"cost_per_night"`
	ParkingSpaces     int     `json:"parking_spaces"`
	Street            string  `json:"street"`
	City              string  `json:"city"`
	Province          string  `json:"province"`
	PostCode          string  `json:"post_code"`
	Country           string  `json:"country"`
	NumberOfBathrooms int     `json:"number_of_bathrooms"`
	NumberOfBedrooms  int     `json:"number_of_bedrooms"`
	Active            bool    `json:"active"`
	AverageRating     float64 `json:"average_rating"`
}

// NewProperty holds the attributes of a property to insert.
// A nil Active is stored as false.
type NewProperty struct {
	OwnerID           int64
	Title             string
	Description       string
	ThumbnailPhotoURL string
	CoverPhotoURL     string
	CostPerNight      int64
	ParkingSpaces     int
	Street            string
	City              string
	Province          string
	PostCode          string
	Country           string
	NumberOfBathrooms int
	NumberOfBedrooms  int
	Active            *bool
}

// IsActive resolves the optional Active flag.
func (p NewProperty) IsActive() bool {
	return p.Active != nil && *p.Active
}

// PropertyFilter selects properties for a search. Nil fields are not applied.
// Prices are whole currency units; they are compared against cost_per_night in cents.
type PropertyFilter struct {
	City                 *string
	OwnerID              *int64
	MinimumPricePerNight *int64
	MaximumPricePerNight *int64
	MinimumRating        *float64
	Limit                int
}

// EffectiveLimit returns Limit, or DefaultLimit when Limit is not positive.
func (f PropertyFilter) EffectiveLimit() int {
	return EffectiveLimit(f.Limit)
}

// MinimumCostCents returns the minimum price converted to cents.
func (f PropertyFilter) MinimumCostCents() (int64, bool) {
	if f.MinimumPricePerNight == nil {
		return 0, false
	}
	return toCents(*f.MinimumPricePerNight), true
}

// MaximumCostCents returns the maximum price converted to cents.
func (f PropertyFilter) MaximumCostCents() (int64, bool) {
	if f.MaximumPricePerNight == nil {
		return 0, false
	}
	return toCents(*f.MaximumPricePerNight), true
}

// toCents saturates at the int64 bounds instead of wrapping.
func toCents(units int64) int64 {
	switch {
	case units > MaxPricePerNight:
		return math.MaxInt64
	case units < math.MinInt64/CentsPerUnit:
		return math.MinInt64
	}
	return units * CentsPerUnit
}

// EffectiveLimit normalizes a caller-supplied row limit.
func EffectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
