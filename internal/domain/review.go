package domain

// Review is a guest's rating of a property. Ratings feed AverageRating.
type Review struct {
	PropertyID int64 `json:"property_id"`
	Rating     int   `json:"rating"`
}

// AverageRating returns the mean rating of reviews, or false when there are none.
func AverageRating(reviews []Review) (float64, bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), true
}
