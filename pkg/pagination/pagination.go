package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is used when the limit parameter is absent, malformed or
	// not positive.
	DefaultLimit = 10
	// MaxLimit caps the limit a client may request.
	MaxLimit = 100
)

// LimitFromRequest reads the "limit" query parameter.
func LimitFromRequest(r *http.Request) int {
	return ParseLimit(r.URL.Query().Get("limit"))
}

// ParseLimit converts a raw limit into the number of rows to return.
func ParseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return DefaultLimit
	}
	return min(v, MaxLimit)
}
