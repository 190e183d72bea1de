package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/egalea504/LightBnB/internal/domain"
	"github.com/egalea504/LightBnB/internal/service"
	"github.com/egalea504/LightBnB/pkg/httputil"
	"github.com/egalea504/LightBnB/pkg/middleware"
	"github.com/egalea504/LightBnB/pkg/pagination"
	"github.com/egalea504/LightBnB/pkg/validator"
)

// PropertyHandler serves property search and listing creation.
type PropertyHandler struct {
	service *service.Service
	logger  *slog.Logger
}

// NewPropertyHandler creates a PropertyHandler.
func NewPropertyHandler(svc *service.Service, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{service: svc, logger: logger}
}

// CreatePropertyRequest is the body of POST /properties. Cost is in cents;
// the owner is the authenticated caller.
type CreatePropertyRequest struct {
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"required,http_url,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"required,http_url,max=255"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0"`
	ParkingSpaces     int    `json:"parking_spaces" validate:"gte=0"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
	Country           string `json:"country" validate:"required,max=255"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" validate:"gte=0"`
	Active            *bool  `json:"active"`
}

// List handles GET /api/v1/properties.
//
// Query parameters: city, owner_id, minimum_price_per_night and
// maximum_price_per_night (whole currency units), minimum_rating, limit.
// Empty parameters are ignored.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parsePropertyFilter(w, r.URL.Query())
	if !ok {
		return
	}

	props, err := h.service.GetAllProperties(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, props)
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	prop, err := h.service.AddProperty(r.Context(), domain.NewProperty{
		OwnerID:           middleware.UserIDFromContext(r.Context()),
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		ParkingSpaces:     req.ParkingSpaces,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
		Country:           req.Country,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		Active:            req.Active,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, prop)
}

func parsePropertyFilter(w http.ResponseWriter, q url.Values) (domain.PropertyFilter, bool) {
	f := domain.PropertyFilter{Limit: pagination.ParseLimit(q.Get("limit"))}

	if city := q.Get("city"); city != "" {
		f.City = &city
	}
	if raw := q.Get("owner_id"); raw != "" {
		id, ok := httputil.ParseID(w, "owner_id", raw)
		if !ok {
			return f, false
		}
		f.OwnerID = &id
	}

	for _, p := range []struct {
		name string
		dst  **int64
	}{
		{"minimum_price_per_night", &f.MinimumPricePerNight},
		{"maximum_price_per_night", &f.MaximumPricePerNight},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 || v > domain.MaxPricePerNight {
			writeInvalidParameter(w, p.name, raw)
			return f, false
		}
		// A zero price bound means no bound.
		if v == 0 {
			continue
		}
		*p.dst = &v
	}

	if raw := q.Get("minimum_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			writeInvalidParameter(w, "minimum_rating", raw)
			return f, false
		}
		f.MinimumRating = &v
	}

	return f, true
}

func writeInvalidParameter(w http.ResponseWriter, name, value string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{
			Code:    "INVALID_PARAMETER",
			Message: "invalid " + name + ": " + value,
		},
	})
}
