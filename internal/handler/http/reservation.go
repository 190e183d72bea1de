package http

import (
	"log/slog"
	"net/http"

	"github.com/egalea504/LightBnB/internal/service"
	"github.com/egalea504/LightBnB/pkg/httputil"
	"github.com/egalea504/LightBnB/pkg/middleware"
	"github.com/egalea504/LightBnB/pkg/pagination"
)

// ReservationHandler serves the caller's reservations.
type ReservationHandler struct {
	service *service.Service
	logger  *slog.Logger
}

// NewReservationHandler creates a ReservationHandler.
func NewReservationHandler(svc *service.Service, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/reservations?limit=N.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	guestID := middleware.UserIDFromContext(r.Context())

	reservations, err := h.service.GetAllReservations(r.Context(), guestID, pagination.LimitFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, reservations)
}
