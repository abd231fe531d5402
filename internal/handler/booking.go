package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelease/travelease/internal/auth"
	"github.com/travelease/travelease/internal/handler/dto"
	"github.com/travelease/travelease/internal/model"
	"github.com/travelease/travelease/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	svc    *service.BookingService
	logger *slog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// Create handles POST /bookings. The buyerEmail field in the payload is
// ignored; the buyer is the authenticated subject.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), subject, service.CreateBookingInput{
		VehicleID:  req.VehicleID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("booking_created",
		"booking_id", booking.ID,
		"reference", booking.Reference,
		"buyer", booking.BuyerEmail,
	)
	writeJSON(w, http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: booking.ID})
}

// ListMine handles GET /bookings. The optional ?email= parameter must
// match the authenticated subject.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	requested := r.URL.Query().Get("email")

	bookings, err := h.svc.ListMyBookings(r.Context(), subject, requested)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// DeleteMine handles DELETE /bookings/{id}.
func (h *BookingHandler) DeleteMine(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	id := chi.URLParam(r, "id")

	result, err := h.svc.DeleteMyBooking(r.Context(), subject, id)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("booking_deleted", "booking_id", id, "deleted_count", result.DeletedCount)
	writeJSON(w, http.StatusOK, result)
}
