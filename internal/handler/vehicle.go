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

// VehicleHandler handles HTTP requests for vehicle listings.
type VehicleHandler struct {
	svc    *service.VehicleService
	logger *slog.Logger
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(svc *service.VehicleService, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{svc: svc, logger: logger}
}

// Create handles POST /vehicles. The ownerEmail field in the payload is
// ignored; ownership comes from the authenticated subject.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	var req dto.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	vehicle, err := h.svc.CreateVehicle(r.Context(), subject, service.CreateVehicleInput{
		Name:        req.Name,
		Model:       req.Model,
		Category:    req.Category,
		Location:    req.Location,
		PricePerDay: req.PricePerDay,
		SeatCount:   req.SeatCount,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Features:    req.Features,
		Available:   available,
	})
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("vehicle_created", "vehicle_id", vehicle.ID, "owner", vehicle.OwnerEmail)
	writeJSON(w, http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: vehicle.ID})
}

// List handles GET /vehicles with optional search, category, sort and
// order query parameters.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	vehicles, err := h.svc.ListVehicles(r.Context(), service.ListVehiclesInput{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
		Order:    query.Get("order"),
	})
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	if vehicles == nil {
		vehicles = []*model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Recent handles GET /recentvehicles.
func (h *VehicleHandler) Recent(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.RecentVehicles(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	if vehicles == nil {
		vehicles = []*model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Get handles GET /vehicledetails/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vehicle, err := h.svc.GetVehicle(r.Context(), id)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// ListMine handles GET /myvehicles. The optional ?email= parameter must
// match the authenticated subject.
func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	requested := r.URL.Query().Get("email")

	vehicles, err := h.svc.ListMyVehicles(r.Context(), subject, requested)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	if vehicles == nil {
		vehicles = []*model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// UpdateMine handles PATCH /myvehicles/{id}.
func (h *VehicleHandler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req dto.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	result, err := h.svc.UpdateMyVehicle(r.Context(), subject, id, service.UpdateVehicleInput{
		Name:        req.Name,
		Model:       req.Model,
		Category:    req.Category,
		Location:    req.Location,
		PricePerDay: req.PricePerDay,
		SeatCount:   req.SeatCount,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Features:    req.Features,
		Available:   req.Available,
	})
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DeleteMine handles DELETE /myvehicles/{id}.
func (h *VehicleHandler) DeleteMine(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	id := chi.URLParam(r, "id")

	result, err := h.svc.DeleteMyVehicle(r.Context(), subject, id)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("vehicle_deleted", "vehicle_id", id, "deleted_count", result.DeletedCount)
	writeJSON(w, http.StatusOK, result)
}
