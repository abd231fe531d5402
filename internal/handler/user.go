package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/travelease/travelease/internal/auth"
	"github.com/travelease/travelease/internal/handler/dto"
	"github.com/travelease/travelease/internal/model"
	"github.com/travelease/travelease/internal/service"
)

// userExistsMessage is the informational body for duplicate creation.
const userExistsMessage = "User already exists. No need to add again."

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Create handles POST /users. Duplicate emails answer 200 with an
// informational message, never an error.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeJSON(w, http.StatusOK, dto.MessageResponse{Message: userExistsMessage})
			return
		}
		respondServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)
	writeJSON(w, http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: user.ID})
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	user, err := h.svc.GetMe(r.Context(), subject)
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	result, err := h.svc.UpdateMe(r.Context(), subject, service.UpdateUserInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
