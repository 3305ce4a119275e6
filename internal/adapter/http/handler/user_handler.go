package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// UserService is the slice of the user use case the user handler needs.
type UserService interface {
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
}

// UserHandler handles user signup.
type UserHandler struct {
	service UserService
	metrics *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{
		service: service,
		metrics: m,
	}
}

// Create registers a new user with an empty wallet.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create user", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.UsersCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}
