package roles

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mkravets/userhub/internal/pkg/httputil"
)

// Handler handles HTTP requests for the roles module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new roles handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers routes available to any authenticated caller.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/roles", h.List)
}

// RegisterAdminRoutes registers routes restricted to administrators.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/roles", h.Create)
}

// CreateRoleRequest represents the request body for creating a role.
type CreateRoleRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// Create handles POST /roles.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	role, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, role)
}

// List handles GET /roles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, list)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrRoleNotFound, Status: http.StatusNotFound},
		{Error: ErrRoleExists, Status: http.StatusConflict},
	})
}
