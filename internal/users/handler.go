package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mkravets/userhub/internal/domain"
	"github.com/mkravets/userhub/internal/identity"
	"github.com/mkravets/userhub/internal/pkg/httputil"
	"github.com/mkravets/userhub/internal/roles"
)

// Handler handles HTTP requests for the users module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new users handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers routes available to any authenticated caller.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
	})
}

// RegisterAdminRoutes registers routes restricted to administrators.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/users", h.Create)
	r.Delete("/users/{id}", h.Delete)
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	RoleName string `json:"role_name" validate:"required"`
}

// Create handles POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, err := h.service.Create(r.Context(), CreateInput(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, user)
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, list)
}

// Get handles GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, user)
}

// UpdateUserRequest represents the request body for updating a user.
// Password and role_name are optional.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	RoleName string `json:"role_name"`
}

// Update handles PUT /users/{id}. Any authenticated caller may change
// name, email, and password; reassigning the role requires ADMIN.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if req.RoleName != "" && httputil.GetRole(r.Context()) != domain.RoleAdmin {
		httputil.Error(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	user, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrUserNotFound, Status: http.StatusNotFound},
		{Error: ErrEmailExists, Status: http.StatusConflict},
		{Error: roles.ErrRoleNotFound, Status: http.StatusNotFound},
		{Error: identity.ErrPasswordTooShort, Status: http.StatusBadRequest},
	})
}
