package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mkravets/userhub/internal/domain"
	"github.com/mkravets/userhub/internal/pkg/httputil"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	service   *Service
	validator *validator.Validate
	limiter   *LoginLimiter
}

// NewHandler creates a new identity handler. limiter may be nil to
// disable login throttling.
func NewHandler(service *Service, limiter *LoginLimiter) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		limiter:   limiter,
	}
}

// RegisterRoutes registers public identity routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}

// RegisterRequest represents registration request body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	RoleName string `json:"role_name" validate:"required"`
}

// AuthResponse carries the issued token and the account it asserts.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, token, err := h.service.Register(r.Context(), RegisterInput(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// LoginRequest represents login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if h.limiter != nil && !h.limiter.Allow(req.Email) {
		httputil.Error(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me handles GET /me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject := httputil.GetSubject(r.Context())
	if subject == "" {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.GetUserByEmail(r.Context(), subject)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, user)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httputil.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailExists):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrPasswordTooShort):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrRoleNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	default:
		httputil.HandleError(r.Context(), w, err, nil)
	}
}
