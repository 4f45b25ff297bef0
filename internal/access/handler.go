package access

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fnvj/console/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication and access management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountAuthRoutes registers login/logout routes on the provided router.
func (h *Handler) MountAuthRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

// MountAccessRoutes registers account management routes. The caller guards
// them with the access module permission.
func (h *Handler) MountAccessRoutes(r chi.Router) {
	r.Get("/accounts", h.handleListAccounts)
	r.Post("/accounts", h.handleRegister)
	r.Put("/accounts/{id}", h.handleUpdate)
	r.Post("/accounts/{id}/toggle", h.handleToggle)
	r.Get("/modules", h.handleModules)
}

// accountView is the wire representation of an account. The credential hash
// never leaves the service boundary.
type accountView struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           Role        `json:"role"`
	Active         bool        `json:"active"`
	AllowedModules []ModuleKey `json:"allowedModules"`
	LastLogin      *time.Time  `json:"lastLogin,omitempty"`
}

func toView(a Account) accountView {
	return accountView{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Role:           a.Role,
		Active:         a.Active,
		AllowedModules: a.AllowedModules,
		LastLogin:      a.LastLogin,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toView(account))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	account, ok := h.service.Current(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "login required")
		return
	}
	httpx.JSON(w, http.StatusOK, toView(account))
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.service.ListAccounts()
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toView(a))
	}
	httpx.JSON(w, http.StatusOK, views)
}

type registerRequest struct {
	Name           string      `json:"name" validate:"required"`
	Email          string      `json:"email" validate:"required,email"`
	Password       string      `json:"password" validate:"required,min=6"`
	Role           Role        `json:"role" validate:"required,oneof=master manager sales finance analyst"`
	AllowedModules []ModuleKey `json:"allowedModules" validate:"dive,oneof=dashboard clients sales expenses reports access"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.Register(r.Context(), RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		AllowedModules: req.AllowedModules,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toView(account))
}

type updateRequest struct {
	Name           *string     `json:"name,omitempty"`
	Role           *Role       `json:"role,omitempty" validate:"omitempty,oneof=master manager sales finance analyst"`
	Password       *string     `json:"password,omitempty" validate:"omitempty,min=6"`
	AllowedModules []ModuleKey `json:"allowedModules,omitempty" validate:"dive,oneof=dashboard clients sales expenses reports access"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		Name:           req.Name,
		Role:           req.Role,
		Password:       req.Password,
		AllowedModules: req.AllowedModules,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toView(account))
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toView(account))
}

func (h *Handler) handleModules(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Modules())
}
