package ledger

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fnvj/console/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the ledger collections.
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

// MountClientRoutes registers client endpoints.
func (h *Handler) MountClientRoutes(r chi.Router) {
	r.Get("/", h.handleListClients)
	r.Post("/", h.handleUpsertClient)
	r.Delete("/{id}", h.handleRemoveClient)
}

// MountSaleRoutes registers sale endpoints plus the read-only catalog.
func (h *Handler) MountSaleRoutes(r chi.Router) {
	r.Get("/", h.handleListSales)
	r.Post("/", h.handleUpsertSale)
	r.Delete("/{id}", h.handleRemoveSale)
	r.Get("/products", h.handleListProducts)
	r.Get("/payment-methods", h.handleListPaymentMethods)
}

// MountExpenseRoutes registers expense endpoints.
func (h *Handler) MountExpenseRoutes(r chi.Router) {
	r.Get("/", h.handleListExpenses)
	r.Post("/", h.handleUpsertExpense)
	r.Delete("/{id}", h.handleRemoveExpense)
	r.Get("/classifications", h.handleListClassifications)
}

type clientRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Document    string `json:"document"`
	Origin      string `json:"origin"`
	BirthDate   string `json:"birthDate,omitempty"`
	AccountLink string `json:"accountLink,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Clients())
}

func (h *Handler) handleUpsertClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := parseDate(req.BirthDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		birthDate = &parsed
	}
	client := h.service.UpsertClient(r.Context(), ClientInput{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Document:    req.Document,
		Origin:      req.Origin,
		BirthDate:   birthDate,
		AccountLink: req.AccountLink,
		Notes:       req.Notes,
	})
	httpx.JSON(w, statusForUpsert(req.ID), client)
}

func (h *Handler) handleRemoveClient(w http.ResponseWriter, r *http.Request) {
	h.service.RemoveClient(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type saleRequest struct {
	ID                 string  `json:"id,omitempty"`
	CollaboratorID     string  `json:"collaboratorId" validate:"required"`
	ClientID           string  `json:"clientId" validate:"required"`
	ProductID          string  `json:"productId" validate:"required"`
	Quantity           int     `json:"quantity" validate:"required,gt=0"`
	DiscountPercentage float64 `json:"discountPercentage" validate:"gte=0"`
	DiscountValue      float64 `json:"discountValue" validate:"gte=0"`
	PaymentMethod      string  `json:"paymentMethod" validate:"required"`
	Observation        string  `json:"observation,omitempty"`
	Date               string  `json:"date" validate:"required"`
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Sales())
}

func (h *Handler) handleUpsertSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	day, err := parseDate(req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sale := h.service.UpsertSale(r.Context(), SaleInput{
		ID:                 req.ID,
		CollaboratorID:     req.CollaboratorID,
		ClientID:           req.ClientID,
		ProductID:          req.ProductID,
		Quantity:           req.Quantity,
		DiscountPercentage: req.DiscountPercentage,
		DiscountValue:      req.DiscountValue,
		PaymentMethod:      req.PaymentMethod,
		Observation:        req.Observation,
		Date:               day,
	})
	httpx.JSON(w, statusForUpsert(req.ID), sale)
}

func (h *Handler) handleRemoveSale(w http.ResponseWriter, r *http.Request) {
	h.service.RemoveSale(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type expenseRequest struct {
	ID             string  `json:"id,omitempty"`
	Date           string  `json:"date" validate:"required"`
	Classification string  `json:"classification" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	Value          float64 `json:"value" validate:"required,gt=0"`
}

func (h *Handler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Expenses())
}

func (h *Handler) handleUpsertExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	day, err := parseDate(req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	expense := h.service.UpsertExpense(r.Context(), ExpenseInput{
		ID:             req.ID,
		Date:           day,
		Classification: req.Classification,
		Description:    req.Description,
		Value:          req.Value,
	})
	httpx.JSON(w, statusForUpsert(req.ID), expense)
}

func (h *Handler) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	h.service.RemoveExpense(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Products())
}

func (h *Handler) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, PaymentMethods)
}

func (h *Handler) handleListClassifications(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, ExpenseClassifications)
}

func statusForUpsert(id string) int {
	if id == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
