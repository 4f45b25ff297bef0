package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnvj/console/internal/platform/kv"
)

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	store := kv.NewMemory()
	repo := NewRepository(context.Background(), store, DefaultKeys(), testLogger())
	service := NewService(repo, nil, testLogger())
	handler := NewHandler(testLogger(), service)

	r := chi.NewRouter()
	r.Route("/clients", handler.MountClientRoutes)
	r.Route("/sales", handler.MountSaleRoutes)
	r.Route("/expenses", handler.MountExpenseRoutes)
	return r, service
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestCreateClientReturns201(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/clients/",
		`{"name":"Cliente Novo","email":"novo@email.com","birthDate":"1991-04-02"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var client Client
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &client))
	assert.NotEmpty(t, client.ID)
	require.NotNil(t, client.BirthDate)
	assert.Equal(t, 1991, client.BirthDate.Year())
}

func TestUpdateClientReturns200(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/clients/", `{"id":"c-1","name":"Renomeado"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var client Client
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &client))
	assert.Equal(t, "c-1", client.ID)
	assert.Equal(t, "Renomeado", client.Name)
}

func TestCreateClientRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/clients/", `{"email":"sem-nome@email.com"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateSaleIgnoresCallerTotals(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/sales/",
		`{"collaboratorId":"u-sales-1","clientId":"c-1","productId":"p-1","quantity":2,"discountPercentage":10,"discountValue":0,"paymentMethod":"Pix","date":"2025-02-01","subtotal":1,"total":1}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var sale Sale
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &sale))
	assert.InDelta(t, 2580.0, sale.Subtotal, 1e-9)
	assert.InDelta(t, 2322.0, sale.Total, 1e-9)
}

func TestCreateSaleRejectsBadQuantityAndDate(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/sales/",
		`{"collaboratorId":"u-1","clientId":"c-1","productId":"p-1","quantity":0,"paymentMethod":"Pix","date":"2025-02-01"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = doJSON(t, router, http.MethodPost, "/sales/",
		`{"collaboratorId":"u-1","clientId":"c-1","productId":"p-1","quantity":1,"paymentMethod":"Pix","date":"02/01/2025"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDeleteClientCascades(t *testing.T) {
	router, svc := newTestRouter(t)

	res := doJSON(t, router, http.MethodDelete, "/clients/c-1", "")
	require.Equal(t, http.StatusNoContent, res.Code)

	_, ok := svc.ClientByID("c-1")
	assert.False(t, ok)
	for _, sale := range svc.Sales() {
		assert.NotEqual(t, "c-1", sale.ClientID)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodGet, "/sales/products", "")
	require.Equal(t, http.StatusOK, res.Code)
	var products []Product
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &products))
	assert.Len(t, products, 4)

	res = doJSON(t, router, http.MethodGet, "/sales/payment-methods", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Pix")

	res = doJSON(t, router, http.MethodGet, "/expenses/classifications", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Marketing")
}

func TestCreateExpense(t *testing.T) {
	router, svc := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/expenses/",
		`{"date":"2025-01-15","classification":"Marketing","description":"Anúncios","value":750}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var expense Expense
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &expense))
	assert.NotEmpty(t, expense.ID)
	assert.False(t, expense.CreatedAt.IsZero())

	assert.Len(t, svc.Expenses(), len(DefaultExpenses())+1)
}
