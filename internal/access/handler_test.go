package access

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
	"github.com/fnvj/console/internal/shared"
)

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	store := kv.NewMemory()
	logger := testLogger()
	sessions := shared.NewSessionManager(context.Background(), store, "fnvj:session", logger)
	repo := NewRepository(context.Background(), store, "fnvj:users", logger)
	service := NewService(repo, sessions)
	handler := NewHandler(logger, service)
	mw := Middleware{Service: service, Logger: logger}

	r := chi.NewRouter()
	r.Use(mw.WithActor)
	r.Route("/auth", handler.MountAuthRoutes)
	r.Route("/access", func(r chi.Router) {
		r.Use(mw.RequireModule(ModuleAccess))
		handler.MountAccessRoutes(r)
	})
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

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"master@fnvj.com.br","password":"verde123"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &view))
	assert.Equal(t, "u-master", view["id"])
	assert.NotContains(t, res.Body.String(), "passwordHash")
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"master@fnvj.com.br","password":"errada"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLoginEndpointValidatesBody(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"nao-eh-email","password":""}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestMeFollowsSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"rafael@fnvj.com.br","password":"gestao2025"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "u-manager")

	res = doJSON(t, router, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = doJSON(t, router, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAccessRoutesRequireModule(t *testing.T) {
	router, _ := newTestRouter(t)

	// Nobody logged in.
	res := doJSON(t, router, http.MethodGet, "/access/accounts", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	// Manager lacks the access module.
	res = doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"rafael@fnvj.com.br","password":"gestao2025"}`)
	require.Equal(t, http.StatusOK, res.Code)
	res = doJSON(t, router, http.MethodGet, "/access/accounts", "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	// Master passes.
	res = doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"master@fnvj.com.br","password":"verde123"}`)
	require.Equal(t, http.StatusOK, res.Code)
	res = doJSON(t, router, http.MethodGet, "/access/accounts", "")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"master@fnvj.com.br","password":"verde123"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodPost, "/access/accounts",
		`{"name":"Novo","email":"novo@fnvj.com.br","password":"segredo","role":"sales","allowedModules":["sales","dashboard"]}`)
	require.Equal(t, http.StatusCreated, res.Code)

	res = doJSON(t, router, http.MethodPost, "/access/accounts",
		`{"name":"Novo","email":"novo@fnvj.com.br","password":"segredo","role":"sales"}`)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = doJSON(t, router, http.MethodPost, "/access/accounts",
		`{"name":"Curta","email":"curta@fnvj.com.br","password":"123","role":"sales"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestToggleEndpointUnknownAccount(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"master@fnvj.com.br","password":"verde123"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodPost, "/access/accounts/ghost/toggle", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestModulesEndpointListsCatalog(t *testing.T) {
	router, _ := newTestRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"master@fnvj.com.br","password":"verde123"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodGet, "/access/modules", "")
	require.Equal(t, http.StatusOK, res.Code)

	var modules []ModuleDefinition
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &modules))
	assert.Len(t, modules, 6)
}
