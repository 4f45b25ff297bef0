package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/analytics"
	analytichttp "github.com/fnvj/console/internal/analytics/http"
	"github.com/fnvj/console/internal/ledger"
	"github.com/fnvj/console/internal/platform/kv"
	"github.com/fnvj/console/internal/shared"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewMemory()
	ctx := context.Background()

	sessions := shared.NewSessionManager(ctx, store, "fnvj:session", logger)
	accessRepo := access.NewRepository(ctx, store, "fnvj:users", logger)
	accessSvc := access.NewService(accessRepo, sessions)

	cache := analytics.NewCache(nil, time.Minute)
	ledgerRepo := ledger.NewRepository(ctx, store, ledger.DefaultKeys(), logger)
	ledgerSvc := ledger.NewService(ledgerRepo, cache, logger)
	analyticsSvc := analytics.NewService(ledgerSvc, accessSvc, cache)

	return NewRouter(RouterParams{
		Logger:           logger,
		Config:           &Config{AppRequestTimeout: 5 * time.Second},
		Access:           access.Middleware{Service: accessSvc, Logger: logger},
		AccessHandler:    access.NewHandler(logger, accessSvc),
		LedgerHandler:    ledger.NewHandler(logger, ledgerSvc),
		AnalyticsHandler: analytichttp.NewHandler(logger, analyticsSvc),
	})
}

func TestHealthz(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"status":"ok"`)
}

func TestModuleRoutesGatedBySession(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/clients/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	// Login as the finance profile, which may open expenses but not sales.
	body := strings.NewReader(`{"email":"joao@fnvj.com.br","password":"financas!"}`)
	req = httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	req = httptest.NewRequest(http.MethodGet, "/expenses/", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)

	req = httptest.NewRequest(http.MethodGet, "/sales/", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)
}
