package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/fnvj/console/internal/access"
	analytichttp "github.com/fnvj/console/internal/analytics/http"
	"github.com/fnvj/console/internal/ledger"
	"github.com/fnvj/console/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Access           access.Middleware
	AccessHandler    *access.Handler
	LedgerHandler    *ledger.Handler
	AnalyticsHandler *analytichttp.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with console defaults. Every module
// route sits behind the permission gate for its module key.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
		Access: params.Access,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		// Tighter limit on the credential endpoint.
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AccessHandler.MountAuthRoutes(r)
	})

	r.Route("/clients", func(r chi.Router) {
		r.Use(params.Access.RequireModule(access.ModuleClients))
		params.LedgerHandler.MountClientRoutes(r)
	})
	r.Route("/sales", func(r chi.Router) {
		r.Use(params.Access.RequireModule(access.ModuleSales))
		params.LedgerHandler.MountSaleRoutes(r)
	})
	r.Route("/expenses", func(r chi.Router) {
		r.Use(params.Access.RequireModule(access.ModuleExpenses))
		params.LedgerHandler.MountExpenseRoutes(r)
	})
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(params.Access.RequireModule(access.ModuleDashboard))
		params.AnalyticsHandler.MountDashboardRoutes(r)
	})
	r.Route("/reports", func(r chi.Router) {
		r.Use(params.Access.RequireModule(access.ModuleReports))
		params.AnalyticsHandler.MountReportRoutes(r)
	})
	r.Route("/access", func(r chi.Router) {
		r.Use(params.Access.RequireModule(access.ModuleAccess))
		params.AccessHandler.MountAccessRoutes(r)
	})
	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	return r
}
