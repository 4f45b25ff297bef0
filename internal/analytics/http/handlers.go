// Package analytichttp exposes the dashboard and report views over HTTP.
package analytichttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/fnvj/console/internal/analytics"
	"github.com/fnvj/console/internal/analytics/export"
	"github.com/fnvj/console/internal/platform/httpx"
)

// Handler serves analytics endpoints.
type Handler struct {
	logger  *slog.Logger
	service *analytics.Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *analytics.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountDashboardRoutes registers the dashboard endpoints.
func (h *Handler) MountDashboardRoutes(r chi.Router) {
	r.Get("/", h.handleSummary)
	r.Get("/export", h.handleExport)
}

// MountReportRoutes registers the supplemental report endpoints.
func (h *Handler) MountReportRoutes(r chi.Router) {
	r.Get("/", h.handleReport)
}

func filterFromQuery(r *http.Request) analytics.Filter {
	q := r.URL.Query()
	return analytics.Filter{
		Year:           q.Get("year"),
		CollaboratorID: q.Get("collaboratorId"),
		ClientID:       q.Get("clientId"),
		ProductID:      q.Get("productId"),
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), filterFromQuery(r))
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

type reportPayload struct {
	Report analytics.Report  `json:"report"`
	Totals analytics.Summary `json:"totals"`
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	var payload reportPayload

	// The report page shows the unfiltered rankings next to the all-time
	// totals; fetch both concurrently.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		report, err := h.service.Report(ctx)
		if err != nil {
			return err
		}
		payload.Report = report
		return nil
	})
	g.Go(func() error {
		totals, err := h.service.Summary(ctx, analytics.Filter{Year: analytics.FilterAll})
		if err != nil {
			return err
		}
		payload.Totals = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("report view", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, payload)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), filterFromQuery(r))
	if err != nil {
		h.logger.Error("dashboard export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.csv"`)
	if err := export.WriteSummaryCSV(w, summary); err != nil {
		h.logger.Error("write dashboard csv", slog.Any("error", err))
	}
}
