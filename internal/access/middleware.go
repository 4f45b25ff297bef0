package access

import (
	"log/slog"
	"net/http"

	"github.com/fnvj/console/internal/platform/httpx"
	"github.com/fnvj/console/internal/shared"
)

// Middleware gates HTTP routes on the module permissions of the current actor.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// WithActor resolves the session-bound actor and threads its id through the
// request context so downstream calls never consult hidden global state.
func (m Middleware) WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if account, ok := m.Service.Current(r.Context()); ok {
			ctx := shared.ContextWithActorID(r.Context(), account.ID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireModule rejects requests whose actor may not open the given module.
// Unauthenticated requests get 401, unauthorized ones 403.
func (m Middleware) RequireModule(key ModuleKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := m.Service.Current(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "login required")
				return
			}
			if !account.HasModule(key) {
				if m.Logger != nil {
					m.Logger.Warn("module access denied",
						slog.String("account", account.ID),
						slog.String("module", string(key)))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "module not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
