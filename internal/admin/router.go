package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the admin page and JSON API behind gate. limit runs
// after gate so it sees the admin identity.
func NewRouter(h *Handler, gate func(http.Handler) http.Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Public routes
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"ai-admin"}`))
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Use(limit)
		r.Get(PagePath, h.HandlePage)
		r.Post(PagePath, h.HandleSave)
		r.Get("/v1/settings", h.HandleGetSettings)
		r.Put("/v1/settings", h.HandlePutSettings)
		r.Get("/v1/usage", h.HandleUsage)
		r.Delete("/v1/admin-tokens/{id}", h.HandleRevokeToken)
	})

	return r
}
