package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnmchuo/ai-admin/internal/auth"
	"github.com/vnmchuo/ai-admin/internal/settings"
	"github.com/vnmchuo/ai-admin/internal/usage"
)

const PagePath = "/admin/ai-settings"

type SettingsService interface {
	Get(ctx context.Context) (settings.Settings, error)
	Update(ctx context.Context, in settings.Settings) (settings.Settings, error)
}

// TokenRevoker deactivates an admin token. Returns auth.ErrTokenNotFound
// for unknown ids.
type TokenRevoker interface {
	Revoke(ctx context.Context, id string) error
}

type Handler struct {
	settings SettingsService
	usage    usage.Store
	tokens   TokenRevoker
	currency string
	tracer   trace.Tracer
}

func NewHandler(settings SettingsService, usageStore usage.Store, tokens TokenRevoker, currency string, tracer trace.Tracer) *Handler {
	return &Handler{
		settings: settings,
		usage:    usageStore,
		tokens:   tokens,
		currency: currency,
		tracer:   tracer,
	}
}

// HandlePage renders the settings form and usage table, or streams the
// usage CSV when export=csv is requested.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "admin.page")
	defer span.End()

	q := r.URL.Query()
	rng := usage.ParseRange(q.Get("from"), q.Get("to"))

	if q.Get("export") == "csv" {
		span.SetAttributes(attribute.Bool("admin.export", true))
		h.exportCSV(ctx, w, rng)
		return
	}

	h.render(ctx, w, http.StatusOK, rng, nil, q.Get("updated") == "1", "")
}

func (h *Handler) exportCSV(ctx context.Context, w http.ResponseWriter, rng usage.Range) {
	rows, err := h.usage.QueryByModel(ctx, rng)
	if err != nil {
		log.Printf("admin: usage export failed (request %s): %v", auth.GetRequestID(ctx), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+usage.CSVFilename)
	w.WriteHeader(http.StatusOK)
	if err := usage.WriteCSV(w, rows); err != nil {
		log.Printf("admin: writing csv: %v", err)
	}
}

// HandleSave replaces the stored settings with the submitted form.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "admin.save")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	in := settings.FromForm(r.PostForm)
	if _, err := h.settings.Update(ctx, in); err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			h.render(ctx, w, http.StatusBadRequest, usage.Range{}, &in, false, err.Error())
			return
		}
		log.Printf("admin: saving settings failed (request %s): %v", auth.GetRequestID(ctx), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	log.Printf("admin: settings updated by %s (%s)", auth.GetAdminName(ctx), auth.GetAdminID(ctx))
	http.Redirect(w, r, PagePath+"?updated=1", http.StatusSeeOther)
}

// render draws the page. When form is non-nil it is shown instead of the
// stored record so a rejected submission can be corrected.
func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, rng usage.Range, form *settings.Settings, updated bool, errMsg string) {
	var current settings.Settings
	if form != nil {
		current = *form
	} else {
		stored, err := h.settings.Get(ctx)
		if err != nil {
			log.Printf("admin: loading settings failed (request %s): %v", auth.GetRequestID(ctx), err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		current = stored
	}

	report, err := usage.BuildReport(ctx, h.usage, rng)
	if err != nil {
		log.Printf("admin: loading usage failed (request %s): %v", auth.GetRequestID(ctx), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := newPageView(current, report, h.currency)
	view.Updated = updated
	view.Error = errMsg

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		log.Printf("admin: rendering page: %v", err)
	}
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		internalError(w, r, "loading settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandlePutSettings is the JSON twin of HandleSave. Omitted fields are
// stored as empty strings.
func (h *Handler) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	saved, err := h.settings.Update(r.Context(), in)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		internalError(w, r, "saving settings", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng := usage.ParseRange(q.Get("from"), q.Get("to"))

	report, err := usage.BuildReport(r.Context(), h.usage, rng)
	if err != nil {
		internalError(w, r, "loading usage", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleRevokeToken deactivates the admin token with the given id.
func (h *Handler) HandleRevokeToken(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.tokens.Revoke(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "token not found"})
			return
		}
		internalError(w, r, "revoking token", err)
		return
	}
	log.Printf("admin: token %s revoked by %s", id, auth.GetAdminID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// internalError logs err against the request id and answers with a
// generic body.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Printf("admin: %s failed (request %s): %v", op, auth.GetRequestID(r.Context()), err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
