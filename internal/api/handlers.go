// Package api exposes the HTTP handlers and router for the tracker API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jeanpruski/natation-tracker-api/internal/auth"
	"github.com/jeanpruski/natation-tracker-api/internal/domain"
	"github.com/jeanpruski/natation-tracker-api/internal/middleware"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	gate    *auth.Gate
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, gate *auth.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// Router assembles the full routing tree. The API is mounted at both the
// root and under /api, so /sessions and /api/sessions are interchangeable.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	// Metrics must sit on the chi router itself so the matched route
	// pattern is available for the label.
	r.Use(middleware.Metrics)
	r.Mount("/api", h.apiRouter())
	r.Mount("/", h.apiRouter())
	return r
}

func (h *Handler) apiRouter() chi.Router {
	r := chi.NewRouter()

	// Health stays outside the navigation blocker.
	r.Get("/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BlockNavigation)

		r.With(h.gate.Wrap).Get("/auth/check", h.authCheck)

		r.Get("/sessions", h.listSessions)
		r.Get("/sessions/{id}", h.getSession)

		r.Group(func(r chi.Router) {
			r.Use(h.gate.Wrap)
			r.Post("/sessions", h.createSession)
			r.Put("/sessions/{id}", h.updateSession)
			r.Delete("/sessions/{id}", h.deleteSession)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "database unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": true})
}

// authCheck lets a caller verify its token; the gate already enforced it.
func (h *Handler) authCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, toView(s))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(*session))
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := domain.CreateInput{ID: req.ID, Date: req.Date, Type: req.Type}
	if req.Distance != nil {
		distance := float64(*req.Distance)
		input.Distance = &distance
	}

	session, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toView(*session))
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := domain.UpdateInput{Date: req.Date, Type: req.Type}
	if req.Distance != nil {
		distance := float64(*req.Distance)
		input.Distance = &distance
	}

	session, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(*session))
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Distance accepts either a JSON number or a numeric string on input and
// always marshals back out as a number.
type Distance float64

// UnmarshalJSON implements the lenient decoding.
func (d *Distance) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("distance must be numeric")
	}
	*d = Distance(value)
	return nil
}

type createSessionRequest struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"`
	Distance *Distance `json:"distance"`
	Type     string    `json:"type"`
}

type updateSessionRequest struct {
	Date     *string   `json:"date"`
	Distance *Distance `json:"distance"`
	Type     *string   `json:"type"`
}

// SessionView is the wire representation of a session.
type SessionView struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Distance float64 `json:"distance"`
	Type     string  `json:"type"`
}

func toView(s domain.Session) SessionView {
	return SessionView{ID: s.ID, Date: s.Date, Distance: s.Distance, Type: s.Type}
}

// respondError maps domain errors onto the wire taxonomy. Unexpected errors
// are logged with their cause and answered with a generic body.
func respondError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Rule)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
