// Package http exposes session lifecycle endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/construinmuniza/cotizador/internal/platform/httpx"
	"github.com/construinmuniza/cotizador/internal/session"
)

// Handler wires session lifecycle endpoints.
type Handler struct {
	logger  *slog.Logger
	manager *session.Manager
}

// NewHandler constructs the session handler.
func NewHandler(logger *slog.Logger, manager *session.Manager) *Handler {
	return &Handler{logger: logger, manager: manager}
}

// MountRoutes registers session routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sessions", h.handleOpen)
	r.Get("/sessions/{sessionID}/history", h.handleHistory)
	r.Delete("/sessions/{sessionID}", h.handleClose)
}

type sessionResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.Open()
	h.logger.Info("session opened", slog.String("session", sess.ID.String()))
	httpx.JSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"history": sess.History()})
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Session ID", err.Error())
		return
	}
	h.manager.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Session ID", err.Error())
		return nil, false
	}
	sess, err := h.manager.Get(id)
	if err != nil {
		httpx.RespondError(w, err)
		return nil, false
	}
	return sess, true
}
