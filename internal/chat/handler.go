package chat

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/construinmuniza/cotizador/internal/platform/httpx"
	"github.com/construinmuniza/cotizador/internal/session"
)

// Handler wires the conversational endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	sessions  *session.Manager
	validator *validator.Validate
}

// NewHandler constructs the chat handler.
func NewHandler(logger *slog.Logger, service *Service, sessions *session.Manager) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		sessions:  sessions,
		validator: validator.New(),
	}
}

// MountRoutes registers chat routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sessions/{sessionID}/chat", h.handleTurn)
}

type turnRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Session ID", err.Error())
		return
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var req turnRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	result, err := h.service.Turn(r.Context(), sess, req.Prompt)
	if err != nil {
		h.logger.Error("chat turn", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Agent Unavailable", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
