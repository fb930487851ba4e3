// Package http exposes catalog upload, search and stats endpoints.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/construinmuniza/cotizador/internal/catalog"
	"github.com/construinmuniza/cotizador/internal/platform/httpx"
	"github.com/construinmuniza/cotizador/internal/session"
)

// maxCatalogSize caps the uploaded workbook at 20 MiB.
const maxCatalogSize = 20 << 20

// Handler wires catalog endpoints for a session's store.
type Handler struct {
	logger   *slog.Logger
	sessions *session.Manager
}

// NewHandler constructs the catalog handler.
func NewHandler(logger *slog.Logger, sessions *session.Manager) *Handler {
	return &Handler{logger: logger, sessions: sessions}
}

// MountRoutes registers catalog routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sessions/{sessionID}/catalog", h.handleLoad)
	r.Get("/sessions/{sessionID}/catalog/search", h.handleSearch)
	r.Get("/sessions/{sessionID}/catalog/stats", h.handleStats)
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCatalogSize)
	if err := r.ParseMultipartForm(maxCatalogSize); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Upload", "multipart field \"file\" required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := sess.Catalog().Load(file)
	if err != nil {
		h.logger.Warn("catalog load failed",
			slog.String("session", sess.ID.String()),
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("catalog loaded",
		slog.String("session", sess.ID.String()),
		slog.String("filename", header.Filename),
		slog.Int("count", result.Count))
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	term := strings.TrimSpace(q.Get("q"))
	if term == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "query parameter \"q\" required")
		return
	}
	loc, taxIncluded, limit, err := parseSearchOptions(q.Get("location"), q.Get("iva"), q.Get("limit"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	results, err := sess.Catalog().Search(term, loc, taxIncluded, limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	// No match is a normal outcome, not an error.
	if results == nil {
		results = []catalog.FormattedProduct{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolve(w, r)
	if !ok {
		return
	}
	stats, err := sess.Catalog().Stats()
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func parseSearchOptions(location, iva, limit string) (catalog.Location, bool, int, error) {
	loc := catalog.LocationCaldas
	if location != "" {
		loc = catalog.Location(location)
		if !loc.Valid() {
			return "", false, 0, fmt.Errorf("unknown location %q", location)
		}
	}
	taxIncluded := true
	if iva != "" {
		parsed, err := strconv.ParseBool(iva)
		if err != nil {
			return "", false, 0, fmt.Errorf("iva must be a boolean")
		}
		taxIncluded = parsed
	}
	n := 0
	if limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed <= 0 {
			return "", false, 0, fmt.Errorf("limit must be a positive integer")
		}
		n = parsed
	}
	return loc, taxIncluded, n, nil
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Session ID", err.Error())
		return nil, false
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		httpx.RespondError(w, err)
		return nil, false
	}
	return sess, true
}
