package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	cataloghttp "github.com/construinmuniza/cotizador/internal/catalog/http"
	"github.com/construinmuniza/cotizador/internal/chat"
	quotehttp "github.com/construinmuniza/cotizador/internal/quote/http"
	sessionhttp "github.com/construinmuniza/cotizador/internal/session/http"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionHandler *sessionhttp.Handler
	ChatHandler    *chat.Handler
	CatalogHandler *cataloghttp.Handler
	QuoteHandler   *quotehttp.Handler
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.SessionHandler.MountRoutes(r)
	params.ChatHandler.MountRoutes(r)
	params.CatalogHandler.MountRoutes(r)
	params.QuoteHandler.MountRoutes(r)

	return r
}
