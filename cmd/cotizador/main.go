package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/construinmuniza/cotizador/internal/agent"
	"github.com/construinmuniza/cotizador/internal/app"
	cataloghttp "github.com/construinmuniza/cotizador/internal/catalog/http"
	"github.com/construinmuniza/cotizador/internal/chat"
	"github.com/construinmuniza/cotizador/internal/extract"
	"github.com/construinmuniza/cotizador/internal/quote"
	quotehttp "github.com/construinmuniza/cotizador/internal/quote/http"
	"github.com/construinmuniza/cotizador/internal/session"
	sessionhttp "github.com/construinmuniza/cotizador/internal/session/http"
	"github.com/construinmuniza/cotizador/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	agentClient := agent.NewClient(cfg.AgentEndpoint, cfg.AgentAccessKey, agent.Options{
		Temperature: cfg.AgentTemperature,
		MaxTokens:   cfg.AgentMaxTokens,
		Timeout:     cfg.AgentTimeout,
	})

	renderer, err := report.NewRenderer(cfg.GotenbergURL, nil)
	if err != nil {
		logger.Error("build renderer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := renderer.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	sessions := session.NewManager()
	extractor := extract.New(cfg.ExtractConfig())
	chatService := chat.NewService(logger, agentClient, extractor)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionHandler: sessionhttp.NewHandler(logger, sessions),
		ChatHandler:    chat.NewHandler(logger, chatService, sessions),
		CatalogHandler: cataloghttp.NewHandler(logger, sessions),
		QuoteHandler:   quotehttp.NewHandler(logger, sessions, quote.NewAssembler(), renderer),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
