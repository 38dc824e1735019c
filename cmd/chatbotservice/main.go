package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatbot/internal/chat"
	"chatbot/internal/config"
	"chatbot/internal/llm"
	"chatbot/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// main is the entry point for the ChatbotService.
func main() {
	if err := run(); err != nil {
		slog.Error("ChatbotService stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build the completion client once and inject it, rather than reaching for globals.
	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not create completion client: %w", err)
	}
	defer client.Close()

	// Inject client into the service
	llmService := llm.NewService(client, llm.SystemPrompt, llm.Options{
		Timeout:       cfg.LLMTimeout,
		MaxConcurrent: cfg.LLMConcurrency,
	})

	page, err := chat.NewPage(chat.PageData{
		Title:      cfg.PageTitle,
		Greeting:   cfg.Greeting,
		BotIconURL: cfg.BotIconURL,
	})
	if err != nil {
		return err
	}

	// Inject service into the handler
	chatHandler := chat.NewHandler(llmService, page, logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(chat.RequestID)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ChatbotService OK"))
	})

	// Register the page and /chat routes from the handler
	chatHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout(cfg.LLMTimeout),
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("ChatbotService starting",
			"port", cfg.Port,
			"provider", cfg.Provider,
			"llm_timeout", cfg.LLMTimeout.String(),
			"llm_max_concurrent", cfg.LLMConcurrency,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("ChatbotService shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// writeTimeout leaves room for the slowest allowed upstream call.
func writeTimeout(llmTimeout time.Duration) time.Duration {
	if llmTimeout <= 0 {
		return 0
	}
	return llmTimeout + 15*time.Second
}
