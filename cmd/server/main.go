package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erin-happyrobot/ryder-RLM/internal/config"
	"github.com/erin-happyrobot/ryder-RLM/internal/handlers"
	"github.com/erin-happyrobot/ryder-RLM/internal/middleware"
	"github.com/erin-happyrobot/ryder-RLM/internal/normalize"
	"github.com/erin-happyrobot/ryder-RLM/internal/questionnaire"
	"github.com/erin-happyrobot/ryder-RLM/internal/service"
	"github.com/erin-happyrobot/ryder-RLM/internal/upstream"
	"github.com/erin-happyrobot/ryder-RLM/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting rlm schedule relay server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"question_source", cfg.Relay.QuestionSource,
	)

	if cfg.Upstream.SubscriptionKey == "" {
		log.Warn("API_HEADER_KEY is not set; forwarding endpoints will fail until it is configured")
	}

	// Initialize the outbound client
	client := upstream.NewClient(
		cfg.Upstream.URL,
		cfg.Upstream.SubscriptionKey,
		time.Duration(cfg.Upstream.Timeout)*time.Second,
		log,
	)

	// Select the question-template source
	var source questionnaire.TemplateSource
	switch cfg.Relay.QuestionSource {
	case config.QuestionSourceStatic:
		source = questionnaire.StaticSource{}
	case config.QuestionSourceLookup:
		source = questionnaire.NewLookupSource(client, cfg.Upstream.LookupURL, log)
	default:
		source = questionnaire.InlineSource{}
	}

	// Initialize services
	scheduleService := service.NewScheduleService(client, source, normalize.New(), cfg.Upstream.SubscriptionKey, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoints
	r.Get("/", healthHandler.ServeHTTP)
	r.Get("/health", healthHandler.ServeHTTP)

	// Relay endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Relay.APIKey))
		r.Post("/schedule-appointment", scheduleHandler.ScheduleAppointment)
		r.Post("/schedule-appointment-custom", scheduleHandler.ScheduleAppointmentCustom)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
