// Package main is the entry point for the matching platform API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/owlconnect/matching-platform/internal/config"
	"github.com/owlconnect/matching-platform/internal/directory"
	"github.com/owlconnect/matching-platform/internal/handler"
	"github.com/owlconnect/matching-platform/internal/llm"
	"github.com/owlconnect/matching-platform/internal/middleware"
	natsclient "github.com/owlconnect/matching-platform/internal/nats"
	"github.com/owlconnect/matching-platform/internal/negotiation"
	"github.com/owlconnect/matching-platform/internal/roadmap"
	"github.com/owlconnect/matching-platform/internal/session"
	"github.com/owlconnect/matching-platform/pkg/logger"
	"github.com/owlconnect/matching-platform/pkg/tracing"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "matching-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Mentor directory and onboarded mentees
	store, err := directory.Open(cfg.DirectoryPath)
	if err != nil {
		log.Error("failed to open mentor directory", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	// Optional JetStream transcript archive
	var nc *natsclient.Client
	var archiver negotiation.Archiver
	if cfg.NATSEnabled {
		nc, err = natsclient.Connect(natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer nc.Close()

		archive := natsclient.NewArchive(nc)
		if err := archive.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure archive stream", zap.Error(err))
			os.Exit(1)
		}
		archiver = archive
	}

	// Dialogue generation client
	apiKey := cfg.AnthropicAPIKey
	if cfg.DefaultLLM == string(llm.ProviderOpenAI) || apiKey == "" && cfg.OpenAIAPIKey != "" {
		apiKey = cfg.OpenAIAPIKey
		cfg.DefaultLLM = string(llm.ProviderOpenAI)
	}
	baseClient, err := llm.NewClient(llm.Provider(cfg.DefaultLLM), apiKey)
	if err != nil {
		log.Error("failed to create dialogue client", zap.Error(err))
		os.Exit(1)
	}
	llmClient := llm.NewRetryClient(baseClient, cfg.TurnRetries, time.Second)

	// Sessions and negotiation engine
	registry := session.NewRegistry(cfg.SessionRetention, cfg.FragmentBuffer)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go registry.Sweep(sweepCtx, time.Minute)

	engine := negotiation.NewEngine(llmClient, store, negotiation.Config{
		MaxRounds:        cfg.MaxRounds,
		MaxConcurrent:    cfg.MaxConcurrent,
		TurnTimeout:      cfg.TurnTimeout,
		SuccessThreshold: cfg.SuccessThreshold,
	}, archiver, log)

	synth := roadmap.NewSynthesizer(llmClient, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(store, nc)
	directoryHandler := handler.NewDirectoryHandler(store, log)
	onboardingHandler := handler.NewOnboardingHandler(store, log)
	roadmapHandler := handler.NewRoadmapHandler(synth, log)
	sessionHandler := handler.NewSessionHandler(registry, log)
	socketHandler := handler.NewSocketHandler(registry, store, engine, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// WebSocket negotiation stream (token auth happens per origin policy
	// upstream; the session id is an opaque client-held capability)
	r.Get("/ws/negotiation/{session_id}", socketHandler.Negotiate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/mentors", func(r chi.Router) {
			r.Get("/", directoryHandler.ListMentors)
			r.Get("/{id}", directoryHandler.GetMentor)
		})

		r.Get("/mentees/newest", directoryHandler.NewestMentee)
		r.Post("/onboarding", onboardingHandler.Submit)
		r.Post("/roadmap", roadmapHandler.Synthesize)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/ranking", sessionHandler.Ranking)
			r.Get("/negotiations", sessionHandler.Negotiations)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
