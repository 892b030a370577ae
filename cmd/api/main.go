package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sirtis/backoffice/internal/api"
	"github.com/sirtis/backoffice/internal/api/handlers"
	"github.com/sirtis/backoffice/internal/api/ws"
	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/internal/seed"
	"github.com/sirtis/backoffice/internal/services"
	"github.com/sirtis/backoffice/internal/wbs"
	"github.com/sirtis/backoffice/pkg/config"
	"github.com/sirtis/backoffice/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting SIRTIS backoffice",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// In-memory stores
	stores := seed.Stores{
		Tree:       wbs.NewTree(),
		Users:      repository.NewUserRepository(),
		Resources:  repository.NewResourceRepository(),
		Documents:  repository.NewDocumentRepository(),
		Cases:      repository.NewCaseRepository(),
		Risks:      repository.NewRiskRepository(),
		Leave:      repository.NewLeaveRepository(),
		Appraisals: repository.NewAppraisalRepository(),
	}

	if cfg.SeedFile != "" {
		fixture, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatal("Failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		}
		if err := fixture.Apply(context.Background(), stores); err != nil {
			log.Fatal("Failed to apply seed file", zap.Error(err))
		}
		log.Info("Seed data loaded",
			zap.String("path", cfg.SeedFile),
			zap.Int("nodes", stores.Tree.Len()),
		)
	}

	// JWT secret from configuration
	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	hub := ws.NewHub()
	view := wbs.NewViewState()

	authService := services.NewAuthService(stores.Users, jwtSecret)
	analyticsService := services.NewAnalyticsService(stores.Tree, stores.Cases, stores.Risks, stores.Leave)

	router := api.NewRouter(api.Dependencies{
		HMACSecret:     jwtSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,

		AuthHandler:       handlers.NewAuthHandler(authService),
		NodesHandler:      handlers.NewNodesHandler(stores.Tree, view, hub),
		ResourcesHandler:  handlers.NewResourcesHandler(stores.Resources, hub),
		DocumentsHandler:  handlers.NewDocumentsHandler(stores.Documents, hub),
		CasesHandler:      handlers.NewCasesHandler(stores.Cases, hub),
		RisksHandler:      handlers.NewRisksHandler(stores.Risks, hub),
		LeaveHandler:      handlers.NewLeaveHandler(stores.Leave, hub),
		AppraisalsHandler: handlers.NewAppraisalsHandler(stores.Appraisals, hub),
		AdminUsersHandler: handlers.NewAdminUsersHandler(stores.Users, hub),
		AnalyticsHandler:  handlers.NewAnalyticsHandler(analyticsService),
		Hub:               hub,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
