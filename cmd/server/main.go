package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mindcoach/internal/catalog"
	"mindcoach/internal/config"
	"mindcoach/internal/database"
	"mindcoach/internal/event"
	"mindcoach/internal/handlers"
	"mindcoach/internal/metrics"
	"mindcoach/internal/repository"
	"mindcoach/internal/security"
	"mindcoach/internal/service"
)

const (
	stepDatabase   = "Database connection"
	stepMigrations = "Running migrations"
	stepCatalog    = "Loading catalog"
	stepServices   = "Initializing services"
	stepReady      = "Server ready"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	startup := handlers.NewStartup(stepDatabase, stepMigrations, stepCatalog, stepServices, stepReady)

	// Serve 503 with startup progress until everything is wired
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      startup,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database with config (supports sqlite, postgres, mysql)
	startup.SetCurrentStep(stepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)
	startup.CompleteStep(stepDatabase)

	startup.SetCurrentStep(stepMigrations)
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")
	startup.CompleteStep(stepMigrations)

	startup.SetCurrentStep(stepCatalog)
	coachCatalog, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d quiz items, %d personas, %d archetypes, %d exercises",
		len(coachCatalog.QuizItems), len(coachCatalog.Personas), len(coachCatalog.Archetypes), len(coachCatalog.Exercises))
	startup.CompleteStep(stepCatalog)

	startup.SetCurrentStep(stepServices)
	m, err := metrics.New()
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	publisher, err := event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	tokens, err := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is empty, tokens will not survive a restart")
	}
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Stop()

	// Initialize services
	stateService, err := service.NewStateService(repository.NewStateRepository(db), cfg.StateCacheSize, cfg.StateCacheTTL, publisher, m, cfg.Location)
	if err != nil {
		log.Fatalf("Failed to initialize state service: %v", err)
	}
	assessmentService := service.NewAssessmentService(coachCatalog, stateService, publisher, m)
	practiceService := service.NewPracticeService(coachCatalog, stateService)
	digestService := service.NewDigestService(stateService, practiceService, emailService, m, cfg.DigestConcurrency)
	backupService := service.NewBackupService(db)
	startup.CompleteStep(stepServices)

	// Initialize handlers
	router := &handlers.Router{
		Middleware: handlers.NewMiddleware(tokens, limiter, cfg.AdminKeyHash, cfg.TrustProxy),
		Users:      handlers.NewUserHandler(stateService, tokens),
		Assessment: handlers.NewAssessmentHandler(assessmentService),
		State:      handlers.NewStateHandler(stateService),
		Practice:   handlers.NewPracticeHandler(practiceService),
		Catalog:    handlers.NewCatalogHandler(coachCatalog),
		Admin:      handlers.NewAdminHandler(backupService, digestService),
		Health:     handlers.Health(db),
		Metrics:    m,
	}
	if cfg.AdminKeyHash == "" {
		log.Println("Admin routes disabled: ADMIN_KEY_HASH not configured")
	}

	startup.CompleteStep(stepReady)
	startup.MarkReady(router.Handler())
	log.Println("Server ready")

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
