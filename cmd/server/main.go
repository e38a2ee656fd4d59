package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"festregistration/config"
	authadapter "festregistration/internal/adapters/auth"
	"festregistration/internal/adapters/email"
	"festregistration/internal/adapters/storage"
	"festregistration/internal/catalog"
	httpdelivery "festregistration/internal/delivery/http"
	"festregistration/internal/delivery/http/controllers"
	"festregistration/internal/delivery/http/middleware"
	"festregistration/internal/repository/postgres"
	"festregistration/internal/services"
)

// @title Fest Registration API
// @version 1.0
// @description Event catalog, registration submission, and site-content API for the society fest.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const (
	adminTokenExpiry = 12 * time.Hour
	shutdownTimeout  = 15 * time.Second
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			logger.Error("JWT_SECRET is required in production")
			os.Exit(1)
		}
		logger.Warn("JWT_SECRET not set, using insecure development secret")
		cfg.JWTSecret = "dev-secret"
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load event catalog", "err", err)
		os.Exit(1)
	}

	eligibility := services.NewEligibilityEngine(services.EligibilitySettings{
		MasterEnabled: cfg.RegistrationEnabled,
		Deadline:      cfg.RegistrationDeadline,
	})

	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("failed to parse email templates", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	fileStore, err := storage.NewLocalFileStore(cfg.UploadDir, "/uploads")
	if err != nil {
		logger.Error("failed to create upload dir", "err", err)
		os.Exit(1)
	}

	emailSvc := services.NewEmailService(mailer, renderer, logger)
	registrationSvc := services.NewRegistrationService(
		cat,
		services.NewTeamCompositionValidator(),
		eligibility,
		postgres.NewRegistrationRepository(db),
		emailSvc,
		logger,
		cfg.EmailTimeout,
	)
	eventSvc := services.NewEventQueryService(cat, eligibility)
	contentSvc := services.NewContentService(postgres.NewContentRepository(db))

	tokens := authadapter.NewJWTManager(cfg.JWTSecret)
	authSvc := services.NewAuthService(
		postgres.NewAdminRepository(db),
		authadapter.NewBcryptHasher(bcrypt.DefaultCost),
		tokens,
		adminTokenExpiry,
	)

	mux := httpdelivery.NewRouter(
		logger,
		tokens,
		controllers.NewEventController(logger, eventSvc),
		controllers.NewRegistrationController(logger, registrationSvc),
		controllers.NewContentController(logger, contentSvc),
		controllers.NewAuthController(logger, authSvc),
		controllers.NewUploadController(logger, fileStore),
		cfg.UploadDir,
	)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"port", cfg.Port,
			"env", cfg.Environment,
			"registration_enabled", cfg.RegistrationEnabled,
			"events", len(cat.All()),
		)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
			os.Exit(1)
		}
	}
	logger.Info("server stopped")
}
