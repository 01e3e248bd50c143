package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhub/config"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/email"
	"eventhub/internal/adapters/upload"
	delivery "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"
)

const (
	bcryptCost      = 10
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title EventHub API
// @version 1.0
// @description Event management API with user accounts and event registrations.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)

	hasher := auth.NewBcryptHasher(bcryptCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer setup failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	imageStore, err := upload.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		logger.Error("upload dir setup failed", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}

	userService := services.NewUserService(userRepo, hasher, issuer, cfg.JWTExpiry, emailService, serviceTimeout)
	eventService := services.NewEventService(eventRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, registrationRepo, userRepo, emailService, serviceTimeout)

	mux := delivery.NewRouter(
		logger,
		verifier,
		controllers.NewUserController(logger, userService),
		controllers.NewEventController(logger, eventService, imageStore),
		controllers.NewRegistrationController(logger, registrationService),
	)

	handler := middleware.LoggingMiddleware(logger, mux)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}
