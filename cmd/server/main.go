package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcheckin/config"
	"eventcheckin/internal/adapters/email"
	gqldelivery "eventcheckin/internal/delivery/graphql"
	httpdelivery "eventcheckin/internal/delivery/http"
	"eventcheckin/internal/delivery/http/controllers"
	"eventcheckin/internal/delivery/http/middleware"
	"eventcheckin/internal/realtime"
	"eventcheckin/internal/repository/postgres"
	"eventcheckin/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	checkinRepo := postgres.NewCheckinRepository(db)

	hub := realtime.NewHub(logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:        cfg.Email.Provider,
		FromAddress:     cfg.Email.FromAddress,
		FromName:        cfg.Email.FromName,
		SESRegion:       cfg.Email.SESRegion,
		SESAccessKeyID:  cfg.Email.SESAccessKeyID,
		SESSecretAccess: cfg.Email.SESSecretKey,
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	userService := services.NewUserService(userRepo)
	checkinService := services.NewCheckinService(eventRepo, userRepo, checkinRepo, hub, emailService, logger)

	resolver := gqldelivery.NewResolver(logger, checkinService, userService)
	schema, err := gqldelivery.NewSchema(resolver)
	if err != nil {
		logger.Error("failed to build graphql schema", "error", err)
		os.Exit(1)
	}
	graphqlHandler := gqldelivery.NewHandler(schema, cfg.Environment != "production")

	wsHandler := realtime.NewHandler(hub, cfg.CORSAllowedOrigins)
	healthController := controllers.NewHealthController(logger, db)

	mux := httpdelivery.NewRouter(graphqlHandler, wsHandler, healthController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- server.Shutdown(ctx)
	}()

	logger.Info("server listening", "addr", server.Addr, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
