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

	"github.com/spf13/cobra"

	"github.com/taskhive/taskhive/internal/config"
	httpserver "github.com/taskhive/taskhive/internal/http"
	"github.com/taskhive/taskhive/pkg/app"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/repository"
)

func serveCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(logger)
		},
	}
}

func runServe(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("connected to database")

	tenantsRepo := repository.NewTenantsRepository(db)
	usersRepo := repository.NewUsersRepository(db)
	projectsRepo := repository.NewProjectsRepository(db)
	tasksRepo := repository.NewTasksRepository(db)
	secretsRepo := repository.NewMFASecretsRepository(db)
	registrar := repository.NewRegistrar(db, tenantsRepo, usersRepo)

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL)

	authService := app.NewAuthService(usersRepo, tenantsRepo, registrar, secretsRepo, tokens, cfg.MFAIssuer)
	projectService := app.NewProjectService(projectsRepo)
	taskService := app.NewTaskService(tasksRepo, projectsRepo)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:                logger,
		AuthService:           authService,
		ProjectService:        projectService,
		TaskService:           taskService,
		TokenService:          tokens,
		TokenTTL:              cfg.TokenTTL,
		RateLimitEnabled:      cfg.RateLimitEnabled,
		AuthRequestsPerMinute: cfg.AuthRequestsPerMinute,
		APIRequestsPerMinute:  cfg.APIRequestsPerMinute,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
