// Package taskhive provides a multi-tenant work-tracking backend with
// tenant-scoped projects and tasks behind JWT authentication.
//
// Setup:
//
//  1. Run migrations from migrations/ folder using your preferred tool
//  2. Create an App instance and serve its router
//
// Basic usage:
//
//	db, _ := sql.Open("postgres", "postgres://localhost/taskhive?sslmode=disable")
//
//	hive, err := taskhive.New(taskhive.Config{
//	    DB:        db,
//	    JWTSecret: "your-secret-key-at-least-32-chars",
//	})
//	if err != nil {
//	    log.Fatal(err) // Will fail if migrations haven't been run
//	}
//
//	http.ListenAndServe(":8080", hive.Router())
package taskhive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	taskhivehttp "github.com/taskhive/taskhive/internal/http"
	"github.com/taskhive/taskhive/internal/http/middleware"
	"github.com/taskhive/taskhive/pkg/app"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/repository"
)

// Config holds the configuration for the taskhive library.
type Config struct {
	// DB is the database connection (required).
	DB *sql.DB

	// JWTSecret is the secret key for signing JWT tokens (required, min 32 chars).
	JWTSecret string

	// JWTIssuer is the issuer claim in JWT tokens (default: "taskhive").
	JWTIssuer string

	// TokenTTL is the lifetime of access tokens (default: 30 minutes).
	TokenTTL time.Duration

	// MFAIssuer is the issuer shown in authenticator apps (default: "TaskHive").
	MFAIssuer string

	// RateLimitEnabled turns on per-IP rate limiting (default: false for
	// library use; the server command enables it from config).
	RateLimitEnabled      bool
	AuthRequestsPerMinute int
	APIRequestsPerMinute  int

	// MaxRequestBodySize caps request bodies in bytes (default: 1 MiB).
	MaxRequestBodySize int64

	// Logger is the structured logger (default: slog JSON to stdout).
	Logger *slog.Logger
}

// App is the assembled taskhive backend.
type App struct {
	config       Config
	db           *sql.DB
	tenantsRepo  *repository.TenantsRepository
	usersRepo    *repository.UsersRepository
	projectsRepo *repository.ProjectsRepository
	tasksRepo    *repository.TasksRepository
	secretsRepo  *repository.MFASecretsRepository
	tokens       *auth.TokenService
	authService  *app.AuthService
	projects     *app.ProjectService
	tasks        *app.TaskService
}

// New creates a new App with the given configuration.
// Returns an error if required database tables don't exist.
// Run migrations first - see migrations/ folder for SQL files.
func New(cfg Config) (*App, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateSchema(cfg.DB); err != nil {
		return nil, err
	}

	tenantsRepo := repository.NewTenantsRepository(cfg.DB)
	usersRepo := repository.NewUsersRepository(cfg.DB)
	projectsRepo := repository.NewProjectsRepository(cfg.DB)
	tasksRepo := repository.NewTasksRepository(cfg.DB)
	secretsRepo := repository.NewMFASecretsRepository(cfg.DB)
	registrar := repository.NewRegistrar(cfg.DB, tenantsRepo, usersRepo)

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL)

	authService := app.NewAuthService(usersRepo, tenantsRepo, registrar, secretsRepo, tokens, cfg.MFAIssuer)
	projects := app.NewProjectService(projectsRepo)
	tasks := app.NewTaskService(tasksRepo, projectsRepo)

	return &App{
		config:       cfg,
		db:           cfg.DB,
		tenantsRepo:  tenantsRepo,
		usersRepo:    usersRepo,
		projectsRepo: projectsRepo,
		tasksRepo:    tasksRepo,
		secretsRepo:  secretsRepo,
		tokens:       tokens,
		authService:  authService,
		projects:     projects,
		tasks:        tasks,
	}, nil
}

// Router returns an http.Handler with all routes registered.
//
// Routes:
//
//	POST /auth/register         - Register a tenant and its first user
//	POST /auth/login            - Login with email/password (+ TOTP if enabled)
//	GET  /auth/me               - Get current user (protected)
//	POST /auth/mfa/setup        - Start TOTP enrollment (protected)
//	POST /auth/mfa/activate     - Confirm TOTP enrollment (protected)
//	POST /auth/mfa/disable      - Turn off TOTP (protected)
//	CRUD /api/projects          - Tenant-scoped projects (protected)
//	CRUD /api/tasks             - Tenant-scoped tasks (protected)
//	GET  /health                - Health check
func (a *App) Router() http.Handler {
	return taskhivehttp.NewRouter(taskhivehttp.RouterConfig{
		Logger:                a.config.Logger,
		AuthService:           a.authService,
		ProjectService:        a.projects,
		TaskService:           a.tasks,
		TokenService:          a.tokens,
		TokenTTL:              a.config.TokenTTL,
		MaxRequestBodySize:    a.config.MaxRequestBodySize,
		RateLimitEnabled:      a.config.RateLimitEnabled,
		AuthRequestsPerMinute: a.config.AuthRequestsPerMinute,
		APIRequestsPerMinute:  a.config.APIRequestsPerMinute,
	})
}

// AuthService returns the auth service for advanced usage.
func (a *App) AuthService() *app.AuthService {
	return a.authService
}

// TokenService returns the token service for advanced usage.
func (a *App) TokenService() *auth.TokenService {
	return a.tokens
}

// AuthMiddleware returns middleware that validates bearer tokens.
// Use this to protect your own routes:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(hive.AuthMiddleware())
//	    r.Get("/protected", handler)
//	})
func (a *App) AuthMiddleware() func(http.Handler) http.Handler {
	return middleware.Auth(a.tokens)
}

// GetUserID extracts the authenticated user ID from a request.
// Use after AuthMiddleware.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return middleware.GetUserID(r.Context())
}

// GetTenantID extracts the authenticated tenant ID from a request.
// Use after AuthMiddleware.
func GetTenantID(r *http.Request) (uuid.UUID, bool) {
	return middleware.GetTenantID(r.Context())
}

// GetUserIDFromContext extracts the user ID from a context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return middleware.GetUserID(ctx)
}

func validateConfig(cfg *Config) error {
	if cfg.DB == nil {
		return errors.New("taskhive: DB is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("taskhive: JWTSecret is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return errors.New("taskhive: JWTSecret must be at least 32 characters")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "taskhive"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = auth.DefaultTokenTTL
	}
	if cfg.MFAIssuer == "" {
		cfg.MFAIssuer = "TaskHive"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
}

// validateSchema checks that required database tables exist.
func validateSchema(db *sql.DB) error {
	requiredTables := []string{"tenants", "users", "projects", "tasks", "mfa_secrets"}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	`

	for _, table := range requiredTables {
		var name string
		err := db.QueryRow(query, table).Scan(&name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("taskhive: missing table '%s' - run migrations first (see migrations/ folder)", table)
		}
		if err != nil {
			return fmt.Errorf("taskhive: failed to check schema: %w", err)
		}
	}

	return nil
}
