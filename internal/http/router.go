package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/http/features/authn"
	"github.com/taskhive/taskhive/internal/http/features/projects"
	"github.com/taskhive/taskhive/internal/http/features/tasks"
	"github.com/taskhive/taskhive/internal/http/middleware"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/app"
	"github.com/taskhive/taskhive/pkg/auth"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *app.AuthService
	ProjectService *app.ProjectService
	TaskService    *app.TaskService
	TokenService   *auth.TokenService
	TokenTTL       time.Duration

	MaxRequestBodySize    int64
	RateLimitEnabled      bool
	AuthRequestsPerMinute int
	APIRequestsPerMinute  int
	SecurityHeaders       *middleware.SecurityHeadersConfig
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	maxBody := cfg.MaxRequestBodySize
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodySize
	}

	headers := middleware.DefaultSecurityHeaders()
	if cfg.SecurityHeaders != nil {
		headers = *cfg.SecurityHeaders
	}

	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(headers))
	r.Use(middleware.RequestSizeLimit(maxBody))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authLimiter := middleware.NoRateLimit()
	apiLimiter := middleware.NoRateLimit()
	if cfg.RateLimitEnabled {
		authLimiter = middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.AuthRequestsPerMinute,
			Window:   time.Minute,
			Logger:   cfg.Logger,
		})
		apiLimiter = middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.APIRequestsPerMinute,
			Window:   time.Minute,
			Logger:   cfg.Logger,
		})
	}

	requireAuth := middleware.Auth(cfg.TokenService)

	authnHandler := authn.NewHandler(cfg.Logger, cfg.AuthService, cfg.TokenTTL)
	r.Group(func(r chi.Router) {
		r.Use(authLimiter)
		r.Post("/auth/register", authnHandler.Register)
		r.Post("/auth/login", authnHandler.Login)
	})
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/auth/me", authnHandler.Me)
		r.Post("/auth/mfa/setup", authnHandler.SetupMFA)
		r.Post("/auth/mfa/activate", authnHandler.ActivateMFA)
		r.Post("/auth/mfa/disable", authnHandler.DisableMFA)
	})

	projectsHandler := projects.NewHandler(cfg.Logger, cfg.ProjectService)
	tasksHandler := tasks.NewHandler(cfg.Logger, cfg.TaskService)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter)
		r.Use(requireAuth)

		r.Post("/projects", projectsHandler.Create)
		r.Get("/projects", projectsHandler.List)
		r.Get("/projects/{projectID}", projectsHandler.Get)
		r.Put("/projects/{projectID}", projectsHandler.Update)
		r.Delete("/projects/{projectID}", projectsHandler.Delete)

		r.Post("/projects/{projectID}/tasks", tasksHandler.Create)
		r.Get("/projects/{projectID}/tasks", tasksHandler.ListByProject)
		r.Get("/tasks", tasksHandler.List)
		r.Get("/tasks/{taskID}", tasksHandler.Get)
		r.Put("/tasks/{taskID}", tasksHandler.Update)
		r.Delete("/tasks/{taskID}", tasksHandler.Delete)
	})

	return r
}
