// Package projects exposes tenant-scoped project CRUD endpoints.
package projects

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/http/middleware"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/app"
	"github.com/taskhive/taskhive/pkg/domain"
)

// Handler handles project endpoints.
type Handler struct {
	logger   *slog.Logger
	projects *app.ProjectService
}

// NewHandler creates a projects handler.
func NewHandler(logger *slog.Logger, projects *app.ProjectService) *Handler {
	return &Handler{logger: logger, projects: projects}
}

// CreateRequest is the payload for Create.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateRequest is the payload for Update. Absent fields are left unchanged.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Response is the public view of a project.
type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	TenantID    string    `json:"tenant_id"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(p *domain.Project) Response {
	return Response{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		TenantID:    p.TenantID.String(),
		CreatedBy:   p.CreatedBy.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Create handles POST /api/projects.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.Create(r.Context(), tenantID, userID, req.Name, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toResponse(project))
}

// List handles GET /api/projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	projects, err := h.projects.List(r.Context(), tenantID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]Response, 0, len(projects))
	for _, p := range projects {
		out = append(out, toResponse(p))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/projects/{projectID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	project, err := h.projects.Get(r.Context(), tenantID, projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(project))
}

// Update handles PUT /api/projects/{projectID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := app.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		upd.Status = &status
	}

	project, err := h.projects.Update(r.Context(), tenantID, projectID, upd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(project))
}

// Delete handles DELETE /api/projects/{projectID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.projects.Delete(r.Context(), tenantID, projectID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameTooLong):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("project request failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func identity(r *http.Request) (tenantID, userID uuid.UUID, ok bool) {
	tenantID, ok = middleware.GetTenantID(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok = middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}
