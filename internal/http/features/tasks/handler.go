// Package tasks exposes tenant-scoped task CRUD endpoints.
package tasks

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

// Handler handles task endpoints.
type Handler struct {
	logger *slog.Logger
	tasks  *app.TaskService
}

// NewHandler creates a tasks handler.
func NewHandler(logger *slog.Logger, tasks *app.TaskService) *Handler {
	return &Handler{logger: logger, tasks: tasks}
}

// CreateRequest is the payload for Create.
type CreateRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateRequest is the payload for Update. Absent fields are left unchanged.
type UpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Response is the public view of a task.
type Response struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ProjectID   string     `json:"project_id"`
	TenantID    string     `json:"tenant_id"`
	CreatedBy   string     `json:"created_by"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toResponse(t *domain.Task) Response {
	return Response{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ProjectID:   t.ProjectID.String(),
		TenantID:    t.TenantID.String(),
		CreatedBy:   t.CreatedBy.String(),
		AssignedTo:  t.AssignedTo,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create handles POST /api/projects/{projectID}/tasks.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.Create(r.Context(), app.CreateTaskParams{
		Title:       req.Title,
		ProjectID:   projectID,
		TenantID:    tenantID,
		CreatedBy:   userID,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toResponse(task))
}

// ListByProject handles GET /api/projects/{projectID}/tasks.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
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

	tasks, err := h.tasks.ListByProject(r.Context(), tenantID, projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeList(w, tasks)
}

// List handles GET /api/tasks filtered by assignee or status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if assignee := r.URL.Query().Get("assignee"); assignee != "" {
		userID, err := uuid.Parse(assignee)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		tasks, err := h.tasks.ListByAssignee(r.Context(), tenantID, userID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeList(w, tasks)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.TaskStatus(status)
		if !st.Valid() {
			httputil.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		tasks, err := h.tasks.ListByStatus(r.Context(), tenantID, st)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeList(w, tasks)
		return
	}

	httputil.Error(w, http.StatusBadRequest, "assignee or status query parameter is required")
}

// Get handles GET /api/tasks/{taskID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	task, err := h.tasks.Get(r.Context(), tenantID, taskID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(task))
}

// Update handles PUT /api/tasks/{taskID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := app.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		upd.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		upd.Priority = &priority
	}

	task, err := h.tasks.Update(r.Context(), tenantID, taskID, upd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(task))
}

// Delete handles DELETE /api/tasks/{taskID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(r)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.tasks.Delete(r.Context(), tenantID, taskID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeList(w http.ResponseWriter, tasks []*domain.Task) {
	out := make([]Response, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t))
	}
	httputil.JSON(w, http.StatusOK, out)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrInvalidPriority):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("task request failed", "error", err)
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
