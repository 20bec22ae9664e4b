package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

// TaskService implements tenant-scoped task CRUD with cross-entity checks
// against the owning project.
type TaskService struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
}

// NewTaskService creates a task service.
func NewTaskService(tasks domain.TaskRepository, projects domain.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

// CreateTaskParams holds the input for Create.
type CreateTaskParams struct {
	Title       string
	ProjectID   uuid.UUID
	TenantID    uuid.UUID
	CreatedBy   uuid.UUID
	Description *string
	Priority    domain.TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

// Create makes a new task after verifying the target project exists within
// the caller's tenant, so a task can never be attached to another tenant's
// project.
func (s *TaskService) Create(ctx context.Context, p CreateTaskParams) (*domain.Task, error) {
	project, err := s.projects.GetByTenantAndID(ctx, p.TenantID, p.ProjectID)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(p.Title, project.ID, p.TenantID, p.CreatedBy, p.Description, p.Priority, p.AssignedTo, p.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByProject returns the project's tasks, after verifying the project
// belongs to the tenant.
func (s *TaskService) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.Task, error) {
	if _, err := s.projects.GetByTenantAndID(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	return s.tasks.GetByProject(ctx, tenantID, projectID)
}

// ListByAssignee returns the tenant's tasks assigned to the given user.
func (s *TaskService) ListByAssignee(ctx context.Context, tenantID, userID uuid.UUID) ([]*domain.Task, error) {
	return s.tasks.GetByAssignee(ctx, tenantID, userID)
}

// ListByStatus returns the tenant's tasks in the given status.
func (s *TaskService) ListByStatus(ctx context.Context, tenantID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.tasks.GetByStatus(ctx, tenantID, status)
}

// Get returns one task, scoped to the tenant.
func (s *TaskService) Get(ctx context.Context, tenantID, taskID uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetByTenantAndID(ctx, tenantID, taskID)
}

// TaskUpdate carries the fields to change; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

// Update re-fetches the task under the caller's tenant, applies only the
// provided fields, and routes status changes through the state machine and
// assignment through AssignTo.
func (s *TaskService) Update(ctx context.Context, tenantID, taskID uuid.UUID, upd TaskUpdate) (*domain.Task, error) {
	task, err := s.tasks.GetByTenantAndID(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if err := task.Retitle(*upd.Title); err != nil {
			return nil, err
		}
	}
	if upd.Description != nil {
		task.Description = upd.Description
	}
	if upd.Status != nil {
		if err := task.UpdateStatus(*upd.Status); err != nil {
			return nil, err
		}
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		task.Priority = *upd.Priority
	}
	if upd.AssignedTo != nil {
		task.AssignTo(*upd.AssignedTo)
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task after re-verifying tenant ownership.
func (s *TaskService) Delete(ctx context.Context, tenantID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByTenantAndID(ctx, tenantID, taskID)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task.ID)
}
