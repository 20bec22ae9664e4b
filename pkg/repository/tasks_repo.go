package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

const taskColumns = `id, title, description, status, priority, project_id, tenant_id, created_by, assigned_to, due_date, created_at, updated_at`

// TasksRepository persists tasks.
type TasksRepository struct {
	db *sql.DB
}

// NewTasksRepository creates a tasks repository.
func NewTasksRepository(db *sql.DB) *TasksRepository {
	return &TasksRepository{db: db}
}

// Create inserts a new task.
func (r *TasksRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, project_id, tenant_id, created_by, assigned_to, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.ProjectID, task.TenantID, task.CreatedBy, task.AssignedTo,
		task.DueDate, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

// GetByTenantAndID retrieves one task scoped to the tenant.
func (r *TasksRepository) GetByTenantAndID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE tenant_id = $1 AND id = $2`
	return scanTask(r.db.QueryRowContext(ctx, query, tenantID, id))
}

// GetByProject lists a project's tasks, still under the tenant predicate.
func (r *TasksRepository) GetByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE tenant_id = $1 AND project_id = $2 ORDER BY created_at`
	return r.list(ctx, query, tenantID, projectID)
}

// GetByAssignee lists the tenant's tasks assigned to a user.
func (r *TasksRepository) GetByAssignee(ctx context.Context, tenantID, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE tenant_id = $1 AND assigned_to = $2 ORDER BY created_at`
	return r.list(ctx, query, tenantID, userID)
}

// GetByStatus lists the tenant's tasks in a status.
func (r *TasksRepository) GetByStatus(ctx context.Context, tenantID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE tenant_id = $1 AND status = $2 ORDER BY created_at`
	return r.list(ctx, query, tenantID, status)
}

// Update writes the task's mutable fields. Last write wins.
func (r *TasksRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, assigned_to = $6, due_date = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.AssignedTo, task.DueDate, task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a task by primary key. Callers verify tenant ownership
// first.
func (r *TasksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TasksRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.ProjectID, &t.TenantID, &t.CreatedBy, &t.AssignedTo,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.ProjectID, &t.TenantID, &t.CreatedBy, &t.AssignedTo,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
