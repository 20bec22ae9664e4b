package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

const projectColumns = `id, name, description, status, tenant_id, created_by, created_at, updated_at`

// ProjectsRepository persists projects.
type ProjectsRepository struct {
	db *sql.DB
}

// NewProjectsRepository creates a projects repository.
func NewProjectsRepository(db *sql.DB) *ProjectsRepository {
	return &ProjectsRepository{db: db}
}

// Create inserts a new project.
func (r *ProjectsRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (id, name, description, status, tenant_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.Status,
		project.TenantID, project.CreatedBy, project.CreatedAt, project.UpdatedAt,
	)
	return err
}

// GetByTenantAndID retrieves one project scoped to the tenant. A project
// owned by another tenant comes back as domain.ErrNotFound.
func (r *ProjectsRepository) GetByTenantAndID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = $1 AND id = $2`
	return scanProject(r.db.QueryRowContext(ctx, query, tenantID, id))
}

// GetByTenant lists the tenant's projects.
func (r *ProjectsRepository) GetByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Status,
			&p.TenantID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// Update writes the project's mutable fields. Last write wins; there is no
// optimistic concurrency token on the row.
func (r *ProjectsRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.Status, project.UpdatedAt,
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

// Delete removes a project by primary key. Callers verify tenant ownership
// first.
func (r *ProjectsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
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

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Status,
		&p.TenantID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
