package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

// ProjectService implements tenant-scoped project CRUD.
type ProjectService struct {
	projects domain.ProjectRepository
}

// NewProjectService creates a project service.
func NewProjectService(projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create makes a new project stamped with the caller's tenant and identity.
func (s *ProjectService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, name string, description *string) (*domain.Project, error) {
	project, err := domain.NewProject(name, tenantID, createdBy, description)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns all projects owned by the tenant.
func (s *ProjectService) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Project, error) {
	return s.projects.GetByTenant(ctx, tenantID)
}

// Get returns one project, scoped to the tenant.
func (s *ProjectService) Get(ctx context.Context, tenantID, projectID uuid.UUID) (*domain.Project, error) {
	return s.projects.GetByTenantAndID(ctx, tenantID, projectID)
}

// ProjectUpdate carries the fields to change; nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
}

// Update re-fetches the project under the caller's tenant, applies only the
// provided fields, and routes status changes through the state machine.
func (s *ProjectService) Update(ctx context.Context, tenantID, projectID uuid.UUID, upd ProjectUpdate) (*domain.Project, error) {
	project, err := s.projects.GetByTenantAndID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if err := project.Rename(*upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.Description != nil {
		project.Description = upd.Description
	}
	if upd.Status != nil {
		if err := project.UpdateStatus(*upd.Status); err != nil {
			return nil, err
		}
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project after re-verifying tenant ownership. Tasks under
// the project are not cascaded here; the schema's foreign keys own that.
func (s *ProjectService) Delete(ctx context.Context, tenantID, projectID uuid.UUID) error {
	project, err := s.projects.GetByTenantAndID(ctx, tenantID, projectID)
	if err != nil {
		return err
	}
	return s.projects.Delete(ctx, project.ID)
}
