package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project is a container for tasks, owned by a tenant.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Status      ProjectStatus
	TenantID    uuid.UUID
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject creates a project in planning state.
func NewProject(name string, tenantID, createdBy uuid.UUID, description *string) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Status:      ProjectPlanning,
		TenantID:    tenantID,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename changes the project name and bumps the modification timestamp.
func (p *Project) Rename(name string) error {
	if err := validateProjectName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus transitions the project to next. A cancelled project can only
// go back to planning; every other transition is legal. Status must never be
// assigned directly, so the rule cannot be bypassed.
func (p *Project) UpdateStatus(next ProjectStatus) error {
	if !next.Valid() {
		return ErrIllegalTransition
	}
	if p.Status == ProjectCancelled && next != ProjectPlanning {
		return ErrIllegalTransition
	}

	p.Status = next
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func validateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
