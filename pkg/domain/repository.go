package domain

import (
	"context"

	"github.com/google/uuid"
)

// The repository contracts below are the tenant-isolation boundary. Every
// tenant-scoped lookup carries the caller's tenant id; a row that exists but
// belongs to another tenant is reported as ErrNotFound, identically to a row
// that does not exist at all.

// TenantRepository persists tenants. Tenants are the isolation roots and are
// the one entity looked up without a tenant predicate.
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	ExistsByDomain(ctx context.Context, domain string) (bool, error)
}

// UserRepository persists users. GetByID and GetByEmail are unscoped because
// they run during authentication, before a tenant identity is established.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByTenant(ctx context.Context, tenantID uuid.UUID) ([]*User, error)
	Update(ctx context.Context, user *User) error
}

// ProjectRepository persists projects with tenant scoping.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByTenantAndID(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)
	GetByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository persists tasks with tenant scoping.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByTenantAndID(ctx context.Context, tenantID, id uuid.UUID) (*Task, error)
	GetByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*Task, error)
	GetByAssignee(ctx context.Context, tenantID, userID uuid.UUID) ([]*Task, error)
	GetByStatus(ctx context.Context, tenantID uuid.UUID, status TaskStatus) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Registrar atomically persists a new tenant together with its first user.
// Registration is a single unit of work so a failed user insert can never
// leave an orphan tenant behind.
type Registrar interface {
	CreateTenantWithOwner(ctx context.Context, tenant *Tenant, user *User) error
}

// MFASecretRepository persists per-user TOTP secrets.
type MFASecretRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, secret string) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
