package app

// In-memory repository fakes. They mirror the Postgres implementations'
// contract exactly, in particular the tenant predicate on every scoped
// lookup.

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

type memUsers struct {
	byID map[uuid.UUID]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uuid.UUID]*domain.User)}
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) GetByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.byID {
		if u.TenantID == tenantID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

type memTenants struct {
	byID map[uuid.UUID]*domain.Tenant
}

func newMemTenants() *memTenants {
	return &memTenants{byID: make(map[uuid.UUID]*domain.Tenant)}
}

func (m *memTenants) Create(_ context.Context, t *domain.Tenant) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTenants) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTenants) GetByDomain(_ context.Context, d string) (*domain.Tenant, error) {
	for _, t := range m.byID {
		if t.Domain == d {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memTenants) ExistsByDomain(_ context.Context, d string) (bool, error) {
	for _, t := range m.byID {
		if t.Domain == d {
			return true, nil
		}
	}
	return false, nil
}

// memRegistrar writes tenant and user together, or neither when failUser is
// set, matching the all-or-nothing transaction in the Postgres registrar.
type memRegistrar struct {
	tenants  *memTenants
	users    *memUsers
	failUser bool
}

var errBoom = errors.New("boom")

func (m *memRegistrar) CreateTenantWithOwner(ctx context.Context, t *domain.Tenant, u *domain.User) error {
	if m.failUser {
		return errBoom
	}
	if err := m.tenants.Create(ctx, t); err != nil {
		return err
	}
	return m.users.Create(ctx, u)
}

type memSecrets struct {
	byUser map[uuid.UUID]string
}

func newMemSecrets() *memSecrets {
	return &memSecrets{byUser: make(map[uuid.UUID]string)}
}

func (m *memSecrets) Upsert(_ context.Context, userID uuid.UUID, secret string) error {
	m.byUser[userID] = secret
	return nil
}

func (m *memSecrets) GetByUserID(_ context.Context, userID uuid.UUID) (string, error) {
	s, ok := m.byUser[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return s, nil
}

func (m *memSecrets) Delete(_ context.Context, userID uuid.UUID) error {
	delete(m.byUser, userID)
	return nil
}

type memProjects struct {
	byID map[uuid.UUID]*domain.Project
}

func newMemProjects() *memProjects {
	return &memProjects{byID: make(map[uuid.UUID]*domain.Project)}
}

func (m *memProjects) Create(_ context.Context, p *domain.Project) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProjects) GetByTenantAndID(_ context.Context, tenantID, id uuid.UUID) (*domain.Project, error) {
	p, ok := m.byID[id]
	if !ok || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) GetByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.byID {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProjects) Update(_ context.Context, p *domain.Project) error {
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProjects) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memTasks struct {
	byID map[uuid.UUID]*domain.Task
}

func newMemTasks() *memTasks {
	return &memTasks{byID: make(map[uuid.UUID]*domain.Task)}
}

func (m *memTasks) Create(_ context.Context, t *domain.Task) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTasks) GetByTenantAndID(_ context.Context, tenantID, id uuid.UUID) (*domain.Task, error) {
	t, ok := m.byID[id]
	if !ok || t.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) GetByProject(_ context.Context, tenantID, projectID uuid.UUID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range m.byID {
		if t.TenantID == tenantID && t.ProjectID == projectID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTasks) GetByAssignee(_ context.Context, tenantID, userID uuid.UUID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range m.byID {
		if t.TenantID == tenantID && t.AssignedTo != nil && *t.AssignedTo == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTasks) GetByStatus(_ context.Context, tenantID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range m.byID {
		if t.TenantID == tenantID && t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTasks) Update(_ context.Context, t *domain.Task) error {
	if _, ok := m.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTasks) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
