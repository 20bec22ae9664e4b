package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated organization. Every user, project and task belongs to
// exactly one tenant, and no query may cross that boundary.
type Tenant struct {
	ID        uuid.UUID
	Name      string
	Domain    string
	CreatedAt time.Time
}

// NewTenant creates a tenant with a fresh id and creation timestamp.
func NewTenant(name, domain string) (*Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTenantNameRequired
	}
	if strings.TrimSpace(domain) == "" {
		return nil, ErrDomainRequired
	}

	return &Tenant{
		ID:        uuid.New(),
		Name:      name,
		Domain:    domain,
		CreatedAt: time.Now().UTC(),
	}, nil
}
