package repository

import (
	"context"
	"database/sql"

	"github.com/taskhive/taskhive/pkg/domain"
)

// Registrar implements atomic tenant+owner creation for registration. Both
// inserts run in one transaction so a failure cannot leave an orphan tenant.
type Registrar struct {
	db      *sql.DB
	tenants *TenantsRepository
	users   *UsersRepository
}

// NewRegistrar creates a registrar.
func NewRegistrar(db *sql.DB, tenants *TenantsRepository, users *UsersRepository) *Registrar {
	return &Registrar{db: db, tenants: tenants, users: users}
}

// CreateTenantWithOwner inserts the tenant and its first user atomically.
func (r *Registrar) CreateTenantWithOwner(ctx context.Context, tenant *domain.Tenant, user *domain.User) error {
	return Tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.tenants.CreateTx(ctx, tx, tenant); err != nil {
			return err
		}
		return r.users.CreateTx(ctx, tx, user)
	})
}
