package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

// TenantsRepository persists tenants.
type TenantsRepository struct {
	db *sql.DB
}

// NewTenantsRepository creates a tenants repository.
func NewTenantsRepository(db *sql.DB) *TenantsRepository {
	return &TenantsRepository{db: db}
}

// Create inserts a new tenant.
func (r *TenantsRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	return r.CreateTx(ctx, r.db, tenant)
}

// CreateTx inserts a new tenant using the given querier, so registration can
// run it inside the same transaction as the first user.
func (r *TenantsRepository) CreateTx(ctx context.Context, q Querier, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, domain, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := q.ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Domain,
		tenant.CreatedAt,
	)
	if isUniqueViolation(err, "tenants_domain_key") {
		return domain.ErrDomainTaken
	}
	return err
}

// GetByID retrieves a tenant by id.
func (r *TenantsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, domain, created_at
		FROM tenants
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByDomain retrieves a tenant by its unique domain string.
func (r *TenantsRepository) GetByDomain(ctx context.Context, d string) (*domain.Tenant, error) {
	query := `
		SELECT id, name, domain, created_at
		FROM tenants
		WHERE domain = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, d))
}

// ExistsByDomain checks whether a tenant with the given domain exists.
func (r *TenantsRepository) ExistsByDomain(ctx context.Context, d string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE domain = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, d).Scan(&exists)
	return exists, err
}

func (r *TenantsRepository) scanOne(row *sql.Row) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Domain,
		&tenant.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
