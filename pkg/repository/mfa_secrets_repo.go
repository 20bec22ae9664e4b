package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

// MFASecretsRepository persists per-user TOTP secrets.
type MFASecretsRepository struct {
	db *sql.DB
}

// NewMFASecretsRepository creates an MFA secrets repository.
func NewMFASecretsRepository(db *sql.DB) *MFASecretsRepository {
	return &MFASecretsRepository{db: db}
}

// Upsert stores or replaces the user's TOTP secret.
func (r *MFASecretsRepository) Upsert(ctx context.Context, userID uuid.UUID, secret string) error {
	query := `
		INSERT INTO mfa_secrets (user_id, secret, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET secret = EXCLUDED.secret, created_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, secret)
	return err
}

// GetByUserID retrieves the user's TOTP secret.
func (r *MFASecretsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (string, error) {
	var secret string
	err := r.db.QueryRowContext(ctx, `SELECT secret FROM mfa_secrets WHERE user_id = $1`, userID).Scan(&secret)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return secret, nil
}

// Delete removes the user's TOTP secret.
func (r *MFASecretsRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mfa_secrets WHERE user_id = $1`, userID)
	return err
}
