package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account scoped to a single tenant.
type User struct {
	ID           uuid.UUID
	Email        string
	TenantID     uuid.UUID
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	MFAEnabled   bool
	CreatedAt    time.Time
}

// NewUser creates an active user in the given tenant. The password must
// already be hashed; plaintext never reaches the entity.
func NewUser(email string, tenantID uuid.UUID, passwordHash, firstName, lastName string) (*User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, ErrFirstNameRequired
	}

	return &User{
		ID:           uuid.New(),
		Email:        email,
		TenantID:     tenantID,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
