package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name      string
		email     string
		firstName string
		wantErr   error
	}{
		{
			name:      "valid user",
			email:     "jane@acme.com",
			firstName: "Jane",
		},
		{
			name:      "missing at sign",
			email:     "jane.acme.com",
			firstName: "Jane",
			wantErr:   ErrInvalidEmail,
		},
		{
			name:      "empty email",
			email:     "",
			firstName: "Jane",
			wantErr:   ErrInvalidEmail,
		},
		{
			name:      "empty first name",
			email:     "jane@acme.com",
			firstName: "  ",
			wantErr:   ErrFirstNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.email, tenantID, "hash", tt.firstName, "Doe")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewUser error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !u.IsActive {
				t.Error("new user should be active")
			}
			if u.TenantID != tenantID {
				t.Errorf("TenantID = %v, want %v", u.TenantID, tenantID)
			}
		})
	}
}

func TestNewTenant(t *testing.T) {
	if _, err := NewTenant("", "acme"); !errors.Is(err, ErrTenantNameRequired) {
		t.Errorf("empty name error = %v, want ErrTenantNameRequired", err)
	}
	if _, err := NewTenant("Acme", " "); !errors.Is(err, ErrDomainRequired) {
		t.Errorf("blank domain error = %v, want ErrDomainRequired", err)
	}

	tenant, err := NewTenant("Acme", "acme")
	if err != nil {
		t.Fatalf("NewTenant error = %v", err)
	}
	if tenant.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
}

func TestUser_FullName(t *testing.T) {
	u := &User{FirstName: "Jane", LastName: "Doe"}
	if got := u.FullName(); got != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", got, "Jane Doe")
	}

	u = &User{FirstName: "Jane"}
	if got := u.FullName(); got != "Jane" {
		t.Errorf("FullName = %q, want %q", got, "Jane")
	}
}
