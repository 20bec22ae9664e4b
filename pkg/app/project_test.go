package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/domain"
)

func TestProjectService_CreateAndGet(t *testing.T) {
	svc := NewProjectService(newMemProjects())
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	desc := "internal tooling"
	created, err := svc.Create(ctx, tenantID, userID, "Platform", &desc)
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if created.Status != domain.ProjectPlanning {
		t.Errorf("Status = %q, want %q", created.Status, domain.ProjectPlanning)
	}

	got, err := svc.Get(ctx, tenantID, created.ID)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got.Name != "Platform" {
		t.Errorf("Name = %q, want %q", got.Name, "Platform")
	}
}

func TestProjectService_Create_Invalid(t *testing.T) {
	svc := NewProjectService(newMemProjects())

	if _, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "", nil); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Create(empty name) error = %v, want ErrNameRequired", err)
	}
}

func TestProjectService_TenantIsolation(t *testing.T) {
	repo := newMemProjects()
	svc := NewProjectService(repo)
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	created, err := svc.Create(ctx, tenantA, uuid.New(), "Secret", nil)
	if err != nil {
		t.Fatal(err)
	}

	// Tenant B probing tenant A's project id gets the same answer as for a
	// nonexistent id.
	_, errForeign := svc.Get(ctx, tenantB, created.ID)
	_, errMissing := svc.Get(ctx, tenantA, uuid.New())
	if !errors.Is(errForeign, domain.ErrNotFound) {
		t.Errorf("cross-tenant Get error = %v, want ErrNotFound", errForeign)
	}
	if !errors.Is(errMissing, domain.ErrNotFound) {
		t.Errorf("missing id Get error = %v, want ErrNotFound", errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Error("cross-tenant and missing-id lookups are distinguishable")
	}

	// Same for update and delete.
	name := "Renamed"
	if _, err := svc.Update(ctx, tenantB, created.ID, ProjectUpdate{Name: &name}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-tenant Update error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, tenantB, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-tenant Delete error = %v, want ErrNotFound", err)
	}

	list, err := svc.List(ctx, tenantB)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("tenant B sees %d foreign projects", len(list))
	}
}

func TestProjectService_Update(t *testing.T) {
	svc := NewProjectService(newMemProjects())
	ctx := context.Background()
	tenantID := uuid.New()

	created, err := svc.Create(ctx, tenantID, uuid.New(), "Platform", nil)
	if err != nil {
		t.Fatal(err)
	}

	// Only provided fields change.
	status := domain.ProjectInProgress
	updated, err := svc.Update(ctx, tenantID, created.ID, ProjectUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update error = %v", err)
	}
	if updated.Name != "Platform" {
		t.Errorf("Name changed to %q on status-only update", updated.Name)
	}
	if updated.Status != domain.ProjectInProgress {
		t.Errorf("Status = %q, want %q", updated.Status, domain.ProjectInProgress)
	}

	// Cancelled projects only reopen into planning.
	cancelled := domain.ProjectCancelled
	if _, err := svc.Update(ctx, tenantID, created.ID, ProjectUpdate{Status: &cancelled}); err != nil {
		t.Fatal(err)
	}
	completed := domain.ProjectCompleted
	if _, err := svc.Update(ctx, tenantID, created.ID, ProjectUpdate{Status: &completed}); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("cancelled -> completed error = %v, want ErrIllegalTransition", err)
	}
	planning := domain.ProjectPlanning
	if _, err := svc.Update(ctx, tenantID, created.ID, ProjectUpdate{Status: &planning}); err != nil {
		t.Errorf("cancelled -> planning error = %v", err)
	}
}

func TestProjectService_Delete(t *testing.T) {
	svc := NewProjectService(newMemProjects())
	ctx := context.Background()
	tenantID := uuid.New()

	created, err := svc.Create(ctx, tenantID, uuid.New(), "Platform", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, tenantID, created.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, err := svc.Get(ctx, tenantID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
}
