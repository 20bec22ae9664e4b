package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	projectID := uuid.New()
	tenantID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name     string
		title    string
		priority TaskPriority
		wantErr  error
	}{
		{
			name:  "valid task",
			title: "Write docs",
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrTitleRequired,
		},
		{
			name:    "whitespace only title",
			title:   "  \t ",
			wantErr: ErrTitleRequired,
		},
		{
			name:    "title over limit",
			title:   strings.Repeat("x", 201),
			wantErr: ErrTitleTooLong,
		},
		{
			name:     "explicit priority",
			title:    "Urgent fix",
			priority: PriorityUrgent,
		},
		{
			name:     "unknown priority",
			title:    "Broken",
			priority: TaskPriority("critical"),
			wantErr:  ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.title, projectID, tenantID, userID, nil, tt.priority, nil, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTask error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if task.Status != TaskTodo {
				t.Errorf("Status = %q, want %q", task.Status, TaskTodo)
			}
			wantPriority := tt.priority
			if wantPriority == "" {
				wantPriority = PriorityMedium
			}
			if task.Priority != wantPriority {
				t.Errorf("Priority = %q, want %q", task.Priority, wantPriority)
			}
			if task.TenantID != tenantID {
				t.Errorf("TenantID = %v, want %v", task.TenantID, tenantID)
			}
		})
	}
}

func TestTask_UpdateStatus(t *testing.T) {
	all := []TaskStatus{TaskTodo, TaskInProgress, TaskInReview, TaskDone}

	for _, from := range all {
		for _, to := range all {
			from, to := from, to
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				task, err := NewTask("t", uuid.New(), uuid.New(), uuid.New(), nil, "", nil, nil)
				if err != nil {
					t.Fatal(err)
				}
				task.Status = from
				before := task.UpdatedAt

				err = task.UpdateStatus(to)
				if from == TaskDone && to == TaskTodo {
					if !errors.Is(err, ErrIllegalTransition) {
						t.Fatalf("UpdateStatus error = %v, want ErrIllegalTransition", err)
					}
					if task.Status != TaskDone {
						t.Errorf("Status changed on illegal transition: %q", task.Status)
					}
					return
				}
				if err != nil {
					t.Fatalf("UpdateStatus(%q) error = %v", to, err)
				}
				if task.Status != to {
					t.Errorf("Status = %q, want %q", task.Status, to)
				}
				if task.UpdatedAt.Before(before) {
					t.Error("UpdatedAt not bumped")
				}
			})
		}
	}
}

func TestTask_DoneBackToTodoViaInProgress(t *testing.T) {
	task, err := NewTask("t", uuid.New(), uuid.New(), uuid.New(), nil, "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	task.Status = TaskDone

	if err := task.UpdateStatus(TaskInProgress); err != nil {
		t.Fatalf("done -> in_progress error = %v", err)
	}
	if err := task.UpdateStatus(TaskTodo); err != nil {
		t.Fatalf("in_progress -> todo error = %v", err)
	}
	if task.Status != TaskTodo {
		t.Errorf("Status = %q, want %q", task.Status, TaskTodo)
	}
}

func TestTask_AssignTo(t *testing.T) {
	task, err := NewTask("t", uuid.New(), uuid.New(), uuid.New(), nil, "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	task.Status = TaskInReview
	assignee := uuid.New()

	task.AssignTo(assignee)

	if task.AssignedTo == nil || *task.AssignedTo != assignee {
		t.Errorf("AssignedTo = %v, want %v", task.AssignedTo, assignee)
	}
	if task.Status != TaskInReview {
		t.Errorf("assignment changed status to %q", task.Status)
	}
}
