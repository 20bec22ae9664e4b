package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "in_review"
	TaskDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskInReview, TaskDone:
		return true
	}
	return false
}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work inside a project. TenantID is a denormalized copy of
// the owning project's tenant and must always match it.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	ProjectID   uuid.UUID
	TenantID    uuid.UUID
	CreatedBy   uuid.UUID
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates a task in todo state with medium priority unless one is
// given.
func NewTask(title string, projectID, tenantID, createdBy uuid.UUID, description *string, priority TaskPriority, assignedTo *uuid.UUID, dueDate *time.Time) (*Task, error) {
	if err := validateTaskTitle(title); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskTodo,
		Priority:    priority,
		ProjectID:   projectID,
		TenantID:    tenantID,
		CreatedBy:   createdBy,
		AssignedTo:  assignedTo,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Retitle changes the task title and bumps the modification timestamp.
func (t *Task) Retitle(title string) error {
	if err := validateTaskTitle(title); err != nil {
		return err
	}
	t.Title = title
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus transitions the task to next. A done task cannot go straight
// back to todo; it has to pass through in_progress first. Every other
// transition is legal.
func (t *Task) UpdateStatus(next TaskStatus) error {
	if !next.Valid() {
		return ErrIllegalTransition
	}
	if t.Status == TaskDone && next == TaskTodo {
		return ErrIllegalTransition
	}

	t.Status = next
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// AssignTo sets the assignee without touching the status.
func (t *Task) AssignTo(userID uuid.UUID) {
	t.AssignedTo = &userID
	t.UpdatedAt = time.Now().UTC()
}

func validateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
