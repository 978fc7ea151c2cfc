package task

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents a task's lifecycle state
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid reports whether the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the task still counts as open work
func (s Status) IsActive() bool {
	return s == StatusTodo || s == StatusInProgress
}

// Priority represents a task's urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a standalone work item. Assignees reference employees;
// setting assignees replaces the whole set.
type Task struct {
	shared.TenantEntity
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Status      Status         `gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority    Priority       `gorm:"type:varchar(10);not null;default:'medium'"`
	DueDate     *time.Time     `gorm:"index"`
	AssigneeIDs pq.StringArray `gorm:"type:text[]"`
	BoardID     *uuid.UUID     `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new task in todo status
func NewTask(tenantID uuid.UUID, title string, priority Priority) (*Task, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium or high")
	}

	return &Task{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Title:        title,
		Status:       StatusTodo,
		Priority:     priority,
	}, nil
}

// UpdateDetails updates title and description
func (t *Task) UpdateDetails(title, description string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	t.Title = title
	t.Description = description
	t.UpdatedAt = time.Now()
	return nil
}

// ChangeStatus moves the task to a new lifecycle state
func (t *Task) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be todo, in_progress, completed or cancelled")
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// ChangePriority updates the task priority
func (t *Task) ChangePriority(priority Priority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium or high")
	}
	t.Priority = priority
	t.UpdatedAt = time.Now()
	return nil
}

// SetDueDate sets or clears the due date
func (t *Task) SetDueDate(dueDate *time.Time) {
	t.DueDate = dueDate
	t.UpdatedAt = time.Now()
}

// SetAssignees replaces the assignee set
func (t *Task) SetAssignees(assigneeIDs []string) {
	t.AssigneeIDs = assigneeIDs
	t.UpdatedAt = time.Now()
}

// LinkBoard attaches the task to a board
func (t *Task) LinkBoard(boardID *uuid.UUID) {
	t.BoardID = boardID
	t.UpdatedAt = time.Now()
}

// IsOverdue reports whether an active task has passed its due date
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status.IsActive() && t.DueDate != nil && t.DueDate.Before(now)
}
