package task

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/task"
	"github.com/google/uuid"
)

// CreateTaskRequest creates a work item
type CreateTaskRequest struct {
	Title       string        `json:"title" binding:"required,min=1,max=200"`
	Description string        `json:"description" binding:"max=2000"`
	Priority    task.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time    `json:"due_date"`
	AssigneeIDs []string      `json:"assignee_ids" binding:"max=20,dive,uuid"`
	BoardID     *uuid.UUID    `json:"board_id"`
}

// UpdateTaskRequest applies a partial update; supplied assignees replace
// the whole set.
type UpdateTaskRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string        `json:"description" binding:"omitempty,max=2000"`
	Status      *task.Status   `json:"status" binding:"omitempty,oneof=todo in_progress completed cancelled"`
	Priority    *task.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time     `json:"due_date"`
	ClearDue    bool           `json:"clear_due_date"`
	AssigneeIDs []string       `json:"assignee_ids" binding:"omitempty,max=20,dive,uuid"`
	BoardID     *uuid.UUID     `json:"board_id"`
}

// TaskListFilter represents filter options for the task list
type TaskListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=todo in_progress completed cancelled"`
	Priority   string     `form:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID string     `form:"assignee_id" binding:"omitempty,uuid"`
	BoardID    *uuid.UUID `form:"board_id"`
	DueBefore  *time.Time `form:"due_before" time_format:"2006-01-02"`
	DueAfter   *time.Time `form:"due_after" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uuid.UUID     `json:"id"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      task.Status   `json:"status"`
	Priority    task.Priority `json:"priority"`
	DueDate     *time.Time    `json:"due_date"`
	AssigneeIDs []string      `json:"assignee_ids"`
	BoardID     *uuid.UUID    `json:"board_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ToTaskResponse converts a domain Task to TaskResponse
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		TenantID:    t.TenantID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		AssigneeIDs: t.AssigneeIDs,
		BoardID:     t.BoardID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of domain Tasks to TaskResponses
func ToTaskResponses(tasks []task.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToTaskResponse(&tasks[i])
	}
	return responses
}
