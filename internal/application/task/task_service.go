package task

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/board"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/task"
	"github.com/google/uuid"
)

// TaskService handles standalone work item management
type TaskService struct {
	taskRepo  task.TaskRepository
	boardRepo board.BoardRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo task.TaskRepository, boardRepo board.BoardRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
	}
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	newTask, err := task.NewTask(tenantID, req.Title, req.Priority)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := newTask.UpdateDetails(req.Title, req.Description); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		newTask.SetDueDate(req.DueDate)
	}
	if len(req.AssigneeIDs) > 0 {
		newTask.SetAssignees(req.AssigneeIDs)
	}
	if req.BoardID != nil {
		if err := s.checkBoard(ctx, tenantID, *req.BoardID); err != nil {
			return nil, err
		}
		newTask.LinkBoard(req.BoardID)
	}

	if err := s.taskRepo.Save(ctx, newTask); err != nil {
		return nil, err
	}

	response := ToTaskResponse(newTask)
	return &response, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, tenantID, taskID uuid.UUID) (*TaskResponse, error) {
	found, err := s.taskRepo.FindByIDForTenant(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	response := ToTaskResponse(found)
	return &response, nil
}

// List retrieves tasks with filtering and pagination
func (s *TaskService) List(ctx context.Context, tenantID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.Limit > 0 {
		domainFilter.PageSize = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.AssigneeID != "" {
		domainFilter.Filters["assignee_id"] = filter.AssigneeID
	}
	if filter.BoardID != nil {
		domainFilter.Filters["board_id"] = *filter.BoardID
	}
	if filter.DueBefore != nil {
		domainFilter.Filters["due_before"] = *filter.DueBefore
	}
	if filter.DueAfter != nil {
		domainFilter.Filters["due_after"] = *filter.DueAfter
	}

	tasks, err := s.taskRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.taskRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTaskResponses(tasks), total, nil
}

// Update applies a partial update to a task
func (s *TaskService) Update(ctx context.Context, tenantID, taskID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	found, err := s.taskRepo.FindByIDForTenant(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil {
		title := found.Title
		description := found.Description
		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := found.UpdateDetails(title, description); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := found.ChangeStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	if req.Priority != nil {
		if err := found.ChangePriority(*req.Priority); err != nil {
			return nil, err
		}
	}

	if req.DueDate != nil {
		found.SetDueDate(req.DueDate)
	} else if req.ClearDue {
		found.SetDueDate(nil)
	}

	if req.AssigneeIDs != nil {
		found.SetAssignees(req.AssigneeIDs)
	}

	if req.BoardID != nil {
		if err := s.checkBoard(ctx, tenantID, *req.BoardID); err != nil {
			return nil, err
		}
		found.LinkBoard(req.BoardID)
	}

	if err := s.taskRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	response := ToTaskResponse(found)
	return &response, nil
}

// Delete hard-deletes a task
func (s *TaskService) Delete(ctx context.Context, tenantID, taskID uuid.UUID) error {
	return s.taskRepo.DeleteForTenant(ctx, tenantID, taskID)
}

func (s *TaskService) checkBoard(ctx context.Context, tenantID, boardID uuid.UUID) error {
	if _, err := s.boardRepo.FindByIDForTenant(ctx, tenantID, boardID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_BOARD", "Board not found")
		}
		return err
	}
	return nil
}
