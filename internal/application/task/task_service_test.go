package task

import (
	"context"
	"testing"
	"time"

	"github.com/bizgrid/backend/internal/domain/board"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskRepository is a mock implementation of task.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]task.Task, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountOverdue(ctx context.Context, tenantID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockBoardRepository is a mock implementation of board.BoardRepository
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Save(ctx context.Context, b *board.Board) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoardRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*board.Board, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]board.Board, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]board.Board), args.Error(1)
}

func (m *MockBoardRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBoardRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates task with defaults", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		service := NewTaskService(taskRepo, boardRepo)

		taskRepo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

		result, err := service.Create(ctx, tenantID, CreateTaskRequest{Title: "Ship invoices"})

		require.NoError(t, err)
		assert.Equal(t, task.StatusTodo, result.Status)
		assert.Equal(t, task.PriorityMedium, result.Priority)
	})

	t.Run("rejects unknown board", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		service := NewTaskService(taskRepo, boardRepo)

		boardID := uuid.New()
		boardRepo.On("FindByIDForTenant", ctx, tenantID, boardID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, tenantID, CreateTaskRequest{
			Title:   "Ship invoices",
			BoardID: &boardID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BOARD", domainErr.Code)
		taskRepo.AssertNotCalled(t, "Save")
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("assignees replace the previous set", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		service := NewTaskService(taskRepo, boardRepo)

		existing, err := task.NewTask(tenantID, "Ship invoices", task.PriorityHigh)
		require.NoError(t, err)
		existing.SetAssignees([]string{uuid.New().String(), uuid.New().String()})

		taskRepo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
		taskRepo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

		replacement := []string{uuid.New().String()}
		result, err := service.Update(ctx, tenantID, existing.ID, UpdateTaskRequest{
			AssigneeIDs: replacement,
		})

		require.NoError(t, err)
		assert.Equal(t, replacement, result.AssigneeIDs)
	})

	t.Run("clear_due_date removes the due date", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		service := NewTaskService(taskRepo, boardRepo)

		existing, err := task.NewTask(tenantID, "Ship invoices", task.PriorityLow)
		require.NoError(t, err)
		due := time.Now().Add(24 * time.Hour)
		existing.SetDueDate(&due)

		taskRepo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
		taskRepo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

		result, err := service.Update(ctx, tenantID, existing.ID, UpdateTaskRequest{ClearDue: true})

		require.NoError(t, err)
		assert.Nil(t, result.DueDate)
	})

	t.Run("invalid status transition input is rejected", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		boardRepo := new(MockBoardRepository)
		service := NewTaskService(taskRepo, boardRepo)

		existing, err := task.NewTask(tenantID, "Ship invoices", task.PriorityLow)
		require.NoError(t, err)

		taskRepo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)

		bad := task.Status("archived")
		_, err = service.Update(ctx, tenantID, existing.ID, UpdateTaskRequest{Status: &bad})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	taskRepo := new(MockTaskRepository)
	boardRepo := new(MockBoardRepository)
	service := NewTaskService(taskRepo, boardRepo)

	taskID := uuid.New()
	taskRepo.On("DeleteForTenant", ctx, tenantID, taskID).Return(nil)

	require.NoError(t, service.Delete(ctx, tenantID, taskID))
	taskRepo.AssertExpectations(t)
}
