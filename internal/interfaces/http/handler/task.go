package handler

import (
	apptask "github.com/bizgrid/backend/internal/application/task"
	"github.com/gin-gonic/gin"
)

// TaskHandler exposes task endpoints
type TaskHandler struct {
	BaseHandler
	taskService *apptask.TaskService
}

func NewTaskHandler(taskService *apptask.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create adds a task
func (h *TaskHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req apptask.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.taskService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single task
func (h *TaskHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	resp, err := h.taskService.GetByID(c.Request.Context(), tenantID, taskID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of tasks
func (h *TaskHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter apptask.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	h.SuccessWithMeta(c, tasks, total, page, limit)
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req apptask.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.taskService.Update(c.Request.Context(), tenantID, taskID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), tenantID, taskID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
