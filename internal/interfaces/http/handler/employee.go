package handler

import (
	"github.com/bizgrid/backend/internal/application/workforce"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler exposes employee endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *workforce.EmployeeService
}

func NewEmployeeHandler(employeeService *workforce.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create adds an employee record
func (h *EmployeeHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req workforce.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.employeeService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single employee
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	employeeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	resp, err := h.employeeService.GetByID(c.Request.Context(), tenantID, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of employees
func (h *EmployeeHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter workforce.EmployeeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	employees, total, err := h.employeeService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	h.SuccessWithMeta(c, employees, total, page, limit)
}

// Update applies a partial update to an employee
func (h *EmployeeHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	employeeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforce.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.employeeService.Update(c.Request.Context(), tenantID, employeeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an employee record
func (h *EmployeeHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	employeeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), tenantID, employeeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
