package workforce

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/workforce"
	"github.com/google/uuid"
)

// CreateEmployeeRequest creates an employee record
type CreateEmployeeRequest struct {
	FirstName  string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string     `json:"last_name" binding:"required,min=1,max=100"`
	Email      string     `json:"email" binding:"required,email,max=255"`
	Phone      string     `json:"phone" binding:"max=50"`
	Position   string     `json:"position" binding:"max=100"`
	Department string     `json:"department" binding:"max=100"`
	HireDate   *time.Time `json:"hire_date"`
	UserID     *uuid.UUID `json:"user_id"`
}

// UpdateEmployeeRequest applies a partial update to an employee
type UpdateEmployeeRequest struct {
	FirstName  *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName   *string    `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email      *string    `json:"email" binding:"omitempty,email,max=255"`
	Phone      *string    `json:"phone" binding:"omitempty,max=50"`
	Position   *string    `json:"position" binding:"omitempty,max=100"`
	Department *string    `json:"department" binding:"omitempty,max=100"`
	HireDate   *time.Time `json:"hire_date"`
	Status     *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	UserID     *uuid.UUID `json:"user_id"`
}

// EmployeeListFilter represents filter options for the employee list
type EmployeeListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Department string `form:"department"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID                `json:"id"`
	TenantID   uuid.UUID                `json:"tenant_id"`
	FirstName  string                   `json:"first_name"`
	LastName   string                   `json:"last_name"`
	Email      string                   `json:"email"`
	Phone      string                   `json:"phone"`
	Position   string                   `json:"position"`
	Department string                   `json:"department"`
	Status     workforce.EmployeeStatus `json:"status"`
	HireDate   *time.Time               `json:"hire_date"`
	UserID     *uuid.UUID               `json:"user_id"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *workforce.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		TenantID:   e.TenantID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		Department: e.Department,
		Status:     e.Status,
		HireDate:   e.HireDate,
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain Employees to EmployeeResponses
func ToEmployeeResponses(employees []workforce.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i])
	}
	return responses
}
