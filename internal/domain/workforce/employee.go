package workforce

import (
	"strings"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeStatus represents the status of an employee
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee represents a member of the organization's workforce.
// Employees are never hard-deleted; deletion flips the status to inactive.
type Employee struct {
	shared.TenantEntity
	FirstName  string         `gorm:"type:varchar(100);not null"`
	LastName   string         `gorm:"type:varchar(100);not null"`
	Email      string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_employee_tenant_email,priority:2"`
	Phone      string         `gorm:"type:varchar(50)"`
	Position   string         `gorm:"type:varchar(100)"`
	Department string         `gorm:"type:varchar(100)"`
	Status     EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'"`
	HireDate   *time.Time
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new active employee
func NewEmployee(tenantID uuid.UUID, firstName, lastName, email string) (*Employee, error) {
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return &Employee{
		TenantEntity: shared.NewTenantEntity(tenantID),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(email),
		Status:       EmployeeStatusActive,
	}, nil
}

// UpdateContact updates name and email fields
func (e *Employee) UpdateContact(firstName, lastName, email, phone string) error {
	if firstName == "" || lastName == "" {
		return shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	e.FirstName = firstName
	e.LastName = lastName
	e.Email = strings.ToLower(email)
	e.Phone = phone
	e.UpdatedAt = time.Now()
	return nil
}

// UpdatePosition updates position and department
func (e *Employee) UpdatePosition(position, department string) {
	e.Position = position
	e.Department = department
	e.UpdatedAt = time.Now()
}

// SetHireDate sets the hire date
func (e *Employee) SetHireDate(hireDate time.Time) {
	e.HireDate = &hireDate
	e.UpdatedAt = time.Now()
}

// LinkUser attaches a login account to the employee
func (e *Employee) LinkUser(userID uuid.UUID) {
	e.UserID = &userID
	e.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the employee
func (e *Employee) Deactivate() {
	e.Status = EmployeeStatusInactive
	e.UpdatedAt = time.Now()
}

// Activate restores an inactive employee
func (e *Employee) Activate() {
	e.Status = EmployeeStatusActive
	e.UpdatedAt = time.Now()
}

// IsActive reports whether the employee is active
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
