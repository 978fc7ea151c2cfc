package workforce

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/workforce"
	"github.com/google/uuid"
)

// EmployeeService handles employee management operations
type EmployeeService struct {
	employeeRepo workforce.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo workforce.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this email already exists")
	}

	employee, err := workforce.NewEmployee(tenantID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := employee.UpdateContact(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Position != "" || req.Department != "" {
		employee.UpdatePosition(req.Position, req.Department)
	}
	if req.HireDate != nil {
		employee.SetHireDate(*req.HireDate)
	}
	if req.UserID != nil {
		employee.LinkUser(*req.UserID)
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, tenantID, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List retrieves employees with filtering and pagination
func (s *EmployeeService) List(ctx context.Context, tenantID uuid.UUID, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
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
	if filter.Department != "" {
		domainFilter.Filters["department"] = filter.Department
	}

	employees, err := s.employeeRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.employeeRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEmployeeResponses(employees), total, nil
}

// Update applies a partial update to an employee
func (s *EmployeeService) Update(ctx context.Context, tenantID, employeeID uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil || req.Email != nil || req.Phone != nil {
		firstName := employee.FirstName
		lastName := employee.LastName
		email := employee.Email
		phone := employee.Phone
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}

		if email != employee.Email {
			exists, err := s.employeeRepo.ExistsByEmail(ctx, tenantID, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this email already exists")
			}
		}

		if err := employee.UpdateContact(firstName, lastName, email, phone); err != nil {
			return nil, err
		}
	}

	if req.Position != nil || req.Department != nil {
		position := employee.Position
		department := employee.Department
		if req.Position != nil {
			position = *req.Position
		}
		if req.Department != nil {
			department = *req.Department
		}
		employee.UpdatePosition(position, department)
	}

	if req.HireDate != nil {
		employee.SetHireDate(*req.HireDate)
	}

	if req.UserID != nil {
		employee.LinkUser(*req.UserID)
	}

	if req.Status != nil {
		switch workforce.EmployeeStatus(*req.Status) {
		case workforce.EmployeeStatusActive:
			employee.Activate()
		case workforce.EmployeeStatusInactive:
			employee.Deactivate()
		}
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Delete soft-deletes an employee by flipping the status to inactive
func (s *EmployeeService) Delete(ctx context.Context, tenantID, employeeID uuid.UUID) error {
	employee, err := s.employeeRepo.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return err
	}

	employee.Deactivate()
	return s.employeeRepo.Save(ctx, employee)
}
