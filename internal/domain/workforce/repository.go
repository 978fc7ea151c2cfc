package workforce

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository defines persistence for employees
type EmployeeRepository interface {
	shared.TenantRepository[Employee]

	// ExistsByEmail checks whether an email is taken within one organization
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// CountActive returns the number of active employees in the organization
	CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
