package task

import (
	"context"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskRepository defines persistence for tasks
type TaskRepository interface {
	shared.TenantRepository[Task]

	// CountActive counts tasks in todo or in_progress status
	CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// CountOverdue counts active tasks whose due date is before now
	CountOverdue(ctx context.Context, tenantID uuid.UUID, now time.Time) (int64, error)
}
