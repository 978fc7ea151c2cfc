package board

import (
	"github.com/bizgrid/backend/internal/domain/shared"
)

// BoardRepository defines persistence for board aggregates. Save must
// compare the aggregate version and fail with ErrConcurrencyConflict when
// another writer got there first.
type BoardRepository interface {
	shared.TenantRepository[Board]
}
