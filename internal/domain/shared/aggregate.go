package shared

import "github.com/google/uuid"

// TenantAggregateRoot extends TenantEntity with a version counter for
// optimistic locking. Aggregates are read, mutated in memory and written
// back as one unit; the persistence layer compares versions on write and
// rejects a stale writer with ErrConcurrencyConflict.
type TenantAggregateRoot struct {
	TenantEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *TenantAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *TenantAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewTenantAggregateRoot creates a new tenant-scoped aggregate root
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		TenantEntity: NewTenantEntity(tenantID),
		Version:      1,
	}
}

// NewTenantAggregateRootWithCreator creates a new aggregate root with creator info
func NewTenantAggregateRootWithCreator(tenantID, createdBy uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		TenantEntity: NewTenantEntityWithCreator(tenantID, createdBy),
		Version:      1,
	}
}
