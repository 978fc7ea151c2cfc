package finance

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category labels transactions of one type. (name, type) is unique per
// organization; categories are soft-deleted via IsActive.
type Category struct {
	shared.TenantEntity
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_tenant_name_type,priority:2"`
	Type        TransactionType `gorm:"type:varchar(20);not null;uniqueIndex:idx_category_tenant_name_type,priority:3"`
	Description string          `gorm:"type:varchar(500)"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "finance_categories"
}

// NewCategory creates a new active category
func NewCategory(tenantID uuid.UUID, name string, catType TransactionType) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if !catType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Category type must be expense, sale or income")
	}

	return &Category{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Type:         catType,
		IsActive:     true,
	}, nil
}

// Update updates name and description
func (c *Category) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the category
func (c *Category) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate restores a deactivated category
func (c *Category) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}
