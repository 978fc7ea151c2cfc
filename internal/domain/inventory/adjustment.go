package inventory

import (
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AdjustmentType classifies a quantity mutation
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "add"
	AdjustmentRemove AdjustmentType = "remove"
	AdjustmentSet    AdjustmentType = "set"
)

// IsValid reports whether the adjustment type is known
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentAdd, AdjustmentRemove, AdjustmentSet:
		return true
	}
	return false
}

// Adjustment is an immutable audit record of a quantity change.
// One row is written per successful mutation; failed mutations write nothing.
type Adjustment struct {
	shared.TenantEntity
	ItemID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	AdjustmentType   AdjustmentType `gorm:"type:varchar(10);not null"`
	PreviousQuantity int            `gorm:"not null"`
	NewQuantity      int            `gorm:"not null"`
	Reason           string         `gorm:"type:varchar(500)"`
	AdjustedBy       uuid.UUID      `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Adjustment) TableName() string {
	return "inventory_adjustments"
}

// NewAdjustment records a completed quantity change
func NewAdjustment(item *Item, adjustmentType AdjustmentType, previousQuantity int, reason string, adjustedBy uuid.UUID) *Adjustment {
	return &Adjustment{
		TenantEntity:     shared.NewTenantEntity(item.TenantID),
		ItemID:           item.ID,
		ProductID:        item.ProductID,
		AdjustmentType:   adjustmentType,
		PreviousQuantity: previousQuantity,
		NewQuantity:      item.Quantity,
		Reason:           reason,
		AdjustedBy:       adjustedBy,
	}
}
