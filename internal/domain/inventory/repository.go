package inventory

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRepository defines persistence for inventory items
type ItemRepository interface {
	shared.TenantRepository[Item]

	// FindByProduct finds the item tracking a product, if any
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*Item, error)

	// FindLowStock returns all items with quantity <= low_stock_threshold
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]Item, error)

	// CountLowStock counts items with quantity <= low_stock_threshold
	CountLowStock(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// TotalValue returns the sum of quantity * selling_price across the organization
	TotalValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)

	// SaveWithAdjustment persists the item's new quantity together with its
	// audit record in one transaction
	SaveWithAdjustment(ctx context.Context, item *Item, adjustment *Adjustment) error
}

// AdjustmentRepository defines persistence for adjustment audit records
type AdjustmentRepository interface {
	// FindByItem returns an item's audit trail, newest first
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]Adjustment, int64, error)
}
