package inventory

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item tracks stock for one product. There is exactly one item per
// (organization, product) pair. Quantity never goes negative; a reduction
// past zero is rejected before any state changes.
type Item struct {
	shared.TenantEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_tenant_product,priority:2"`
	Quantity          int             `gorm:"not null;default:0"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Location          string          `gorm:"type:varchar(100)"`
	LowStockThreshold int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item for a product
func NewItem(tenantID, productID uuid.UUID, quantity int, costPrice, sellingPrice decimal.Decimal) (*Item, error) {
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	return &Item{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ProductID:    productID,
		Quantity:     quantity,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
	}, nil
}

// ApplyAdjustment mutates the quantity according to the adjustment type and
// returns the previous quantity. The zero floor is enforced here: a remove
// past zero fails and leaves the item untouched.
func (i *Item) ApplyAdjustment(adjustmentType AdjustmentType, quantity int) (previous int, err error) {
	if quantity < 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be negative")
	}

	previous = i.Quantity
	switch adjustmentType {
	case AdjustmentAdd:
		i.Quantity = previous + quantity
	case AdjustmentRemove:
		if previous-quantity < 0 {
			return previous, shared.ErrQuantityBelowZero
		}
		i.Quantity = previous - quantity
	case AdjustmentSet:
		i.Quantity = quantity
	default:
		return previous, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type must be add, remove or set")
	}

	i.UpdatedAt = time.Now()
	return previous, nil
}

// UpdatePrices changes cost and selling price
func (i *Item) UpdatePrices(costPrice, sellingPrice decimal.Decimal) error {
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	i.CostPrice = costPrice
	i.SellingPrice = sellingPrice
	i.UpdatedAt = time.Now()
	return nil
}

// SetLocation updates the storage location
func (i *Item) SetLocation(location string) {
	i.Location = location
	i.UpdatedAt = time.Now()
}

// SetLowStockThreshold updates the low stock alert threshold
func (i *Item) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the item is at or below its threshold.
// The same predicate backs the low-stock listing and the dashboard counter.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// TotalValue returns quantity x selling price
func (i *Item) TotalValue() decimal.Decimal {
	return i.SellingPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
