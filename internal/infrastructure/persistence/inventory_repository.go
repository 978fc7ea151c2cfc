package persistence

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/inventory"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryRepository implements ItemRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Save creates or updates an inventory item
func (r *GormInventoryRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithAdjustment persists the item's new quantity together with its audit
// record in one transaction. Either both rows land or neither does.
func (r *GormInventoryRepository) SaveWithAdjustment(ctx context.Context, item *inventory.Item, adjustment *inventory.Adjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(adjustment).Error; err != nil {
			return err
		}
		return tx.Save(item).Error
	})
}

// FindByIDForTenant finds an inventory item by ID within a tenant
func (r *GormInventoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByProduct finds the item tracking a product within a tenant
func (r *GormInventoryRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForTenant finds all inventory items for a tenant matching the filter
func (r *GormInventoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}).Where("tenant_id = ?", tenantID), filter, true)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountForTenant counts inventory items for a tenant matching the filter
func (r *GormInventoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}).Where("tenant_id = ?", tenantID), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLowStock returns all items at or below their low stock threshold
func (r *GormInventoryRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]inventory.Item, error) {
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND quantity <= low_stock_threshold", tenantID).
		Order("quantity ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountLowStock counts items at or below their low stock threshold.
// The predicate must stay identical to FindLowStock.
func (r *GormInventoryRepository) CountLowStock(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("tenant_id = ? AND quantity <= low_stock_threshold", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetLowStockCount reports the low stock count for metrics collection
func (r *GormInventoryRepository) GetLowStockCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return r.CountLowStock(ctx, tenantID)
}

// TotalValue sums quantity * selling_price across the tenant's inventory
func (r *GormInventoryRepository) TotalValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Select("COALESCE(SUM(quantity * selling_price), 0) AS total").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// DeleteForTenant hard-deletes an inventory item within a tenant
func (r *GormInventoryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := likeContains(filter.Search)
		query = query.Where(
			"product_id IN (SELECT id FROM products WHERE tenant_id = inventory_items.tenant_id AND (name ILIKE ? OR sku ILIKE ?))",
			pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("quantity <= low_stock_threshold")
			}
		case "location":
			query = query.Where("location = ?", value)
		}
	}

	if paginate {
		if filter.Page > 0 && filter.PageSize > 0 {
			query = query.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		orderBy := ValidateSortField(filter.OrderBy, InventorySortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// Ensure GormInventoryRepository implements ItemRepository
var _ inventory.ItemRepository = (*GormInventoryRepository)(nil)

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByItem returns an item's audit trail, newest first
func (r *GormAdjustmentRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.Adjustment, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&inventory.Adjustment{}).
		Where("tenant_id = ? AND item_id = ?", tenantID, itemID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var adjustments []inventory.Adjustment
	query := base.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}
	return adjustments, total, nil
}

// Ensure GormAdjustmentRepository implements AdjustmentRepository
var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
