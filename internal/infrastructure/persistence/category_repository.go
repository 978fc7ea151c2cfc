package persistence

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/finance"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements finance.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *finance.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// FindByIDForTenant finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Category, error) {
	var category finance.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ExistsByNameAndType checks the per-tenant (name, type) uniqueness
func (r *GormCategoryRepository) ExistsByNameAndType(ctx context.Context, tenantID uuid.UUID, name string, catType finance.TransactionType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&finance.Category{}).
		Where("tenant_id = ? AND name = ? AND type = ?", tenantID, name, catType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAllForTenant finds all categories for a tenant matching the filter
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Category, error) {
	var categories []finance.Category
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Category{}).Where("tenant_id = ?", tenantID), filter, true)
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountForTenant counts categories for a tenant matching the filter
func (r *GormCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Category{}).Where("tenant_id = ?", tenantID), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteForTenant hard-deletes a category within a tenant. API deletion is
// a soft delete done via Save.
func (r *GormCategoryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Category{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := likeContains(filter.Search)
		query = query.Where("name ILIKE ?", pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	if paginate {
		if filter.Page > 0 && filter.PageSize > 0 {
			query = query.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ finance.CategoryRepository = (*GormCategoryRepository)(nil)
