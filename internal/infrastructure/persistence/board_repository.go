package persistence

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/board"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBoardRepository implements BoardRepository using GORM. Boards are
// written with an optimistic version check: an update only succeeds when
// the stored version still matches the one the caller loaded.
type GormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository creates a new GormBoardRepository
func NewGormBoardRepository(db *gorm.DB) *GormBoardRepository {
	return &GormBoardRepository{db: db}
}

// Save creates a board, or updates it guarded by the version counter.
// A stale writer gets ErrConcurrencyConflict.
func (r *GormBoardRepository) Save(ctx context.Context, b *board.Board) error {
	var exists bool
	if err := r.db.WithContext(ctx).
		Model(&board.Board{}).
		Select("count(*) > 0").
		Where("tenant_id = ? AND id = ?", b.TenantID, b.ID).
		Find(&exists).Error; err != nil {
		return err
	}

	if !exists {
		return r.db.WithContext(ctx).Create(b).Error
	}

	loadedVersion := b.GetVersion()
	result := r.db.WithContext(ctx).
		Model(&board.Board{}).
		Where("tenant_id = ? AND id = ? AND version = ?", b.TenantID, b.ID, loadedVersion).
		Updates(map[string]interface{}{
			"name":        b.Name,
			"description": b.Description,
			"columns":     b.Columns,
			"version":     loadedVersion + 1,
			"updated_at":  b.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	b.IncrementVersion()
	return nil
}

// FindByIDForTenant finds a board by ID within a tenant
func (r *GormBoardRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*board.Board, error) {
	var b board.Board
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindAllForTenant finds all boards for a tenant matching the filter
func (r *GormBoardRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]board.Board, error) {
	var boards []board.Board
	query := r.applyFilter(r.db.WithContext(ctx).Model(&board.Board{}).Where("tenant_id = ?", tenantID), filter, true)
	if err := query.Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// CountForTenant counts boards for a tenant matching the filter
func (r *GormBoardRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&board.Board{}).Where("tenant_id = ?", tenantID), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteForTenant hard-deletes a board and its embedded columns and cards
func (r *GormBoardRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&board.Board{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBoardRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := likeContains(filter.Search)
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
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

// Ensure GormBoardRepository implements BoardRepository
var _ board.BoardRepository = (*GormBoardRepository)(nil)
