package inventory

import (
	"context"
	"errors"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/inventory"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// InventoryService handles stock tracking and the adjustment engine
type InventoryService struct {
	itemRepo       inventory.ItemRepository
	adjustmentRepo inventory.AdjustmentRepository
	productRepo    catalog.ProductRepository
	metrics        *telemetry.BusinessMetrics
	logger         *zap.Logger
}

// NewInventoryService creates a new InventoryService. metrics may be nil.
func NewInventoryService(
	itemRepo inventory.ItemRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	productRepo catalog.ProductRepository,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		itemRepo:       itemRepo,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		metrics:        metrics,
		logger:         logger,
	}
}

// Create starts stock tracking for a product. Each product has at most
// one inventory item per organization.
func (s *InventoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	if _, err := s.itemRepo.FindByProduct(ctx, tenantID, req.ProductID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Inventory item for this product already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item, err := inventory.NewItem(tenantID, req.ProductID, req.Quantity, req.CostPrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}

	if req.Location != "" {
		item.SetLocation(req.Location)
	}
	if req.LowStockThreshold != nil {
		if err := item.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an inventory item by ID
func (s *InventoryService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves inventory items with filtering and pagination
func (s *InventoryService) List(ctx context.Context, tenantID uuid.UUID, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.Limit > 0 {
		domainFilter.PageSize = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}
	if filter.Location != "" {
		domainFilter.Filters["location"] = filter.Location
	}

	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToItemResponses(items), total, nil
}

// ListLowStock returns all items at or below their threshold
func (s *InventoryService) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Adjust applies a quantity adjustment and/or attribute updates to an item.
// A quantity change writes an audit record in the same transaction as the
// item save; a rejected change leaves both untouched.
func (s *InventoryService) Adjust(ctx context.Context, tenantID, itemID, adjustedBy uuid.UUID, req AdjustItemRequest) (*ItemResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "inventory", "adjust",
		attribute.String(telemetry.SpanAttrItemID, itemID.String()))
	defer span.End()

	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.applyAttributeUpdates(item, req); err != nil {
		return nil, err
	}

	if req.Quantity == nil {
		if err := s.itemRepo.Save(ctx, item); err != nil {
			return nil, err
		}
		response := ToItemResponse(item)
		return &response, nil
	}

	if req.AdjustmentType == "" {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type is required when quantity is supplied")
	}

	previous, err := item.ApplyAdjustment(req.AdjustmentType, *req.Quantity)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	adjustment := inventory.NewAdjustment(item, req.AdjustmentType, previous, req.Reason, adjustedBy)
	if err := s.itemRepo.SaveWithAdjustment(ctx, item, adjustment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "quantity_changed",
		attribute.String(telemetry.SpanAttrAdjustmentType, string(req.AdjustmentType)),
		attribute.Int(telemetry.SpanAttrQuantity, item.Quantity))

	s.logger.Info("Inventory adjusted",
		zap.String("item_id", item.ID.String()),
		zap.String("type", string(req.AdjustmentType)),
		zap.Int("previous", previous),
		zap.Int("new", item.Quantity))

	if s.metrics != nil {
		s.metrics.RecordAdjustment(ctx, tenantID, string(req.AdjustmentType))
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetAdjustments returns an item's audit trail, newest first
func (s *InventoryService) GetAdjustments(ctx context.Context, tenantID, itemID uuid.UUID, filter AdjustmentListFilter) ([]AdjustmentResponse, int64, error) {
	// Resolve the item first so a foreign or missing ID yields NOT_FOUND
	// instead of an empty trail.
	if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID); err != nil {
		return nil, 0, err
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.Limit > 0 {
		domainFilter.PageSize = filter.Limit
	}

	adjustments, total, err := s.adjustmentRepo.FindByItem(ctx, tenantID, itemID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAdjustmentResponses(adjustments), total, nil
}

// Delete hard-deletes an inventory item
func (s *InventoryService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.itemRepo.DeleteForTenant(ctx, tenantID, itemID)
}

func (s *InventoryService) applyAttributeUpdates(item *inventory.Item, req AdjustItemRequest) error {
	if req.CostPrice != nil || req.SellingPrice != nil {
		costPrice := item.CostPrice
		sellingPrice := item.SellingPrice
		if req.CostPrice != nil {
			costPrice = *req.CostPrice
		}
		if req.SellingPrice != nil {
			sellingPrice = *req.SellingPrice
		}
		if err := item.UpdatePrices(costPrice, sellingPrice); err != nil {
			return err
		}
	}
	if req.Location != nil {
		item.SetLocation(*req.Location)
	}
	if req.LowStockThreshold != nil {
		if err := item.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return err
		}
	}
	return nil
}

// TotalValue is used by the dashboard to value the whole inventory
func (s *InventoryService) TotalValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	return s.itemRepo.TotalValue(ctx, tenantID)
}
