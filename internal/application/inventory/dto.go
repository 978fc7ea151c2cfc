package inventory

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest starts stock tracking for a product
type CreateItemRequest struct {
	ProductID         uuid.UUID        `json:"product_id" binding:"required"`
	Quantity          int              `json:"quantity" binding:"min=0"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	Location          string           `json:"location" binding:"max=100"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// AdjustItemRequest mutates an item. Quantity changes require an adjustment
// type and produce an audit record; price, location and threshold changes
// do not.
type AdjustItemRequest struct {
	Quantity          *int                      `json:"quantity" binding:"omitempty,min=0"`
	AdjustmentType    inventory.AdjustmentType  `json:"adjustment_type" binding:"omitempty,oneof=add remove set"`
	Reason            string                    `json:"reason" binding:"max=500"`
	CostPrice         *decimal.Decimal          `json:"cost_price"`
	SellingPrice      *decimal.Decimal          `json:"selling_price"`
	Location          *string                   `json:"location" binding:"omitempty,max=100"`
	LowStockThreshold *int                      `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// ItemListFilter represents filter options for the inventory list
type ItemListFilter struct {
	Search    string     `form:"search"`
	ProductID *uuid.UUID `form:"product_id"`
	LowStock  bool       `form:"low_stock"`
	Location  string     `form:"location"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AdjustmentListFilter paginates an item's audit trail
type AdjustmentListFilter struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Quantity          int             `json:"quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Location          string          `json:"location"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	TotalValue        decimal.Decimal `json:"total_value"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AdjustmentResponse represents one audit record
type AdjustmentResponse struct {
	ID               uuid.UUID                `json:"id"`
	ItemID           uuid.UUID                `json:"item_id"`
	ProductID        uuid.UUID                `json:"product_id"`
	AdjustmentType   inventory.AdjustmentType `json:"adjustment_type"`
	PreviousQuantity int                      `json:"previous_quantity"`
	NewQuantity      int                      `json:"new_quantity"`
	Reason           string                   `json:"reason"`
	AdjustedBy       uuid.UUID                `json:"adjusted_by"`
	CreatedAt        time.Time                `json:"created_at"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		TenantID:          i.TenantID,
		ProductID:         i.ProductID,
		Quantity:          i.Quantity,
		CostPrice:         i.CostPrice,
		SellingPrice:      i.SellingPrice,
		Location:          i.Location,
		LowStockThreshold: i.LowStockThreshold,
		IsLowStock:        i.IsLowStock(),
		TotalValue:        i.TotalValue(),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain Items to ItemResponses
func ToItemResponses(items []inventory.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}

// ToAdjustmentResponse converts a domain Adjustment to AdjustmentResponse
func ToAdjustmentResponse(a *inventory.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:               a.ID,
		ItemID:           a.ItemID,
		ProductID:        a.ProductID,
		AdjustmentType:   a.AdjustmentType,
		PreviousQuantity: a.PreviousQuantity,
		NewQuantity:      a.NewQuantity,
		Reason:           a.Reason,
		AdjustedBy:       a.AdjustedBy,
		CreatedAt:        a.CreatedAt,
	}
}

// ToAdjustmentResponses converts a slice of domain Adjustments to AdjustmentResponses
func ToAdjustmentResponses(adjustments []inventory.Adjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return responses
}
