package handler

import (
	appinventory "github.com/bizgrid/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes inventory item and adjustment endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *appinventory.InventoryService
}

func NewInventoryHandler(inventoryService *appinventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create tracks a product as an inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req appinventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.inventoryService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single inventory item
func (h *InventoryHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	resp, err := h.inventoryService.GetByID(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of inventory items
func (h *InventoryHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter appinventory.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	items, total, err := h.inventoryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	h.SuccessWithMeta(c, items, total, page, limit)
}

// ListLowStock returns every item at or below its low stock threshold
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	items, err := h.inventoryService.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Adjust changes an item's quantity or attributes and records who did it
func (h *InventoryHandler) Adjust(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user context")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var req appinventory.AdjustItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.inventoryService.Adjust(c.Request.Context(), tenantID, itemID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetAdjustments returns an item's adjustment audit trail
func (h *InventoryHandler) GetAdjustments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var filter appinventory.AdjustmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	adjustments, total, err := h.inventoryService.GetAdjustments(c.Request.Context(), tenantID, itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	h.SuccessWithMeta(c, adjustments, total, page, limit)
}

// Delete stops tracking an inventory item
func (h *InventoryHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), tenantID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
