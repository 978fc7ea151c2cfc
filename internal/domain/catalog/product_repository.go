package catalog

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence for products
type ProductRepository interface {
	shared.TenantRepository[Product]

	// FindBySKU finds a product by its SKU within one organization
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)

	// ExistsBySKU checks whether a SKU is taken within one organization
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
}
