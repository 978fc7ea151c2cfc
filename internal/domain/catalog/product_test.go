package catalog

import (
	"strings"
	"testing"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	p, err := NewProduct(tenantID, "Cordless Drill", "drl-018v", decimal.NewFromFloat(89.90))
	require.NoError(t, err)
	assert.Equal(t, tenantID, p.TenantID)
	assert.Equal(t, "DRL-018V", p.SKU, "SKU is normalized to uppercase")
	assert.True(t, p.IsActive)
}

func TestNewProductValidation(t *testing.T) {
	tenantID := uuid.New()
	price := decimal.NewFromInt(10)

	tests := []struct {
		name  string
		pname string
		sku   string
		price decimal.Decimal
		code  string
	}{
		{"empty name", "", "SKU-1", price, "INVALID_NAME"},
		{"overlong name", strings.Repeat("x", 201), "SKU-1", price, "INVALID_NAME"},
		{"empty sku", "Drill", "", price, "INVALID_SKU"},
		{"overlong sku", "Drill", strings.Repeat("A", 51), price, "INVALID_SKU"},
		{"sku with spaces", "Drill", "SKU 1", price, "INVALID_SKU"},
		{"sku with symbols", "Drill", "SKU#1", price, "INVALID_SKU"},
		{"negative price", "Drill", "SKU-1", decimal.NewFromInt(-1), "INVALID_PRICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tenantID, tt.pname, tt.sku, tt.price)
			var derr *shared.DomainError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.code, derr.Code)
		})
	}
}

func TestProductUpdate(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Drill", "DRL-1", decimal.NewFromInt(80))
	require.NoError(t, err)

	require.NoError(t, p.Update("Impact Drill", "brushless", "power-tools"))
	assert.Equal(t, "Impact Drill", p.Name)
	assert.Equal(t, "power-tools", p.Category)
	assert.Error(t, p.Update("", "", ""))

	require.NoError(t, p.UpdateSKU("drl-2"))
	assert.Equal(t, "DRL-2", p.SKU)
	assert.Error(t, p.UpdateSKU("bad sku"))

	require.NoError(t, p.UpdatePrice(decimal.NewFromInt(95)))
	assert.Error(t, p.UpdatePrice(decimal.NewFromInt(-5)))
}

func TestProductActivation(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Drill", "DRL-1", decimal.NewFromInt(80))
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive)
	p.Activate()
	assert.True(t, p.IsActive)
}
