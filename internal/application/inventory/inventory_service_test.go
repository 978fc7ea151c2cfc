package inventory

import (
	"context"
	"testing"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/inventory"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockItemRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) CountLowStock(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) TotalValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockItemRepository) SaveWithAdjustment(ctx context.Context, item *inventory.Item, adjustment *inventory.Adjustment) error {
	args := m.Called(ctx, item, adjustment)
	return args.Error(0)
}

// MockAdjustmentRepository is a mock implementation of inventory.AdjustmentRepository
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.Adjustment, int64, error) {
	args := m.Called(ctx, tenantID, itemID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]inventory.Adjustment), args.Get(1).(int64), args.Error(2)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func newTestService(itemRepo *MockItemRepository, adjustmentRepo *MockAdjustmentRepository, productRepo *MockProductRepository) *InventoryService {
	return NewInventoryService(itemRepo, adjustmentRepo, productRepo, nil, zap.NewNop())
}

func newTestItem(t *testing.T, tenantID uuid.UUID, quantity int) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(tenantID, uuid.New(), quantity, decimal.NewFromInt(5), decimal.NewFromInt(10))
	require.NoError(t, err)
	return item
}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates item when product exists and is untracked", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		product, err := catalog.NewProduct(tenantID, "Widget", "WDG-001", decimal.NewFromInt(10))
		require.NoError(t, err)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		itemRepo.On("FindByProduct", ctx, tenantID, product.ID).Return(nil, shared.ErrNotFound)
		itemRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)

		result, err := service.Create(ctx, tenantID, CreateItemRequest{
			ProductID:    product.ID,
			Quantity:     25,
			CostPrice:    decimal.NewFromInt(5),
			SellingPrice: decimal.NewFromInt(10),
		})

		require.NoError(t, err)
		assert.Equal(t, 25, result.Quantity)
		assert.True(t, result.TotalValue.Equal(decimal.NewFromInt(250)))
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		productID := uuid.New()
		productRepo.On("FindByIDForTenant", ctx, tenantID, productID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, tenantID, CreateItemRequest{ProductID: productID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	})

	t.Run("rejects second item for the same product", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		product, err := catalog.NewProduct(tenantID, "Widget", "WDG-001", decimal.NewFromInt(10))
		require.NoError(t, err)
		existing := newTestItem(t, tenantID, 5)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		itemRepo.On("FindByProduct", ctx, tenantID, product.ID).Return(existing, nil)

		_, err = service.Create(ctx, tenantID, CreateItemRequest{ProductID: product.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestInventoryService_Adjust(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	actorID := uuid.New()

	quantity := func(n int) *int { return &n }

	t.Run("add writes an audit record in the same save", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		item := newTestItem(t, tenantID, 10)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
		itemRepo.On("SaveWithAdjustment", ctx, item, mock.MatchedBy(func(a *inventory.Adjustment) bool {
			return a.PreviousQuantity == 10 && a.NewQuantity == 15 && a.AdjustedBy == actorID
		})).Return(nil)

		result, err := service.Adjust(ctx, tenantID, item.ID, actorID, AdjustItemRequest{
			Quantity:       quantity(5),
			AdjustmentType: inventory.AdjustmentAdd,
			Reason:         "restock",
		})

		require.NoError(t, err)
		assert.Equal(t, 15, result.Quantity)
		itemRepo.AssertExpectations(t)
	})

	t.Run("remove past zero is rejected before any write", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		item := newTestItem(t, tenantID, 3)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)

		_, err := service.Adjust(ctx, tenantID, item.ID, actorID, AdjustItemRequest{
			Quantity:       quantity(5),
			AdjustmentType: inventory.AdjustmentRemove,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 3, item.Quantity)
		itemRepo.AssertNotCalled(t, "SaveWithAdjustment")
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("set is absolute", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		item := newTestItem(t, tenantID, 7)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
		itemRepo.On("SaveWithAdjustment", ctx, item, mock.MatchedBy(func(a *inventory.Adjustment) bool {
			return a.PreviousQuantity == 7 && a.NewQuantity == 42
		})).Return(nil)

		result, err := service.Adjust(ctx, tenantID, item.ID, actorID, AdjustItemRequest{
			Quantity:       quantity(42),
			AdjustmentType: inventory.AdjustmentSet,
			Reason:         "stock take",
		})

		require.NoError(t, err)
		assert.Equal(t, 42, result.Quantity)
	})

	t.Run("attribute-only update writes no audit record", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		item := newTestItem(t, tenantID, 7)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)

		location := "warehouse-b"
		newPrice := decimal.NewFromInt(12)
		result, err := service.Adjust(ctx, tenantID, item.ID, actorID, AdjustItemRequest{
			Location:     &location,
			SellingPrice: &newPrice,
		})

		require.NoError(t, err)
		assert.Equal(t, "warehouse-b", result.Location)
		assert.Equal(t, 7, result.Quantity)
		itemRepo.AssertNotCalled(t, "SaveWithAdjustment")
	})

	t.Run("quantity without adjustment type is rejected", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		item := newTestItem(t, tenantID, 7)
		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)

		_, err := service.Adjust(ctx, tenantID, item.ID, actorID, AdjustItemRequest{
			Quantity: quantity(5),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADJUSTMENT_TYPE", domainErr.Code)
	})
}

func TestInventoryService_GetAdjustments(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("returns NOT_FOUND for a missing item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		itemID := uuid.New()
		itemRepo.On("FindByIDForTenant", ctx, tenantID, itemID).Return(nil, shared.ErrNotFound)

		_, _, err := service.GetAdjustments(ctx, tenantID, itemID, AdjustmentListFilter{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		adjustmentRepo.AssertNotCalled(t, "FindByItem")
	})

	t.Run("returns the trail for an existing item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newTestService(itemRepo, adjustmentRepo, productRepo)

		item := newTestItem(t, tenantID, 10)
		previous := item.Quantity
		_, err := item.ApplyAdjustment(inventory.AdjustmentAdd, 5)
		require.NoError(t, err)
		adjustment := inventory.NewAdjustment(item, inventory.AdjustmentAdd, previous, "restock", uuid.New())

		itemRepo.On("FindByIDForTenant", ctx, tenantID, item.ID).Return(item, nil)
		adjustmentRepo.On("FindByItem", ctx, tenantID, item.ID, mock.AnythingOfType("shared.Filter")).
			Return([]inventory.Adjustment{*adjustment}, int64(1), nil)

		responses, total, err := service.GetAdjustments(ctx, tenantID, item.ID, AdjustmentListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, 10, responses[0].PreviousQuantity)
		assert.Equal(t, 15, responses[0].NewQuantity)
	})
}
