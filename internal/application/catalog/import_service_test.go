package catalog

import (
	"context"
	"strings"
	"testing"

	csvimport "github.com/bizgrid/backend/internal/infrastructure/import"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductImportHappyPath(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductImportService(repo)
	tenantID := uuid.New()

	csv := "name,sku,unit_price,description,category\n" +
		"Widget,W-1,9.99,A widget,Hardware\n" +
		"Gadget,G-1,24.50,,\n"

	repo.On("ExistsBySKU", mock.Anything, tenantID, "W-1").Return(false, nil)
	repo.On("ExistsBySKU", mock.Anything, tenantID, "G-1").Return(false, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.TenantID == tenantID
	})).Return(nil)

	result, err := svc.Import(context.Background(), tenantID, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Rejected)
	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestProductImportRejectsInvalidRowsButImportsRest(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductImportService(repo)
	tenantID := uuid.New()

	csv := "name,sku,unit_price\n" +
		"Widget,W-1,9.99\n" +
		",MISSING-NAME,1.00\n" +
		"Bad Price,B-1,not-a-number\n"

	repo.On("ExistsBySKU", mock.Anything, tenantID, "W-1").Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Import(context.Background(), tenantID, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Rejected)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, csvimport.ErrCodeRequired, result.Errors[0].Code)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, csvimport.ErrCodeInvalidType, result.Errors[1].Code)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestProductImportRejectsDuplicateSKUInFile(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductImportService(repo)
	tenantID := uuid.New()

	csv := "name,sku,unit_price\n" +
		"Widget,W-1,9.99\n" +
		"Widget Again,W-1,8.00\n"

	repo.On("ExistsBySKU", mock.Anything, tenantID, "W-1").Return(false, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Import(context.Background(), tenantID, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeDuplicate, result.Errors[0].Code)
	assert.Contains(t, result.Errors[0].Message, "row 2")
}

func TestProductImportRejectsExistingSKU(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductImportService(repo)
	tenantID := uuid.New()

	csv := "name,sku,unit_price\nWidget,W-1,9.99\n"

	repo.On("ExistsBySKU", mock.Anything, tenantID, "W-1").Return(true, nil)

	result, err := svc.Import(context.Background(), tenantID, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, csvimport.ErrCodeDuplicate, result.Errors[0].Code)
	repo.AssertNotCalled(t, "Save")
}

func TestProductImportMissingColumns(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductImportService(repo)

	_, err := svc.Import(context.Background(), uuid.New(), strings.NewReader("name,price\nWidget,9.99\n"))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	assert.Contains(t, domainErr.Message, "sku")
	assert.Contains(t, domainErr.Message, "unit_price")
}

func TestProductImportEmptyFile(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductImportService(repo)

	_, err := svc.Import(context.Background(), uuid.New(), strings.NewReader(""))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}
