package workforce

import (
	"context"
	"testing"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmployeeRepository is a mock implementation of workforce.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates employee with optional fields", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		service := NewEmployeeService(repo)

		repo.On("ExistsByEmail", ctx, tenantID, "jo@acme.test").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*workforce.Employee")).Return(nil)

		result, err := service.Create(ctx, tenantID, CreateEmployeeRequest{
			FirstName:  "Jo",
			LastName:   "March",
			Email:      "jo@acme.test",
			Position:   "Accountant",
			Department: "Finance",
		})

		require.NoError(t, err)
		assert.Equal(t, "jo@acme.test", result.Email)
		assert.Equal(t, "Finance", result.Department)
		assert.Equal(t, workforce.EmployeeStatusActive, result.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		service := NewEmployeeService(repo)

		repo.On("ExistsByEmail", ctx, tenantID, "jo@acme.test").Return(true, nil)

		_, err := service.Create(ctx, tenantID, CreateEmployeeRequest{
			FirstName: "Jo",
			LastName:  "March",
			Email:     "jo@acme.test",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		service := NewEmployeeService(repo)

		employee, err := workforce.NewEmployee(tenantID, "Jo", "March", "jo@acme.test")
		require.NoError(t, err)
		employee.UpdatePosition("Accountant", "Finance")

		repo.On("FindByIDForTenant", ctx, tenantID, employee.ID).Return(employee, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*workforce.Employee")).Return(nil)

		newPosition := "Senior Accountant"
		result, err := service.Update(ctx, tenantID, employee.ID, UpdateEmployeeRequest{
			Position: &newPosition,
		})

		require.NoError(t, err)
		assert.Equal(t, "Senior Accountant", result.Position)
		assert.Equal(t, "Finance", result.Department)
		assert.Equal(t, "jo@acme.test", result.Email)
	})

	t.Run("checks uniqueness only when email changes", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		service := NewEmployeeService(repo)

		employee, err := workforce.NewEmployee(tenantID, "Jo", "March", "jo@acme.test")
		require.NoError(t, err)

		repo.On("FindByIDForTenant", ctx, tenantID, employee.ID).Return(employee, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*workforce.Employee")).Return(nil)

		sameEmail := "jo@acme.test"
		_, err = service.Update(ctx, tenantID, employee.ID, UpdateEmployeeRequest{
			Email: &sameEmail,
		})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByEmail")
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockEmployeeRepository)
	service := NewEmployeeService(repo)

	employee, err := workforce.NewEmployee(tenantID, "Jo", "March", "jo@acme.test")
	require.NoError(t, err)

	repo.On("FindByIDForTenant", ctx, tenantID, employee.ID).Return(employee, nil)
	repo.On("Save", ctx, mock.MatchedBy(func(e *workforce.Employee) bool {
		return e.Status == workforce.EmployeeStatusInactive
	})).Return(nil)

	require.NoError(t, service.Delete(ctx, tenantID, employee.ID))
	repo.AssertNotCalled(t, "DeleteForTenant")
}
