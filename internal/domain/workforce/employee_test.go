package workforce

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployee(t *testing.T) {
	tenantID := uuid.New()

	e, err := NewEmployee(tenantID, "Robin", "Lee", "Robin.Lee@Example.com")
	require.NoError(t, err)
	assert.Equal(t, tenantID, e.TenantID)
	assert.Equal(t, "robin.lee@example.com", e.Email)
	assert.Equal(t, EmployeeStatusActive, e.Status)
	assert.Equal(t, "Robin Lee", e.FullName())

	_, err = NewEmployee(tenantID, "", "Lee", "a@b.com")
	assert.Error(t, err)
	_, err = NewEmployee(tenantID, "Robin", "", "a@b.com")
	assert.Error(t, err)
	_, err = NewEmployee(tenantID, "Robin", "Lee", "no-at-sign")
	assert.Error(t, err)
}

func TestEmployeeUpdateContact(t *testing.T) {
	e, err := NewEmployee(uuid.New(), "Robin", "Lee", "a@b.com")
	require.NoError(t, err)

	require.NoError(t, e.UpdateContact("Alex", "Kim", "ALEX@b.com", "+1-555-0100"))
	assert.Equal(t, "alex@b.com", e.Email)
	assert.Equal(t, "+1-555-0100", e.Phone)

	assert.Error(t, e.UpdateContact("Alex", "Kim", "bad", ""))
	assert.Equal(t, "alex@b.com", e.Email, "failed update leaves contact untouched")
}

func TestEmployeePositionAndLinks(t *testing.T) {
	e, err := NewEmployee(uuid.New(), "Robin", "Lee", "a@b.com")
	require.NoError(t, err)

	e.UpdatePosition("Technician", "Service")
	assert.Equal(t, "Technician", e.Position)
	assert.Equal(t, "Service", e.Department)

	hired := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	e.SetHireDate(hired)
	require.NotNil(t, e.HireDate)
	assert.Equal(t, hired, *e.HireDate)

	userID := uuid.New()
	e.LinkUser(userID)
	require.NotNil(t, e.UserID)
	assert.Equal(t, userID, *e.UserID)
}

func TestEmployeeSoftDelete(t *testing.T) {
	e, err := NewEmployee(uuid.New(), "Robin", "Lee", "a@b.com")
	require.NoError(t, err)

	e.Deactivate()
	assert.False(t, e.IsActive())
	assert.Equal(t, EmployeeStatusInactive, e.Status)

	e.Activate()
	assert.True(t, e.IsActive())
}
