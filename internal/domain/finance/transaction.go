package finance

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry. Sales and other income both
// count toward income totals; expenses count toward expense totals.
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionSale    TransactionType = "sale"
	TransactionIncome  TransactionType = "income"
)

// IsValid reports whether the type is one of the known types
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionExpense, TransactionSale, TransactionIncome:
		return true
	}
	return false
}

// IsIncome reports whether the type counts toward income totals
func (t TransactionType) IsIncome() bool {
	return t == TransactionSale || t == TransactionIncome
}

// Transaction is an append-mostly financial ledger row
type Transaction struct {
	shared.TenantEntity
	Type        TransactionType `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Description string          `gorm:"type:varchar(500)"`
	Date        time.Time       `gorm:"not null;index"`
	EmployeeID  *uuid.UUID      `gorm:"type:uuid;index"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a new ledger entry
func NewTransaction(tenantID uuid.UUID, txType TransactionType, amount decimal.Decimal, category string, date time.Time) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Transaction type must be expense, sale or income")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}

	return &Transaction{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Type:         txType,
		Amount:       amount,
		Category:     category,
		Date:         date,
	}, nil
}

// Update applies a partial update to the mutable fields
func (t *Transaction) Update(txType TransactionType, amount decimal.Decimal, category string, date time.Time) error {
	if !txType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Transaction type must be expense, sale or income")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	t.Type = txType
	t.Amount = amount
	t.Category = category
	t.Date = date
	t.UpdatedAt = time.Now()
	return nil
}

// SetDescription updates the free-text description
func (t *Transaction) SetDescription(description string) {
	t.Description = description
	t.UpdatedAt = time.Now()
}

// SetEmployee links or unlinks the related employee
func (t *Transaction) SetEmployee(employeeID *uuid.UUID) {
	t.EmployeeID = employeeID
	t.UpdatedAt = time.Now()
}

// SetTags replaces the tag set
func (t *Transaction) SetTags(tags []string) {
	t.Tags = tags
	t.UpdatedAt = time.Now()
}
