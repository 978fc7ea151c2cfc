package finance

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a ledger entry
type CreateTransactionRequest struct {
	Type        finance.TransactionType `json:"type" binding:"required,oneof=expense sale income"`
	Amount      decimal.Decimal         `json:"amount" binding:"required"`
	Category    string                  `json:"category" binding:"required,min=1,max=100"`
	Description string                  `json:"description" binding:"max=500"`
	Date        time.Time               `json:"date" binding:"required"`
	EmployeeID  *uuid.UUID              `json:"employee_id"`
	Tags        []string                `json:"tags" binding:"max=20,dive,max=50"`
}

// UpdateTransactionRequest applies a partial update to a transaction
type UpdateTransactionRequest struct {
	Type        *finance.TransactionType `json:"type" binding:"omitempty,oneof=expense sale income"`
	Amount      *decimal.Decimal         `json:"amount"`
	Category    *string                  `json:"category" binding:"omitempty,min=1,max=100"`
	Description *string                  `json:"description" binding:"omitempty,max=500"`
	Date        *time.Time               `json:"date"`
	EmployeeID  *uuid.UUID               `json:"employee_id"`
	Tags        []string                 `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// TransactionListFilter represents filter options for the transaction list
type TransactionListFilter struct {
	Search     string     `form:"search"`
	Type       string     `form:"type" binding:"omitempty,oneof=expense sale income"`
	Category   string     `form:"category"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	Tag        string     `form:"tag"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID               `json:"id"`
	TenantID    uuid.UUID               `json:"tenant_id"`
	Type        finance.TransactionType `json:"type"`
	Amount      decimal.Decimal         `json:"amount"`
	Category    string                  `json:"category"`
	Description string                  `json:"description"`
	Date        time.Time               `json:"date"`
	EmployeeID  *uuid.UUID              `json:"employee_id"`
	Tags        []string                `json:"tags"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// CreateCategoryRequest creates a finance category
type CreateCategoryRequest struct {
	Name        string                  `json:"name" binding:"required,min=1,max=100"`
	Type        finance.TransactionType `json:"type" binding:"required,oneof=expense sale income"`
	Description string                  `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest applies a partial update to a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=expense sale income"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse represents a finance category in API responses
type CategoryResponse struct {
	ID          uuid.UUID               `json:"id"`
	TenantID    uuid.UUID               `json:"tenant_id"`
	Name        string                  `json:"name"`
	Type        finance.TransactionType `json:"type"`
	Description string                  `json:"description"`
	IsActive    bool                    `json:"is_active"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ReportFilter bounds report queries to an inclusive date range
type ReportFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ChartFilter adds the bucketing interval to the report range
type ChartFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Interval  string     `form:"interval" binding:"omitempty,oneof=daily weekly monthly"`
}

// BreakdownFilter selects category totals for one transaction type
type BreakdownFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Type      string     `form:"type" binding:"omitempty,oneof=expense sale income"`
}

// ProfitPoint is one bucket of the profit trend chart
type ProfitPoint struct {
	Period   string          `json:"period"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// ToTransactionResponse converts a domain Transaction to TransactionResponse
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		TenantID:    t.TenantID,
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		EmployeeID:  t.EmployeeID,
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Transactions to TransactionResponses
func ToTransactionResponses(transactions []finance.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *finance.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories to CategoryResponses
func ToCategoryResponses(categories []finance.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
