package finance

import (
	"context"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Interval selects the bucketing granularity for time-series reports
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// IsValid reports whether the interval is known
func (i Interval) IsValid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	}
	return false
}

// DateRange bounds a report window. Both ends are inclusive; a nil bound
// leaves that side unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Summary aggregates totals over a date range. Only known transaction
// types are summed; anything else is excluded from both totals.
type Summary struct {
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	Profit           decimal.Decimal `json:"profit"`
	TransactionCount int64           `json:"transaction_count"`
}

// PeriodTotals holds one bucket of a time series, keyed by period string
// (daily 2006-01-02, weekly ISO 2006-W01, monthly 2006-01).
type PeriodTotals struct {
	Period   string          `json:"period"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryTotal holds one row of the category breakdown
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// TransactionRepository defines persistence for the transaction ledger
type TransactionRepository interface {
	shared.TenantRepository[Transaction]
}

// CategoryRepository defines persistence for finance categories
type CategoryRepository interface {
	shared.TenantRepository[Category]

	// ExistsByNameAndType checks the per-organization (name, type) uniqueness
	ExistsByNameAndType(ctx context.Context, tenantID uuid.UUID, name string, catType TransactionType) (bool, error)
}

// ReportRepository runs organization-scoped aggregation queries over the
// transaction ledger. Results are sparse: periods without transactions do
// not appear.
type ReportRepository interface {
	Summary(ctx context.Context, tenantID uuid.UUID, dateRange DateRange) (*Summary, error)
	TimeSeries(ctx context.Context, tenantID uuid.UUID, dateRange DateRange, interval Interval) ([]PeriodTotals, error)
	CategoryBreakdown(ctx context.Context, tenantID uuid.UUID, dateRange DateRange, typeFilter *TransactionType) ([]CategoryTotal, error)
}
