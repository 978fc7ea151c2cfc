package persistence

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Period key formats understood by Postgres to_char. Weekly buckets use the
// ISO year and ISO week so week 1 spans year boundaries correctly.
const (
	periodFormatDaily   = "YYYY-MM-DD"
	periodFormatWeekly  = `IYYY-"W"IW`
	periodFormatMonthly = "YYYY-MM"
)

// GormFinanceReportRepository implements ReportRepository using GORM.
// All queries aggregate the transactions table scoped to one tenant;
// only the known transaction types contribute to income/expense totals.
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// Summary sums amounts grouped by type over the date range
func (r *GormFinanceReportRepository) Summary(ctx context.Context, tenantID uuid.UUID, dateRange finance.DateRange) (*finance.Summary, error) {
	var row struct {
		TotalExpenses    decimal.Decimal
		TotalIncome      decimal.Decimal
		TransactionCount int64
	}

	query := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expenses, " +
				"COALESCE(SUM(CASE WHEN type IN ('sale', 'income') THEN amount ELSE 0 END), 0) AS total_income, " +
				"COUNT(*) AS transaction_count").
		Where("tenant_id = ?", tenantID)
	query = applyDateRange(query, dateRange)

	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	return &finance.Summary{
		TotalExpenses:    row.TotalExpenses,
		TotalIncome:      row.TotalIncome,
		Profit:           row.TotalIncome.Sub(row.TotalExpenses),
		TransactionCount: row.TransactionCount,
	}, nil
}

// TimeSeries buckets transactions by period and sums revenue and expenses
// per bucket. Buckets without transactions are absent (sparse series).
func (r *GormFinanceReportRepository) TimeSeries(ctx context.Context, tenantID uuid.UUID, dateRange finance.DateRange, interval finance.Interval) ([]finance.PeriodTotals, error) {
	format := periodFormatMonthly
	switch interval {
	case finance.IntervalDaily:
		format = periodFormatDaily
	case finance.IntervalWeekly:
		format = periodFormatWeekly
	}

	var rows []struct {
		Period   string
		Revenue  decimal.Decimal
		Expenses decimal.Decimal
	}

	query := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select(
			"to_char(date, ?) AS period, "+
				"COALESCE(SUM(CASE WHEN type IN ('sale', 'income') THEN amount ELSE 0 END), 0) AS revenue, "+
				"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses",
			format).
		Where("tenant_id = ?", tenantID)
	query = applyDateRange(query, dateRange)

	if err := query.
		Group("period").
		Order("period ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	series := make([]finance.PeriodTotals, 0, len(rows))
	for _, row := range rows {
		series = append(series, finance.PeriodTotals{
			Period:   row.Period,
			Revenue:  row.Revenue,
			Expenses: row.Expenses,
		})
	}
	return series, nil
}

// CategoryBreakdown sums amounts per category, optionally filtered by type,
// sorted descending by total
func (r *GormFinanceReportRepository) CategoryBreakdown(ctx context.Context, tenantID uuid.UUID, dateRange finance.DateRange, typeFilter *finance.TransactionType) ([]finance.CategoryTotal, error) {
	var rows []struct {
		Category string
		Total    decimal.Decimal
		Count    int64
	}

	query := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID)
	query = applyDateRange(query, dateRange)
	if typeFilter != nil {
		query = query.Where("type = ?", *typeFilter)
	}

	if err := query.
		Group("category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	breakdown := make([]finance.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		breakdown = append(breakdown, finance.CategoryTotal{
			Category: row.Category,
			Total:    row.Total,
			Count:    row.Count,
		})
	}
	return breakdown, nil
}

// applyDateRange bounds the date column inclusively on whichever ends are set
func applyDateRange(query *gorm.DB, dateRange finance.DateRange) *gorm.DB {
	if dateRange.Start != nil {
		query = query.Where("date >= ?", *dateRange.Start)
	}
	if dateRange.End != nil {
		query = query.Where("date <= ?", *dateRange.End)
	}
	return query
}

// Ensure GormFinanceReportRepository implements ReportRepository
var _ finance.ReportRepository = (*GormFinanceReportRepository)(nil)
