package finance

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// ReportService runs aggregation reports over the transaction ledger.
// All results are computed in SQL; the service only shapes the output.
type ReportService struct {
	reportRepo finance.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo finance.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// Summary returns totals over a date range
func (s *ReportService) Summary(ctx context.Context, tenantID uuid.UUID, filter ReportFilter) (*finance.Summary, error) {
	return s.reportRepo.Summary(ctx, tenantID, finance.DateRange{
		Start: filter.StartDate,
		End:   filter.EndDate,
	})
}

// RevenueVsExpense returns per-period revenue and expense totals. Periods
// without transactions are absent, not zero-filled.
func (s *ReportService) RevenueVsExpense(ctx context.Context, tenantID uuid.UUID, filter ChartFilter) ([]finance.PeriodTotals, error) {
	return s.reportRepo.TimeSeries(ctx, tenantID, finance.DateRange{
		Start: filter.StartDate,
		End:   filter.EndDate,
	}, resolveInterval(filter.Interval))
}

// ProfitTrend returns the revenue-vs-expense series with a per-period
// profit column added.
func (s *ReportService) ProfitTrend(ctx context.Context, tenantID uuid.UUID, filter ChartFilter) ([]ProfitPoint, error) {
	series, err := s.reportRepo.TimeSeries(ctx, tenantID, finance.DateRange{
		Start: filter.StartDate,
		End:   filter.EndDate,
	}, resolveInterval(filter.Interval))
	if err != nil {
		return nil, err
	}

	points := make([]ProfitPoint, len(series))
	for i, bucket := range series {
		points[i] = ProfitPoint{
			Period:   bucket.Period,
			Revenue:  bucket.Revenue,
			Expenses: bucket.Expenses,
			Profit:   bucket.Revenue.Sub(bucket.Expenses),
		}
	}
	return points, nil
}

// CategoryBreakdown returns per-category totals, largest first
func (s *ReportService) CategoryBreakdown(ctx context.Context, tenantID uuid.UUID, filter BreakdownFilter) ([]finance.CategoryTotal, error) {
	var typeFilter *finance.TransactionType
	if filter.Type != "" {
		t := finance.TransactionType(filter.Type)
		typeFilter = &t
	}

	return s.reportRepo.CategoryBreakdown(ctx, tenantID, finance.DateRange{
		Start: filter.StartDate,
		End:   filter.EndDate,
	}, typeFilter)
}

func resolveInterval(interval string) finance.Interval {
	switch finance.Interval(interval) {
	case finance.IntervalDaily:
		return finance.IntervalDaily
	case finance.IntervalWeekly:
		return finance.IntervalWeekly
	default:
		return finance.IntervalMonthly
	}
}
