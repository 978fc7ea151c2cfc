package dashboard

import (
	"context"
	"time"

	"github.com/bizgrid/backend/internal/domain/finance"
	"github.com/bizgrid/backend/internal/domain/inventory"
	"github.com/bizgrid/backend/internal/domain/task"
	"github.com/bizgrid/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SummaryResponse is the composed dashboard payload
type SummaryResponse struct {
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	LowStockCount       int64           `json:"low_stock_count"`
	MonthlyExpenses     decimal.Decimal `json:"monthly_expenses"`
	MonthlyIncome       decimal.Decimal `json:"monthly_income"`
	MonthlyProfit       decimal.Decimal `json:"monthly_profit"`
	ActiveTaskCount     int64           `json:"active_task_count"`
	OverdueTaskCount    int64           `json:"overdue_task_count"`
	ActiveEmployeeCount int64           `json:"active_employee_count"`
}

// DashboardService composes the overview from the other modules' stores.
// All sub-queries run concurrently; any failure fails the whole summary.
type DashboardService struct {
	itemRepo     inventory.ItemRepository
	reportRepo   finance.ReportRepository
	taskRepo     task.TaskRepository
	employeeRepo workforce.EmployeeRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	itemRepo inventory.ItemRepository,
	reportRepo finance.ReportRepository,
	taskRepo task.TaskRepository,
	employeeRepo workforce.EmployeeRepository,
) *DashboardService {
	return &DashboardService{
		itemRepo:     itemRepo,
		reportRepo:   reportRepo,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
	}
}

// Summary computes the dashboard for the current calendar month
func (s *DashboardService) Summary(ctx context.Context, tenantID uuid.UUID) (*SummaryResponse, error) {
	now := time.Now()
	monthStart, monthEnd := monthBounds(now)

	var response SummaryResponse

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		value, err := s.itemRepo.TotalValue(gctx, tenantID)
		if err != nil {
			return err
		}
		response.TotalInventoryValue = value
		return nil
	})

	g.Go(func() error {
		count, err := s.itemRepo.CountLowStock(gctx, tenantID)
		if err != nil {
			return err
		}
		response.LowStockCount = count
		return nil
	})

	g.Go(func() error {
		summary, err := s.reportRepo.Summary(gctx, tenantID, finance.DateRange{
			Start: &monthStart,
			End:   &monthEnd,
		})
		if err != nil {
			return err
		}
		response.MonthlyExpenses = summary.TotalExpenses
		response.MonthlyIncome = summary.TotalIncome
		response.MonthlyProfit = summary.TotalIncome.Sub(summary.TotalExpenses)
		return nil
	})

	g.Go(func() error {
		count, err := s.taskRepo.CountActive(gctx, tenantID)
		if err != nil {
			return err
		}
		response.ActiveTaskCount = count
		return nil
	})

	g.Go(func() error {
		count, err := s.taskRepo.CountOverdue(gctx, tenantID, now)
		if err != nil {
			return err
		}
		response.OverdueTaskCount = count
		return nil
	})

	g.Go(func() error {
		count, err := s.employeeRepo.CountActive(gctx, tenantID)
		if err != nil {
			return err
		}
		response.ActiveEmployeeCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &response, nil
}

// monthBounds returns the first instant of day 1 and the last instant of
// the final day of the month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
