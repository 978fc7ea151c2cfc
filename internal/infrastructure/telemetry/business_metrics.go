package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks domain-level activity: stock adjustments, recorded
// finance transactions and inventory health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	adjustmentTotal  *Counter
	transactionTotal *Counter
	loginTotal       *Counter

	lowStockCount *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	inventoryProvider InventoryMetricsProvider
}

// InventoryMetricsProvider provides inventory data for periodic metrics
// collection without coupling the telemetry layer to the inventory domain.
type InventoryMetricsProvider interface {
	// GetLowStockCount returns the number of items at or below their
	// low-stock threshold for a tenant
	GetLowStockCount(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	InventoryProvider InventoryMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		inventoryProvider: cfg.InventoryProvider,
	}

	var err error

	bm.adjustmentTotal, err = NewCounter(
		cfg.Meter,
		"bizgrid_inventory_adjustment_total",
		"Total number of inventory quantity adjustments",
		"{adjustments}",
	)
	if err != nil {
		return nil, err
	}

	bm.transactionTotal, err = NewCounter(
		cfg.Meter,
		"bizgrid_finance_transaction_total",
		"Total number of finance transactions recorded",
		"{transactions}",
	)
	if err != nil {
		return nil, err
	}

	bm.loginTotal, err = NewCounter(
		cfg.Meter,
		"bizgrid_auth_login_total",
		"Total number of successful logins",
		"{logins}",
	)
	if err != nil {
		return nil, err
	}

	bm.lowStockCount, err = NewGauge(
		cfg.Meter,
		"bizgrid_inventory_low_stock_count",
		"Number of inventory items at or below their low-stock threshold",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordAdjustment records an inventory quantity adjustment.
func (bm *BusinessMetrics) RecordAdjustment(ctx context.Context, tenantID uuid.UUID, adjustmentType string) {
	bm.adjustmentTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrAdjustmentType.String(adjustmentType),
	)
}

// RecordTransaction records a finance transaction creation.
func (bm *BusinessMetrics) RecordTransaction(ctx context.Context, tenantID uuid.UUID, transactionType string) {
	bm.transactionTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrTransactionType.String(string(transactionType)),
	)
}

// RecordLogin records a successful login.
func (bm *BusinessMetrics) RecordLogin(ctx context.Context, tenantID uuid.UUID) {
	bm.loginTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
	)
}

// RecordLowStockCount records the number of items at or below their threshold.
func (bm *BusinessMetrics) RecordLowStockCount(ctx context.Context, tenantID uuid.UUID, count int64) {
	bm.lowStockCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// TenantProvider provides tenant IDs for periodic metrics collection.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// Non-blocking; use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectInventoryMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectInventoryMetrics(ctx, tenantProvider)
		}
	}
}

func (bm *BusinessMetrics) collectInventoryMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.inventoryProvider == nil {
		bm.logger.Debug("No inventory provider configured, skipping inventory metrics collection")
		return
	}

	tenantIDs, err := tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		lowStockCount, err := bm.inventoryProvider.GetLowStockCount(ctx, tenantID)
		if err != nil {
			bm.logger.Warn("Failed to get low stock count for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		bm.RecordLowStockCount(ctx, tenantID, lowStockCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
