package handler

import (
	"github.com/bizgrid/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes finance summary and chart endpoints
type ReportHandler struct {
	BaseHandler
	reportService *finance.ReportService
}

func NewReportHandler(reportService *finance.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns aggregate income, expenses and profit for a period
func (h *ReportHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter finance.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// RevenueVsExpense returns bucketed revenue and expense totals
func (h *ReportHandler) RevenueVsExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter finance.ChartFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	points, err := h.reportService.RevenueVsExpense(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, points)
}

// ProfitTrend returns the profit series over the same buckets
func (h *ReportHandler) ProfitTrend(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter finance.ChartFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	points, err := h.reportService.ProfitTrend(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, points)
}

// CategoryBreakdown returns per-category totals for one transaction type
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter finance.BreakdownFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	totals, err := h.reportService.CategoryBreakdown(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}
