package handler

import (
	appdashboard "github.com/bizgrid/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the cross-module dashboard summary
type DashboardHandler struct {
	BaseHandler
	dashboardService *appdashboard.DashboardService
}

func NewDashboardHandler(dashboardService *appdashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary aggregates headline figures from every module for the
// caller's organization.
func (h *DashboardHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.dashboardService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
