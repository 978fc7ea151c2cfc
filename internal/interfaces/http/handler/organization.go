package handler

import (
	appidentity "github.com/bizgrid/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// OrganizationHandler exposes organization endpoints. Mutations are
// restricted to the caller's own organization.
type OrganizationHandler struct {
	BaseHandler
	orgService *appidentity.OrganizationService
}

func NewOrganizationHandler(orgService *appidentity.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// GetCurrent returns the caller's organization
func (h *OrganizationHandler) GetCurrent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.orgService.GetCurrent(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies the organization named in the path. Admins can only
// update their own organization; any other ID is rejected.
func (h *OrganizationHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid organization ID")
		return
	}
	if orgID != tenantID {
		h.Forbidden(c, "Cannot modify another organization")
		return
	}

	var req appidentity.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.orgService.Update(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete deactivates the organization named in the path, subject to the
// same own-organization restriction as Update.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid organization ID")
		return
	}
	if orgID != tenantID {
		h.Forbidden(c, "Cannot modify another organization")
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), orgID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
