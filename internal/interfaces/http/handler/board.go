package handler

import (
	appboard "github.com/bizgrid/backend/internal/application/board"
	"github.com/gin-gonic/gin"
)

// BoardHandler exposes Kanban board endpoints. Every mutation returns
// the full board so clients can reconcile against the new version.
type BoardHandler struct {
	BaseHandler
	boardService *appboard.BoardService
}

func NewBoardHandler(boardService *appboard.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// Create adds a board with its default columns
func (h *BoardHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user context")
		return
	}

	var req appboard.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a board with its columns and cards
func (h *BoardHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	resp, err := h.boardService.GetByID(c.Request.Context(), tenantID, boardID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of boards
func (h *BoardHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter appboard.BoardListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	boards, total, err := h.boardService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, limit := normalizePagination(filter.Page, filter.Limit)
	h.SuccessWithMeta(c, boards, total, page, limit)
}

// Update renames a board or changes its description
func (h *BoardHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	var req appboard.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.Update(c.Request.Context(), tenantID, boardID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a board with everything on it
func (h *BoardHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), tenantID, boardID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddColumn appends or inserts a column on a board
func (h *BoardHandler) AddColumn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	var req appboard.AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.AddColumn(c.Request.Context(), tenantID, boardID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateColumn renames or reorders a column
func (h *BoardHandler) UpdateColumn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		h.BadRequest(c, "Invalid column ID")
		return
	}

	var req appboard.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.UpdateColumn(c.Request.Context(), tenantID, boardID, columnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveColumn deletes a column together with its cards
func (h *BoardHandler) RemoveColumn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		h.BadRequest(c, "Invalid column ID")
		return
	}

	resp, err := h.boardService.RemoveColumn(c.Request.Context(), tenantID, boardID, columnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddCard adds a card to a column
func (h *BoardHandler) AddCard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		h.BadRequest(c, "Invalid column ID")
		return
	}

	var req appboard.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.AddCard(c.Request.Context(), tenantID, boardID, columnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateCard edits a card in place
func (h *BoardHandler) UpdateCard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		h.BadRequest(c, "Invalid column ID")
		return
	}
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req appboard.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.UpdateCard(c.Request.Context(), tenantID, boardID, columnID, cardID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveCard deletes a card
func (h *BoardHandler) RemoveCard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}
	columnID, ok := parseUUIDParam(c, "columnId")
	if !ok {
		h.BadRequest(c, "Invalid column ID")
		return
	}
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	resp, err := h.boardService.RemoveCard(c.Request.Context(), tenantID, boardID, columnID, cardID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MoveCard moves a card to another column or position. A concurrent
// modification of the board surfaces as a conflict for the client to
// retry with fresh state.
func (h *BoardHandler) MoveCard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid board ID")
		return
	}
	cardID, ok := parseUUIDParam(c, "cardId")
	if !ok {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req appboard.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.boardService.MoveCard(c.Request.Context(), tenantID, boardID, cardID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
