package board

import (
	"sort"
	"time"

	"github.com/bizgrid/backend/internal/domain/board"
	"github.com/google/uuid"
)

// CreateBoardRequest creates a Kanban board
type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateBoardRequest updates a board's own fields without touching columns
type UpdateBoardRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// BoardListFilter represents filter options for the board list
type BoardListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AddColumnRequest appends a column; order defaults to the column count
type AddColumnRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Order *int   `json:"order" binding:"omitempty,min=0"`
}

// UpdateColumnRequest partially updates a column; cards are untouched
type UpdateColumnRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Order *int    `json:"order" binding:"omitempty,min=0"`
}

// AddCardRequest appends a card; order defaults to the card count in
// the column.
type AddCardRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeIDs []string   `json:"assignee_ids" binding:"max=20,dive,uuid"`
	Order       *int       `json:"order" binding:"omitempty,min=0"`
}

// UpdateCardRequest partially updates a card; supplied assignees replace
// the whole set.
type UpdateCardRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due_date"`
	AssigneeIDs []string   `json:"assignee_ids" binding:"omitempty,max=20,dive,uuid"`
	Order       *int       `json:"order" binding:"omitempty,min=0"`
}

// MoveCardRequest relocates a card to a target column at an order index
type MoveCardRequest struct {
	TargetColumnID uuid.UUID `json:"target_column_id" binding:"required"`
	NewOrder       int       `json:"new_order" binding:"min=0"`
}

// CardResponse represents a card in API responses
type CardResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeIDs []string   `json:"assignee_ids"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ColumnResponse represents a column with its cards in display order
type ColumnResponse struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Order int            `json:"order"`
	Cards []CardResponse `json:"cards"`
}

// BoardResponse represents a board in API responses. Columns and cards
// are sorted by their order values.
type BoardResponse struct {
	ID          uuid.UUID        `json:"id"`
	TenantID    uuid.UUID        `json:"tenant_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Columns     []ColumnResponse `json:"columns"`
	Version     int              `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToBoardResponse converts a domain Board to BoardResponse
func ToBoardResponse(b *board.Board) BoardResponse {
	columns := make([]ColumnResponse, len(b.Columns))
	for i, col := range b.Columns {
		cards := make([]CardResponse, len(col.Cards))
		for j, card := range col.Cards {
			cards[j] = CardResponse{
				ID:          card.ID,
				Title:       card.Title,
				Description: card.Description,
				DueDate:     card.DueDate,
				AssigneeIDs: card.AssigneeIDs,
				Order:       card.Order,
				CreatedAt:   card.CreatedAt,
			}
		}
		sort.SliceStable(cards, func(a, b int) bool { return cards[a].Order < cards[b].Order })
		columns[i] = ColumnResponse{
			ID:    col.ID,
			Name:  col.Name,
			Order: col.Order,
			Cards: cards,
		}
	}
	sort.SliceStable(columns, func(a, b int) bool { return columns[a].Order < columns[b].Order })

	return BoardResponse{
		ID:          b.ID,
		TenantID:    b.TenantID,
		Name:        b.Name,
		Description: b.Description,
		Columns:     columns,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBoardResponses converts a slice of domain Boards to BoardResponses
func ToBoardResponses(boards []board.Board) []BoardResponse {
	responses := make([]BoardResponse, len(boards))
	for i := range boards {
		responses[i] = ToBoardResponse(&boards[i])
	}
	return responses
}
