package board

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/board"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// BoardService handles Kanban board operations. Every structural mutation
// loads the aggregate, mutates it in memory and saves the whole row under
// a version check; a lost race surfaces as ErrConcurrencyConflict.
type BoardService struct {
	boardRepo board.BoardRepository
}

// NewBoardService creates a new BoardService
func NewBoardService(boardRepo board.BoardRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo}
}

// Create creates an empty board
func (s *BoardService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, req CreateBoardRequest) (*BoardResponse, error) {
	newBoard, err := board.NewBoard(tenantID, createdBy, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.boardRepo.Save(ctx, newBoard); err != nil {
		return nil, err
	}

	response := ToBoardResponse(newBoard)
	return &response, nil
}

// GetByID retrieves a board by ID
func (s *BoardService) GetByID(ctx context.Context, tenantID, boardID uuid.UUID) (*BoardResponse, error) {
	found, err := s.boardRepo.FindByIDForTenant(ctx, tenantID, boardID)
	if err != nil {
		return nil, err
	}

	response := ToBoardResponse(found)
	return &response, nil
}

// List retrieves boards with filtering and pagination
func (s *BoardService) List(ctx context.Context, tenantID uuid.UUID, filter BoardListFilter) ([]BoardResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.Limit > 0 {
		domainFilter.PageSize = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	boards, err := s.boardRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.boardRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBoardResponses(boards), total, nil
}

// Update updates a board's name and description
func (s *BoardService) Update(ctx context.Context, tenantID, boardID uuid.UUID, req UpdateBoardRequest) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		name := b.Name
		description := b.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		return b.Update(name, description)
	})
}

// Delete hard-deletes a board together with its columns and cards
func (s *BoardService) Delete(ctx context.Context, tenantID, boardID uuid.UUID) error {
	return s.boardRepo.DeleteForTenant(ctx, tenantID, boardID)
}

// AddColumn appends a column to a board
func (s *BoardService) AddColumn(ctx context.Context, tenantID, boardID uuid.UUID, req AddColumnRequest) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		_, err := b.AddColumn(req.Name, req.Order)
		return err
	})
}

// UpdateColumn partially updates a column
func (s *BoardService) UpdateColumn(ctx context.Context, tenantID, boardID, columnID uuid.UUID, req UpdateColumnRequest) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		_, err := b.UpdateColumn(columnID, req.Name, req.Order)
		return err
	})
}

// RemoveColumn deletes a column and its cards
func (s *BoardService) RemoveColumn(ctx context.Context, tenantID, boardID, columnID uuid.UUID) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		return b.RemoveColumn(columnID)
	})
}

// AddCard appends a card to a column
func (s *BoardService) AddCard(ctx context.Context, tenantID, boardID, columnID uuid.UUID, req AddCardRequest) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		_, err := b.AddCard(columnID, req.Title, req.Description, req.DueDate, req.AssigneeIDs, req.Order)
		return err
	})
}

// UpdateCard partially updates a card
func (s *BoardService) UpdateCard(ctx context.Context, tenantID, boardID, columnID, cardID uuid.UUID, req UpdateCardRequest) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		_, err := b.UpdateCard(columnID, cardID, board.CardUpdate{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			ClearDue:    req.ClearDue,
			AssigneeIDs: req.AssigneeIDs,
			Order:       req.Order,
		})
		return err
	})
}

// RemoveCard deletes a card from a column
func (s *BoardService) RemoveCard(ctx context.Context, tenantID, boardID, columnID, cardID uuid.UUID) (*BoardResponse, error) {
	return s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		return b.RemoveCard(columnID, cardID)
	})
}

// MoveCard relocates a card to a target column at an order index
func (s *BoardService) MoveCard(ctx context.Context, tenantID, boardID, cardID uuid.UUID, req MoveCardRequest) (*BoardResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "board", "move_card",
		attribute.String(telemetry.SpanAttrBoardID, boardID.String()),
		attribute.String(telemetry.SpanAttrCardID, cardID.String()),
		attribute.String(telemetry.SpanAttrColumnID, req.TargetColumnID.String()))
	defer span.End()

	resp, err := s.mutate(ctx, tenantID, boardID, func(b *board.Board) error {
		return b.MoveCard(cardID, req.TargetColumnID, req.NewOrder)
	})
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return resp, err
}

func (s *BoardService) mutate(ctx context.Context, tenantID, boardID uuid.UUID, fn func(*board.Board) error) (*BoardResponse, error) {
	found, err := s.boardRepo.FindByIDForTenant(ctx, tenantID, boardID)
	if err != nil {
		return nil, err
	}

	if err := fn(found); err != nil {
		return nil, err
	}

	if err := s.boardRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	response := ToBoardResponse(found)
	return &response, nil
}
