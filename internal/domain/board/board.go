package board

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Card is one item on a board column. Its ID is stable for the card's
// lifetime: moves change the parent column and Order, never the identity.
type Card struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssigneeIDs []string   `json:"assignee_ids,omitempty"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Column is an ordered list of cards with a stable ID
type Column struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Order int       `json:"order"`
	Cards []Card    `json:"cards"`
}

// ColumnList stores the whole column/card tree as one JSONB value so a
// board always mutates as a single row.
type ColumnList []Column

// Value implements driver.Valuer
func (l ColumnList) Value() (driver.Value, error) {
	if l == nil {
		l = ColumnList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *ColumnList) Scan(value interface{}) error {
	if value == nil {
		*l = ColumnList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported column list type %T", value)
	}
}

// Board is the Kanban aggregate root. Every structural mutation is a
// read-modify-write of the whole aggregate guarded by the version counter.
type Board struct {
	shared.TenantAggregateRoot
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Columns     ColumnList `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (Board) TableName() string {
	return "boards"
}

// NewBoard creates an empty board
func NewBoard(tenantID, createdBy uuid.UUID, name, description string) (*Board, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Board name cannot be empty")
	}

	return &Board{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		Name:                name,
		Description:         description,
		Columns:             ColumnList{},
	}, nil
}

// Update updates the board's own fields without touching columns
func (b *Board) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Board name cannot be empty")
	}
	b.Name = name
	b.Description = description
	b.touch()
	return nil
}

// AddColumn appends a new column. When order is nil the column goes to the
// end (order = current column count).
func (b *Board) AddColumn(name string, order *int) (*Column, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Column name cannot be empty")
	}

	ord := len(b.Columns)
	if order != nil {
		ord = *order
	}
	col := Column{
		ID:    uuid.New(),
		Name:  name,
		Order: ord,
		Cards: []Card{},
	}
	b.Columns = append(b.Columns, col)
	b.touch()
	return &b.Columns[len(b.Columns)-1], nil
}

// UpdateColumn partially updates a column's name and order; cards are untouched
func (b *Board) UpdateColumn(columnID uuid.UUID, name *string, order *int) (*Column, error) {
	col := b.findColumn(columnID)
	if col == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Column not found")
	}
	if name != nil {
		if *name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Column name cannot be empty")
		}
		col.Name = *name
	}
	if order != nil {
		col.Order = *order
	}
	b.touch()
	return col, nil
}

// RemoveColumn deletes a column together with all of its cards
func (b *Board) RemoveColumn(columnID uuid.UUID) error {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			b.Columns = append(b.Columns[:i], b.Columns[i+1:]...)
			b.touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Column not found")
}

// AddCard appends a card to the addressed column. When order is nil the
// card goes to the end of that column.
func (b *Board) AddCard(columnID uuid.UUID, title, description string, dueDate *time.Time, assigneeIDs []string, order *int) (*Card, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Card title cannot be empty")
	}
	col := b.findColumn(columnID)
	if col == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Column not found")
	}

	ord := len(col.Cards)
	if order != nil {
		ord = *order
	}
	card := Card{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		AssigneeIDs: assigneeIDs,
		Order:       ord,
		CreatedAt:   time.Now(),
	}
	col.Cards = append(col.Cards, card)
	b.touch()
	return &col.Cards[len(col.Cards)-1], nil
}

// CardUpdate carries a partial card update. Nil fields are left untouched;
// a non-nil AssigneeIDs replaces the previous set entirely.
type CardUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	AssigneeIDs []string
	Order       *int
}

// UpdateCard partially updates a card in the addressed column
func (b *Board) UpdateCard(columnID, cardID uuid.UUID, update CardUpdate) (*Card, error) {
	col := b.findColumn(columnID)
	if col == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Column not found")
	}
	card := findCard(col, cardID)
	if card == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Card not found")
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, shared.NewDomainError("INVALID_TITLE", "Card title cannot be empty")
		}
		card.Title = *update.Title
	}
	if update.Description != nil {
		card.Description = *update.Description
	}
	if update.DueDate != nil {
		card.DueDate = update.DueDate
	} else if update.ClearDue {
		card.DueDate = nil
	}
	if update.AssigneeIDs != nil {
		card.AssigneeIDs = update.AssigneeIDs
	}
	if update.Order != nil {
		card.Order = *update.Order
	}
	b.touch()
	return card, nil
}

// RemoveCard deletes a card from the addressed column
func (b *Board) RemoveCard(columnID, cardID uuid.UUID) error {
	col := b.findColumn(columnID)
	if col == nil {
		return shared.NewDomainError("NOT_FOUND", "Column not found")
	}
	for i := range col.Cards {
		if col.Cards[i].ID == cardID {
			col.Cards = append(col.Cards[:i], col.Cards[i+1:]...)
			b.touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Card not found")
}

// MoveCard relocates a card to a target column at the given order index.
// The card is located by scanning all columns, removed from its source,
// assigned Order = newOrder and spliced into the target at that index
// (clamped to the list length). Sibling cards keep their existing order
// values; they are not renumbered.
func (b *Board) MoveCard(cardID, targetColumnID uuid.UUID, newOrder int) error {
	var moved *Card
	for ci := range b.Columns {
		col := &b.Columns[ci]
		for i := range col.Cards {
			if col.Cards[i].ID == cardID {
				card := col.Cards[i]
				col.Cards = append(col.Cards[:i], col.Cards[i+1:]...)
				moved = &card
				break
			}
		}
		if moved != nil {
			break
		}
	}
	if moved == nil {
		return shared.NewDomainError("NOT_FOUND", "Card not found")
	}

	target := b.findColumn(targetColumnID)
	if target == nil {
		return shared.NewDomainError("NOT_FOUND", "Target column not found")
	}

	if newOrder < 0 {
		newOrder = 0
	}
	moved.Order = newOrder

	idx := newOrder
	if idx > len(target.Cards) {
		idx = len(target.Cards)
	}
	target.Cards = append(target.Cards, Card{})
	copy(target.Cards[idx+1:], target.Cards[idx:])
	target.Cards[idx] = *moved

	b.touch()
	return nil
}

// FindCard returns the card and its parent column, scanning all columns
func (b *Board) FindCard(cardID uuid.UUID) (*Column, *Card) {
	for ci := range b.Columns {
		col := &b.Columns[ci]
		if card := findCard(col, cardID); card != nil {
			return col, card
		}
	}
	return nil, nil
}

func (b *Board) findColumn(columnID uuid.UUID) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return &b.Columns[i]
		}
	}
	return nil
}

func findCard(col *Column, cardID uuid.UUID) *Card {
	for i := range col.Cards {
		if col.Cards[i].ID == cardID {
			return &col.Cards[i]
		}
	}
	return nil
}

func (b *Board) touch() {
	b.UpdatedAt = time.Now()
}
