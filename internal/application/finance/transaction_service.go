package finance

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/finance"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// TransactionService handles the financial ledger
type TransactionService struct {
	transactionRepo finance.TransactionRepository
	metrics         *telemetry.BusinessMetrics
}

// NewTransactionService creates a new TransactionService. metrics may be nil.
func NewTransactionService(transactionRepo finance.TransactionRepository, metrics *telemetry.BusinessMetrics) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
	}
}

// Create records a new ledger entry
func (s *TransactionService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "finance", "create_transaction",
		attribute.String(telemetry.SpanAttrTransactionType, string(req.Type)))
	defer span.End()

	transaction, err := finance.NewTransaction(tenantID, req.Type, req.Amount, req.Category, req.Date)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if req.Description != "" {
		transaction.SetDescription(req.Description)
	}
	if req.EmployeeID != nil {
		transaction.SetEmployee(req.EmployeeID)
	}
	if len(req.Tags) > 0 {
		transaction.SetTags(req.Tags)
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTransaction(ctx, tenantID, string(transaction.Type))
	}

	response := ToTransactionResponse(transaction)
	return &response, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, tenantID, transactionID uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByIDForTenant(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}

	response := ToTransactionResponse(transaction)
	return &response, nil
}

// List retrieves transactions with filtering and pagination
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
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

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.EmployeeID != nil {
		domainFilter.Filters["employee_id"] = *filter.EmployeeID
	}
	if filter.Tag != "" {
		domainFilter.Filters["tag"] = filter.Tag
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	transactions, err := s.transactionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransactionResponses(transactions), total, nil
}

// Update applies a partial update to a transaction
func (s *TransactionService) Update(ctx context.Context, tenantID, transactionID uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByIDForTenant(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil || req.Amount != nil || req.Category != nil || req.Date != nil {
		txType := transaction.Type
		amount := transaction.Amount
		category := transaction.Category
		date := transaction.Date
		if req.Type != nil {
			txType = *req.Type
		}
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.Category != nil {
			category = *req.Category
		}
		if req.Date != nil {
			date = *req.Date
		}
		if err := transaction.Update(txType, amount, category, date); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		transaction.SetDescription(*req.Description)
	}
	if req.EmployeeID != nil {
		transaction.SetEmployee(req.EmployeeID)
	}
	if req.Tags != nil {
		transaction.SetTags(req.Tags)
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	response := ToTransactionResponse(transaction)
	return &response, nil
}

// Delete hard-deletes a transaction
func (s *TransactionService) Delete(ctx context.Context, tenantID, transactionID uuid.UUID) error {
	return s.transactionRepo.DeleteForTenant(ctx, tenantID, transactionID)
}
