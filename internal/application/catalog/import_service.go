package catalog

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	csvimport "github.com/bizgrid/backend/internal/infrastructure/import"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxImportErrors caps how many row errors a single response carries.
const maxImportErrors = 100

// ImportResult summarizes one bulk import run. Rejected rows are
// reported individually; the rest of the file still imports.
type ImportResult struct {
	TotalRows int                  `json:"total_rows"`
	Imported  int                  `json:"imported"`
	Rejected  int                  `json:"rejected"`
	Errors    []csvimport.RowError `json:"errors,omitempty"`
	Truncated bool                 `json:"errors_truncated,omitempty"`
}

// ProductImportService loads products in bulk from CSV files. The
// expected columns are name, sku and unit_price, with optional
// description and category.
type ProductImportService struct {
	productRepo catalog.ProductRepository
	rules       *csvimport.RuleSet
}

// NewProductImportService creates a new product import service.
func NewProductImportService(productRepo catalog.ProductRepository) *ProductImportService {
	return &ProductImportService{
		productRepo: productRepo,
		rules: csvimport.NewRuleSet(
			csvimport.Column("name").Required().MaxLen(200),
			csvimport.Column("sku").Required().MaxLen(50),
			csvimport.Column("unit_price").Required().Min(decimal.Zero),
			csvimport.Column("description").MaxLen(2000),
			csvimport.Column("category").MaxLen(100),
		),
	}
}

// Import parses the CSV stream and creates one product per valid
// row. Rows that fail validation or collide on SKU are skipped and
// reported; valid rows import regardless. File-level problems such
// as a missing header abort the whole run with an INVALID_INPUT
// domain error.
func (s *ProductImportService) Import(ctx context.Context, tenantID uuid.UUID, src io.Reader) (*ImportResult, error) {
	reader, err := csvimport.NewReader(src)
	if err != nil {
		return nil, importFileError(err)
	}

	if missing := reader.MissingColumns(s.rules.RequiredColumns()); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_INPUT",
			"CSV is missing required columns: "+strings.Join(missing, ", "))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, importFileError(err)
	}

	result := &ImportResult{TotalRows: len(rows)}
	errs := csvimport.NewErrorList(maxImportErrors)
	seenSKUs := make(map[string]int)

	for _, row := range rows {
		if !s.rules.ValidateRow(row, errs) {
			continue
		}

		sku := row.Get("sku")
		if firstRow, dup := seenSKUs[sku]; dup {
			errs.Add(csvimport.RowError{
				Row:     row.Number,
				Column:  "sku",
				Code:    csvimport.ErrCodeDuplicate,
				Message: "SKU already appears in row " + strconv.Itoa(firstRow),
			})
			continue
		}
		seenSKUs[sku] = row.Number

		exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, sku)
		if err != nil {
			return nil, err
		}
		if exists {
			errs.Add(csvimport.RowError{
				Row:     row.Number,
				Column:  "sku",
				Code:    csvimport.ErrCodeDuplicate,
				Message: "a product with this SKU already exists",
			})
			continue
		}

		// unit_price parsed by the rule set above
		price, _ := decimal.NewFromString(row.Get("unit_price"))

		product, err := catalog.NewProduct(tenantID, row.Get("name"), sku, price)
		if err != nil {
			errs.Add(rowErrorFromDomain(row.Number, err))
			continue
		}
		if desc, cat := row.Get("description"), row.Get("category"); desc != "" || cat != "" {
			if err := product.Update(product.Name, desc, cat); err != nil {
				errs.Add(rowErrorFromDomain(row.Number, err))
				continue
			}
		}

		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		result.Imported++
	}

	result.Rejected = errs.Total()
	result.Errors = errs.Errors()
	result.Truncated = errs.Truncated()

	return result, nil
}

func importFileError(err error) error {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile):
		return shared.NewDomainError("INVALID_INPUT", "CSV file is empty")
	case errors.Is(err, csvimport.ErrInvalidEncoding):
		return shared.NewDomainError("INVALID_INPUT", "CSV file must be UTF-8 encoded")
	case errors.Is(err, csvimport.ErrMissingHeader):
		return shared.NewDomainError("INVALID_INPUT", "CSV file has no header row")
	case errors.Is(err, csvimport.ErrTooManyRows):
		return shared.NewDomainError("INVALID_INPUT", "CSV file exceeds the maximum row count")
	default:
		return err
	}
}

func rowErrorFromDomain(rowNum int, err error) csvimport.RowError {
	var domainErr *shared.DomainError
	msg := err.Error()
	if errors.As(err, &domainErr) {
		msg = domainErr.Message
	}
	return csvimport.RowError{
		Row:     rowNum,
		Code:    csvimport.ErrCodeInvalidType,
		Message: msg,
	}
}
