package csvimport

import (
	"errors"
	"fmt"
)

// Row-level error codes surfaced to API clients.
const (
	ErrCodeRequired     = "IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType  = "IMPORT_INVALID_TYPE"
	ErrCodeTooLong      = "IMPORT_VALUE_TOO_LONG"
	ErrCodeOutOfRange   = "IMPORT_VALUE_OUT_OF_RANGE"
	ErrCodeMalformedRow = "IMPORT_MALFORMED_ROW"
	ErrCodeDuplicate    = "IMPORT_DUPLICATE"
)

// DefaultMaxRows bounds a single import file.
const DefaultMaxRows = 5000

// File-level failures that abort the import before any row is
// processed.
var (
	ErrEmptyFile       = errors.New("import file is empty")
	ErrInvalidEncoding = errors.New("import file is not valid UTF-8")
	ErrMissingHeader   = errors.New("import file has no header row")
	ErrTooManyRows     = errors.New("import file exceeds the row limit")
)

// RowError describes a single rejected row. The row keeps its
// 1-based file position so users can fix the offending line.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorList accumulates row errors up to a cap. Past the cap it
// keeps counting but stops storing, so a pathological file cannot
// balloon the response payload.
type ErrorList struct {
	max    int
	errors []RowError
	total  int
}

// NewErrorList creates an ErrorList storing at most max errors.
// A non-positive max stores everything.
func NewErrorList(max int) *ErrorList {
	return &ErrorList{max: max}
}

// Add records a row error.
func (l *ErrorList) Add(err RowError) {
	l.total++
	if l.max <= 0 || len(l.errors) < l.max {
		l.errors = append(l.errors, err)
	}
}

// Errors returns the stored errors in insertion order.
func (l *ErrorList) Errors() []RowError {
	return l.errors
}

// Total counts every error seen, stored or not.
func (l *ErrorList) Total() int {
	return l.total
}

// Truncated reports whether errors were dropped past the cap.
func (l *ErrorList) Truncated() bool {
	return l.total > len(l.errors)
}

// HasErrors reports whether any error was recorded.
func (l *ErrorList) HasErrors() bool {
	return l.total > 0
}
