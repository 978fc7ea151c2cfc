package csvimport

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Rule validates one named column of a row.
type Rule struct {
	column   string
	required bool
	maxLen   int
	decimal  bool
	min      *decimal.Decimal
	pattern  *regexp.Regexp
	patDesc  string
}

// Column starts a validation rule for the named column. Rules chain:
//
//	csvimport.Column("sku").Required().MaxLen(50)
func Column(name string) *Rule {
	return &Rule{column: name}
}

// Required rejects blank cells.
func (r *Rule) Required() *Rule {
	r.required = true
	return r
}

// MaxLen bounds the cell length in runes.
func (r *Rule) MaxLen(n int) *Rule {
	r.maxLen = n
	return r
}

// Decimal requires the cell to parse as a decimal number.
func (r *Rule) Decimal() *Rule {
	r.decimal = true
	return r
}

// Min rejects decimal values below the floor. Implies Decimal.
func (r *Rule) Min(v decimal.Decimal) *Rule {
	r.decimal = true
	r.min = &v
	return r
}

// Pattern requires non-blank cells to match the compiled expression.
// The description is used in the row error message.
func (r *Rule) Pattern(re *regexp.Regexp, description string) *Rule {
	r.pattern = re
	r.patDesc = description
	return r
}

// Validate checks the rule against one row, appending failures to
// the list. It returns false when the cell was rejected.
func (r *Rule) Validate(row *Row, errs *ErrorList) bool {
	value := row.Get(r.column)

	if value == "" {
		if r.required {
			errs.Add(RowError{
				Row:     row.Number,
				Column:  r.column,
				Code:    ErrCodeRequired,
				Message: "value is required",
			})
			return false
		}
		return true
	}

	if r.maxLen > 0 && len([]rune(value)) > r.maxLen {
		errs.Add(RowError{
			Row:     row.Number,
			Column:  r.column,
			Code:    ErrCodeTooLong,
			Message: fmt.Sprintf("value exceeds %d characters", r.maxLen),
		})
		return false
	}

	if r.decimal {
		d, err := decimal.NewFromString(value)
		if err != nil {
			errs.Add(RowError{
				Row:     row.Number,
				Column:  r.column,
				Code:    ErrCodeInvalidType,
				Message: fmt.Sprintf("%q is not a valid number", value),
			})
			return false
		}
		if r.min != nil && d.LessThan(*r.min) {
			errs.Add(RowError{
				Row:     row.Number,
				Column:  r.column,
				Code:    ErrCodeOutOfRange,
				Message: fmt.Sprintf("value must be at least %s", r.min.String()),
			})
			return false
		}
	}

	if r.pattern != nil && !r.pattern.MatchString(value) {
		errs.Add(RowError{
			Row:     row.Number,
			Column:  r.column,
			Code:    ErrCodeInvalidType,
			Message: r.patDesc,
		})
		return false
	}

	return true
}

// RuleSet applies a group of column rules to each row.
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet builds a RuleSet from the given rules.
func NewRuleSet(rules ...*Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// RequiredColumns lists columns any rule marks required, for header
// validation before row processing starts.
func (s *RuleSet) RequiredColumns() []string {
	var cols []string
	for _, r := range s.rules {
		if r.required {
			cols = append(cols, r.column)
		}
	}
	return cols
}

// ValidateRow runs every rule against the row. It reports whether
// the row passed all rules; failures land in errs.
func (s *RuleSet) ValidateRow(row *Row, errs *ErrorList) bool {
	ok := true
	for _, r := range s.rules {
		if !r.Validate(row, errs) {
			ok = false
		}
	}
	return ok
}
