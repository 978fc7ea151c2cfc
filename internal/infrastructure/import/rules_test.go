package csvimport

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSingleRow(t *testing.T, csv string) *Row {
	t.Helper()
	r, err := NewReader(strings.NewReader(csv))
	require.NoError(t, err)
	row, err := r.ReadRow()
	require.NoError(t, err)
	return row
}

func TestRuleRequired(t *testing.T) {
	row := readSingleRow(t, "name,sku\nWidget,\n")
	errs := NewErrorList(10)

	assert.True(t, Column("name").Required().Validate(row, errs))
	assert.False(t, Column("sku").Required().Validate(row, errs))

	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, ErrCodeRequired, errs.Errors()[0].Code)
	assert.Equal(t, "sku", errs.Errors()[0].Column)
}

func TestRuleOptionalBlankPasses(t *testing.T) {
	row := readSingleRow(t, "name,category\nWidget,\n")
	errs := NewErrorList(10)

	assert.True(t, Column("category").MaxLen(100).Validate(row, errs))
	assert.False(t, errs.HasErrors())
}

func TestRuleMaxLen(t *testing.T) {
	row := readSingleRow(t, "name\nabcdef\n")
	errs := NewErrorList(10)

	assert.False(t, Column("name").MaxLen(5).Validate(row, errs))
	assert.Equal(t, ErrCodeTooLong, errs.Errors()[0].Code)
}

func TestRuleDecimal(t *testing.T) {
	row := readSingleRow(t, "price,qty\nnot-a-number,-3\n")
	errs := NewErrorList(10)

	assert.False(t, Column("price").Decimal().Validate(row, errs))
	assert.False(t, Column("qty").Min(decimal.Zero).Validate(row, errs))

	require.Len(t, errs.Errors(), 2)
	assert.Equal(t, ErrCodeInvalidType, errs.Errors()[0].Code)
	assert.Equal(t, ErrCodeOutOfRange, errs.Errors()[1].Code)
}

func TestRulePattern(t *testing.T) {
	skuPattern := regexp.MustCompile(`^[A-Z0-9-]+$`)
	row := readSingleRow(t, "sku\nlowercase sku\n")
	errs := NewErrorList(10)

	ok := Column("sku").Pattern(skuPattern, "SKU may only contain A-Z, 0-9 and dashes").Validate(row, errs)
	assert.False(t, ok)
	assert.Contains(t, errs.Errors()[0].Message, "A-Z")
}

func TestRuleSetValidateRow(t *testing.T) {
	rules := NewRuleSet(
		Column("name").Required().MaxLen(200),
		Column("sku").Required().MaxLen(50),
		Column("unit_price").Min(decimal.Zero),
	)

	assert.ElementsMatch(t, []string{"name", "sku"}, rules.RequiredColumns())

	good := readSingleRow(t, "name,sku,unit_price\nWidget,W-1,9.99\n")
	errs := NewErrorList(10)
	assert.True(t, rules.ValidateRow(good, errs))
	assert.False(t, errs.HasErrors())

	bad := readSingleRow(t, "name,sku,unit_price\n,W-1,minus\n")
	assert.False(t, rules.ValidateRow(bad, errs))
	assert.Equal(t, 2, errs.Total())
}

func TestErrorListCap(t *testing.T) {
	errs := NewErrorList(2)
	for i := 0; i < 5; i++ {
		errs.Add(RowError{Row: i + 2, Code: ErrCodeRequired, Message: "value is required"})
	}

	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, 5, errs.Total())
	assert.True(t, errs.Truncated())
}

func TestRowErrorMessage(t *testing.T) {
	withColumn := RowError{Row: 3, Column: "sku", Code: ErrCodeRequired, Message: "value is required"}
	assert.Equal(t, `row 3, column "sku": value is required`, withColumn.Error())

	bare := RowError{Row: 3, Code: ErrCodeMalformedRow, Message: "bad quoting"}
	assert.Equal(t, "row 3: bad quoting", bare.Error())
}
