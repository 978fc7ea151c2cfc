package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Reader wraps encoding/csv with header-aware access, UTF-8 BOM
// stripping and encoding validation. Rows are addressed by column
// name so callers never deal with positional indexes.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	headers []string
	rowNum  int
	maxRows int
}

// Option configures a Reader.
type Option func(*Reader)

// WithDelimiter overrides the default comma delimiter.
func WithDelimiter(d rune) Option {
	return func(r *Reader) {
		r.csv.Comma = d
	}
}

// WithMaxRows caps how many data rows ReadAll will return.
func WithMaxRows(n int) Option {
	return func(r *Reader) {
		r.maxRows = n
	}
}

// NewReader validates the stream is UTF-8, strips a leading BOM and
// reads the header row. It fails fast on empty or binary input so
// row-level processing only ever sees well-formed text.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	buf := bufio.NewReader(src)

	head, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read import stream: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
		head = head[3:]
	}
	if err == nil {
		// The window may cut a multibyte rune; drop the trailing
		// partial rune so it is not misread as binary input.
		head = trimPartialRune(head)
	}
	if !utf8.Valid(head) {
		return nil, ErrInvalidEncoding
	}

	r := &Reader{
		csv:     csv.NewReader(buf),
		columns: make(map[string]int),
		maxRows: DefaultMaxRows,
	}
	r.csv.LazyQuotes = true
	r.csv.TrimLeadingSpace = true
	r.csv.FieldsPerRecord = -1

	for _, opt := range opts {
		opt(r)
	}

	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	r.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		r.headers[i] = name
		r.columns[name] = i
	}
	r.rowNum = 1

	return r, nil
}

// trimPartialRune strips up to utf8.UTFMax-1 trailing bytes when they
// form the start of a rune whose remaining bytes lie past the buffer.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < utf8.RuneSelf {
			return b
		}
		if !utf8.RuneStart(c) {
			continue
		}
		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}
		return b
	}
	return b
}

// Headers returns the normalized header names in file order.
func (r *Reader) Headers() []string {
	return r.headers
}

// MissingColumns reports which of the required column names are
// absent from the header row.
func (r *Reader) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := r.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row is one data row addressed by column name. Number is the
// 1-based physical row in the file, header included.
type Row struct {
	Number  int
	values  []string
	columns map[string]int
}

// Get returns the trimmed cell value for a column, or "" when the
// column is absent or the row is short.
func (row *Row) Get(column string) string {
	idx, ok := row.columns[column]
	if !ok || idx >= len(row.values) {
		return ""
	}
	return strings.TrimSpace(row.values[idx])
}

// IsEmpty reports whether every cell in the row is blank.
func (row *Row) IsEmpty() bool {
	for _, v := range row.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next non-empty data row, io.EOF at end of
// input, or a RowError when the row is malformed CSV.
func (r *Reader) ReadRow() (*Row, error) {
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		r.rowNum++
		if err != nil {
			return nil, RowError{
				Row:     r.rowNum,
				Code:    ErrCodeMalformedRow,
				Message: err.Error(),
			}
		}

		row := &Row{Number: r.rowNum, values: record, columns: r.columns}
		if row.IsEmpty() {
			continue
		}
		return row, nil
	}
}

// ReadAll drains the remaining rows, skipping blank lines. It stops
// with ErrTooManyRows once the configured row cap is exceeded.
func (r *Reader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
		if r.maxRows > 0 && len(rows) > r.maxRows {
			return rows, ErrTooManyRows
		}
	}
}
