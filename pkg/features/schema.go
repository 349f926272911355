package features

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySchema     = errors.New("schema has no columns")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrBlankColumn     = errors.New("blank column name")
)

// Schema is the ordered list of columns a trained model was fit against.
// It is immutable once constructed.
type Schema struct {
	columns []string
	index   map[string]int
}

func NewSchema(columns []string) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, ErrEmptySchema
	}
	s := Schema{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if strings.TrimSpace(col) == "" {
			return Schema{}, fmt.Errorf("column %d: %w", i, ErrBlankColumn)
		}
		if _, dup := s.index[col]; dup {
			return Schema{}, fmt.Errorf("column %q: %w", col, ErrDuplicateColumn)
		}
		s.columns[i] = col
		s.index[col] = i
	}
	return s, nil
}

func (s Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the column names in order.
func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

func (s Schema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

func (s Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// Equal reports whether other names the same columns in the same order.
func (s Schema) Equal(other []string) bool {
	if len(other) != len(s.columns) {
		return false
	}
	for i, col := range s.columns {
		if other[i] != col {
			return false
		}
	}
	return true
}
