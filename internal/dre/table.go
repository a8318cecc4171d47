package dre

import (
	"fmt"
	"math"
)

// Table is an immutable period x account matrix. Rows are period labels in
// the statement's native order; columns are account identifiers or derived
// column names.
type Table struct {
	periods []string
	columns []string
	index   map[string]int
	values  [][]float64 // values[column][row]
}

// NewTable builds a table from period labels, column names and column-major
// values (values[i] holds the series of columns[i]). Inputs are copied.
func NewTable(periods, columns []string, values [][]float64) (*Table, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("table has %d columns but %d value series", len(columns), len(values))
	}

	t := &Table{
		periods: append([]string(nil), periods...),
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
		values:  make([][]float64, 0, len(columns)),
	}

	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, exists := t.index[name]; exists {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		if len(values[i]) != len(periods) {
			return nil, fmt.Errorf("column %q has %d values, want %d", name, len(values[i]), len(periods))
		}
		t.index[name] = len(t.columns)
		t.columns = append(t.columns, name)
		t.values = append(t.values, append([]float64(nil), values[i]...))
	}

	return t, nil
}

// EmptyTable returns a table with no rows and no columns.
func EmptyTable() *Table {
	return &Table{index: map[string]int{}}
}

// Periods returns a copy of the row labels.
func (t *Table) Periods() []string {
	return append([]string(nil), t.periods...)
}

// Columns returns a copy of the column names in table order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.periods)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0 || t.Width() == 0
}

// Has reports whether the table contains the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Column returns a copy of the named column's values.
func (t *Table) Column(column string) ([]float64, bool) {
	i, ok := t.index[column]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), t.values[i]...), true
}

// Value returns the value at row for the named column. It returns NaN when
// the column or the row do not exist.
func (t *Table) Value(row int, column string) float64 {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.periods) {
		return math.NaN()
	}
	return t.values[i][row]
}

// Sum returns the sum of the named column over all rows.
func (t *Table) Sum(column string) (float64, error) {
	i, ok := t.index[column]
	if !ok {
		return 0, accountNotFound(column, "")
	}
	return sum(t.values[i]), nil
}

// Select returns a table restricted to the named columns, in the given order.
// Duplicate names are kept once.
func (t *Table) Select(columns ...string) (*Table, error) {
	names := make([]string, 0, len(columns))
	series := make([][]float64, 0, len(columns))
	seen := make(map[string]bool, len(columns))

	for _, name := range columns {
		if seen[name] {
			continue
		}
		i, ok := t.index[name]
		if !ok {
			return nil, accountNotFound(name, "")
		}
		seen[name] = true
		names = append(names, name)
		series = append(series, t.values[i])
	}

	return NewTable(t.periods, names, series)
}

// WithColumn returns a new table with the column appended, or replaced in
// place when a column of that name already exists.
func (t *Table) WithColumn(name string, values []float64) (*Table, error) {
	columns := t.Columns()
	series := make([][]float64, len(t.values), len(t.values)+1)
	copy(series, t.values)

	if i, ok := t.index[name]; ok {
		series[i] = values
	} else {
		columns = append(columns, name)
		series = append(series, values)
	}

	return NewTable(t.periods, columns, series)
}

// Rows returns the table in row-major form, one slice per period, with
// values in column order.
func (t *Table) Rows() [][]float64 {
	rows := make([][]float64, len(t.periods))
	for r := range rows {
		row := make([]float64, len(t.columns))
		for c := range t.columns {
			row[c] = t.values[c][r]
		}
		rows[r] = row
	}
	return rows
}

// filterRows keeps the rows whose index passes keep, in native order.
func (t *Table) filterRows(keep func(row int) bool) *Table {
	var rows []int
	for r := range t.periods {
		if keep(r) {
			rows = append(rows, r)
		}
	}

	periods := make([]string, len(rows))
	for i, r := range rows {
		periods[i] = t.periods[r]
	}

	series := make([][]float64, len(t.columns))
	for c := range t.columns {
		col := make([]float64, len(rows))
		for i, r := range rows {
			col[i] = t.values[c][r]
		}
		series[c] = col
	}

	out, _ := NewTable(periods, t.columns, series)
	return out
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
