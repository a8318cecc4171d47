package dre

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustTable builds a table from named columns given in order.
func mustTable(t *testing.T, periods []string, cols ...any) *Table {
	t.Helper()
	require.Zero(t, len(cols)%2, "cols must be name/values pairs")

	var names []string
	var values [][]float64
	for i := 0; i < len(cols); i += 2 {
		names = append(names, cols[i].(string))
		values = append(values, cols[i+1].([]float64))
	}

	tbl, err := NewTable(periods, names, values)
	require.NoError(t, err)
	return tbl
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		periods []string
		columns []string
		values  [][]float64
		wantErr string
	}{
		{"valid", []string{"Jan", "Fev"}, []string{"a", "b"}, [][]float64{{1, 2}, {3, 4}}, ""},
		{"no columns", []string{"Jan"}, nil, nil, ""},
		{"series mismatch", []string{"Jan"}, []string{"a"}, nil, "value series"},
		{"empty name", []string{"Jan"}, []string{""}, [][]float64{{1}}, "empty name"},
		{"duplicate", []string{"Jan"}, []string{"a", "a"}, [][]float64{{1}, {2}}, "duplicate"},
		{"short series", []string{"Jan", "Fev"}, []string{"a"}, [][]float64{{1}}, "has 1 values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.periods, tt.columns, tt.values)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.periods), tbl.Len())
			assert.Equal(t, len(tt.columns), tbl.Width())
		})
	}
}

func TestTableIsImmutable(t *testing.T) {
	values := []float64{1, 2}
	tbl, err := NewTable([]string{"Jan", "Fev"}, []string{"a"}, [][]float64{values})
	require.NoError(t, err)

	values[0] = 99
	col, ok := tbl.Column("a")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, col)

	col[1] = 42
	assert.Equal(t, 2.0, tbl.Value(1, "a"))

	_, err = tbl.WithColumn("a", []float64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, 1.0, tbl.Value(0, "a"))
}

func TestTableAccessors(t *testing.T) {
	tbl := mustTable(t, []string{"Jan", "Fev", "Mar"},
		"a", []float64{1, 2, 3},
		"b", []float64{-1, 0, 4},
	)

	assert.Equal(t, []string{"Jan", "Fev", "Mar"}, tbl.Periods())
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.True(t, tbl.Has("b"))
	assert.False(t, tbl.Has("c"))
	assert.True(t, math.IsNaN(tbl.Value(0, "c")))
	assert.True(t, math.IsNaN(tbl.Value(3, "a")))
	assert.Equal(t, [][]float64{{1, -1}, {2, 0}, {3, 4}}, tbl.Rows())

	total, err := tbl.Sum("b")
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)

	_, err = tbl.Sum("c")
	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

func TestTableSelect(t *testing.T) {
	tbl := mustTable(t, []string{"Jan"},
		"a", []float64{1},
		"b", []float64{2},
		"c", []float64{3},
	)

	sel, err := tbl.Select("c", "a", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sel.Columns())

	_, err = tbl.Select("a", "missing")
	var notFound *AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Account)
}

func TestEmptyTable(t *testing.T) {
	tbl := EmptyTable()
	assert.True(t, tbl.IsEmpty())
	assert.Empty(t, tbl.Rows())
	assert.False(t, tbl.Has("a"))
}
