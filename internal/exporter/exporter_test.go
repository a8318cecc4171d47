package exporter

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drecli/internal/dre"
)

func readCSV(t *testing.T, path string, comma rune) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	path, err := w.WriteCSV("nested/out.csv", WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "out.csv"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, readCSV(t, path, ','))

	t.Run("append skips headers and BOM", func(t *testing.T) {
		_, err := w.WriteCSV("nested/out.csv", WriteOptions{
			Headers:   []string{"a", "b"},
			Records:   [][]string{{"3", "4"}},
			Append:    true,
			BOMPrefix: true,
		})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, readCSV(t, path, ','))
	})

	t.Run("absolute path and custom delimiter", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "semi.csv")
		got, err := w.WriteTable(abs, StyleBR, []string{"x", "y"}, [][]string{{"1,5", "2"}})
		require.NoError(t, err)
		assert.Equal(t, abs, got)
		assert.Equal(t, [][]string{{"x", "y"}, {"1,5", "2"}}, readCSV(t, abs, ';'))
	})
}

func testView(t *testing.T) *dre.DerivedView {
	t.Helper()
	table, err := dre.NewTable([]string{"Jan", "Fev"},
		[]string{"receita", dre.PercentOfTotalName("receita"), dre.RatioToBaseName("receita")},
		[][]float64{{1234.5, 0}, {1, 0}, {math.NaN(), math.NaN()}})
	require.NoError(t, err)
	return &dre.DerivedView{Category: dre.Category{Name: "revenue"}, Table: table}
}

func TestDerivedViewRecords(t *testing.T) {
	view := testView(t)

	headers, records := DerivedViewRecords(view, StylePlain)
	assert.Equal(t, []string{"Mes", "receita", "percent_of_total_receita", "ratio_to_base_receita"}, headers)
	assert.Equal(t, [][]string{
		{"Jan", "1234.50", "1.000000", ""},
		{"Fev", "0.00", "0.000000", ""},
	}, records)

	_, br := DerivedViewRecords(view, StyleBR)
	assert.Equal(t, []string{"Jan", "1.234,50", "100,00%", ""}, br[0])

	t.Run("empty view", func(t *testing.T) {
		headers, records := DerivedViewRecords(&dre.DerivedView{Table: dre.EmptyTable()}, StylePlain)
		assert.Equal(t, []string{"Mes"}, headers)
		assert.Empty(t, records)
	})
}

func TestStatisticsRecords(t *testing.T) {
	stats := []dre.StatisticsRecord{
		dre.Summarize("ebitda", []float64{10, 20, 30}),
		dre.Summarize("empty", nil),
	}

	headers, records := StatisticsRecords(stats, StylePlain)
	assert.Equal(t, []string{"metric", "count", "best", "worst", "mean", "spread"}, headers)
	assert.Equal(t, []string{"ebitda", "3", "30.00", "10.00", "20.00", "10.00"}, records[0])
	assert.Equal(t, []string{"empty", "0", "", "", "", ""}, records[1])
}

func TestMeasureRecords(t *testing.T) {
	measures := []dre.Measure{
		{Column: "receita", Total: 2000, ShareOfBase: 1},
		{Column: "ebitda", Total: 250, ShareOfBase: 0.125},
		{Column: "nada", Total: 0, ShareOfBase: math.NaN()},
	}

	_, records := MeasureRecords(measures, StyleBR)
	assert.Equal(t, [][]string{
		{"receita", "2.000,00", "100,00%"},
		{"ebitda", "250,00", "12,50%"},
		{"nada", "0,00", ""},
	}, records)
}

func TestFormatBR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{1234.56, "1.234,56"},
		{-1234.5, "-1.234,50"},
		{1234567.891, "1.234.567,89"},
		{math.NaN(), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBR(tt.in))
	}

	assert.Equal(t, "12,34%", FormatPercentBR(0.1234))
	assert.Equal(t, "-5,00%", FormatPercentBR(-0.05))
	assert.Equal(t, "", FormatPercentBR(math.NaN()))
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{"": StylePlain, "plain": StylePlain, "BR": StyleBR, "pt-br": StyleBR} {
		got, ok := ParseStyle(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseStyle("fr")
	assert.False(t, ok)

	assert.Equal(t, ',', StylePlain.Comma())
	assert.Equal(t, ';', StyleBR.Comma())
}
