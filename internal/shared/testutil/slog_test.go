package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures records and bound attributes", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "test").Info("derived", slog.Int("rows", 3))
		logger.Error("failed")

		require.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("derived"))
		assert.True(t, handler.ContainsAttr("component", "test"))
		assert.True(t, handler.ContainsAttr("rows", int64(3)))
		assert.Len(t, handler.RecordsAt(slog.LevelError), 1)
	})

	t.Run("derived handlers share the sink", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("a", 1).Info("one")
		logger.With("b", 2).Info("two")

		records := handler.Records()
		require.Len(t, records, 2)
		assert.NotContains(t, records[1].Attrs, "a")
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("x")
		handler.Clear()
		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestWriteWorkbook(t *testing.T) {
	sheet := DRESheet("DRE_dummy", []string{"Jan", "Fev"}, []string{"Receita"}, map[string][]any{
		"Receita": {100, 200, 300},
	})
	path := WriteWorkbook(t, t.TempDir(), "dre.xlsx", sheet)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("DRE_dummy")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Variaveis", "Jan", "Fev", "Total"}, rows[0])
	assert.Equal(t, []string{"Receita", "100", "200", "300"}, rows[1])
}
