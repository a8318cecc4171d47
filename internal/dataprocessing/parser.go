package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"drecli/internal/config"
	"drecli/internal/dre"
	apierrors "drecli/internal/errors"
)

// LoadOptions locates the statement inside a workbook.
type LoadOptions struct {
	// Sheet is tried first; when it is empty or absent every sheet is
	// searched for a header row holding IndexColumn.
	Sheet       string
	IndexColumn string
	// Months are the period columns to keep, in output order. Other
	// columns, such as a running total, are ignored.
	Months []string
	Logger *slog.Logger
}

// OptionsFromConfig builds LoadOptions from the statement configuration.
func OptionsFromConfig(cfg config.StatementConfig, logger *slog.Logger) LoadOptions {
	return LoadOptions{
		Sheet:       cfg.Sheet,
		IndexColumn: cfg.IndexColumn,
		Months:      cfg.Months,
		Logger:      logger,
	}
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.IndexColumn == "" {
		o.IndexColumn = config.DefaultIndexColumn
	}
	if len(o.Months) == 0 {
		o.Months = config.Months
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// LoadStatement reads the income statement at path into a period x account
// table. Each line label becomes a column named by dre.CleanName; blank
// labels are skipped and blank cells read as 0.
func LoadStatement(ctx context.Context, path string, opts LoadOptions) (*dre.Table, error) {
	opts = opts.withDefaults()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apierrors.NewStorageError("failed to open workbook", err).With("path", path)
	}
	defer f.Close()

	sheet, rows, header, err := findStatementSheet(f, opts)
	if err != nil {
		return nil, err
	}

	indexCol, monthCols, periods := mapHeader(rows[header], opts)
	if len(periods) == 0 {
		return nil, apierrors.NewParsingError("no month columns in header row", nil).
			With("sheet", sheet).
			With("months", opts.Months)
	}

	var (
		columns []string
		values  [][]float64
		seen    = make(map[string]int)
	)
	for r := header + 1; r < len(rows); r++ {
		row := rows[r]
		label := strings.TrimSpace(cell(row, indexCol))
		if label == "" {
			continue
		}

		id := dre.CleanName(label)
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			return nil, apierrors.NewParsingError("duplicate account identifier", nil).
				With("account", id).
				With("label", label).
				With("row", r+1).
				With("first_row", first)
		}
		seen[id] = r + 1

		line := make([]float64, len(monthCols))
		for i, c := range monthCols {
			v, err := ParseNumber(cell(row, c))
			if err != nil {
				name, _ := excelize.CoordinatesToCellName(c+1, r+1)
				return nil, apierrors.NewParsingError("invalid number", err).
					With("sheet", sheet).
					With("cell", name).
					With("account", id)
			}
			line[i] = v
		}

		columns = append(columns, id)
		values = append(values, line)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := dre.NewTable(periods, columns, values)
	if err != nil {
		return nil, apierrors.NewParsingError("failed to build statement table", err)
	}

	opts.Logger.InfoContext(ctx, "statement loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("accounts", table.Width()),
		slog.Any("periods", periods),
	)
	return table, nil
}

// findStatementSheet returns the sheet name, its raw rows and the index of
// the header row.
func findStatementSheet(f *excelize.File, opts LoadOptions) (string, [][]string, int, error) {
	sheets := f.GetSheetList()

	candidates := make([]string, 0, len(sheets)+1)
	if opts.Sheet != "" {
		candidates = append(candidates, opts.Sheet)
	}
	for _, name := range sheets {
		if name != opts.Sheet {
			candidates = append(candidates, name)
		}
	}

	for i, name := range candidates {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			continue
		}
		header := headerRow(rows, opts.IndexColumn)
		if header < 0 {
			continue
		}
		if i > 0 && opts.Sheet != "" {
			opts.Logger.Warn("configured sheet not usable, using detected sheet",
				slog.String("configured", opts.Sheet),
				slog.String("sheet", name))
		}
		return name, rows, header, nil
	}

	return "", nil, -1, apierrors.NewNotFoundError("statement sheet").
		With("sheet", opts.Sheet).
		With("index_column", opts.IndexColumn).
		With("sheets", sheets)
}

// headerRow finds the first row holding the index column label.
func headerRow(rows [][]string, indexColumn string) int {
	for i, row := range rows {
		for _, c := range row {
			if strings.EqualFold(strings.TrimSpace(c), indexColumn) {
				return i
			}
		}
	}
	return -1
}

// mapHeader returns the index column position and the positions and labels
// of the configured months present in the header, in configured order.
func mapHeader(header []string, opts LoadOptions) (int, []int, []string) {
	positions := make(map[string]int, len(header))
	indexCol := -1
	for i, c := range header {
		name := strings.TrimSpace(c)
		if indexCol < 0 && strings.EqualFold(name, opts.IndexColumn) {
			indexCol = i
			continue
		}
		if _, ok := positions[strings.ToLower(name)]; !ok {
			positions[strings.ToLower(name)] = i
		}
	}

	var (
		cols    []int
		periods []string
	)
	for _, m := range opts.Months {
		if i, ok := positions[strings.ToLower(m)]; ok {
			cols = append(cols, i)
			periods = append(periods, m)
		}
	}
	return indexCol, cols, periods
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
