// Package dataprocessing reads the management income statement (DRE) from
// an Excel workbook into a dre.Table.
//
// The statement sheet has one line per account, labelled in the index
// column ("Variaveis" by default), and one column per month. LoadStatement
// transposes it so months become rows and accounts become columns named by
// dre.CleanName:
//
//	opts := dataprocessing.OptionsFromConfig(cfg.Statement, logger)
//	raw, err := dataprocessing.LoadStatement(ctx, cfg.WorkbookPath(), opts)
//
// Errors are internal/errors.AppError values: a storage error when the
// workbook cannot be opened, not found when no sheet carries the index
// column, and parsing errors for bad numbers or two labels that clean to
// the same identifier.
package dataprocessing
