// Package exporter writes derived DRE views, headline statistics and
// overview totals as CSV, and renders the full report as markdown, HTML
// (goldmark) or terminal text (glamour).
//
// The record helpers turn domain values into string rows and CSVWriter puts
// them on disk:
//
//	w := exporter.NewCSVWriter(cfg.OutputDir(), logger)
//	headers, records := exporter.DerivedViewRecords(view, exporter.StyleBR)
//	path, err := w.WriteTable(view.Category.Name+".csv", exporter.StyleBR, headers, records)
//
// StyleBR formats numbers the way a Brazilian Excel install reads them
// ("1.234,56", "12,34%", ';' delimiter); StylePlain keeps them
// machine-readable. Undefined ratios are written as empty cells.
package exporter
