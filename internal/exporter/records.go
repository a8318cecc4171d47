package exporter

import (
	"strconv"
	"strings"

	"drecli/internal/dre"
)

// PeriodHeader labels the period column of derived view exports.
const PeriodHeader = "Mes"

// DerivedViewRecords lays a derived view out as one row per period. Share
// and ratio columns use ratio formatting; undefined cells are empty.
func DerivedViewRecords(view *dre.DerivedView, style Style) ([]string, [][]string) {
	t := view.Table
	columns := t.Columns()

	headers := append([]string{PeriodHeader}, columns...)
	ratio := make([]bool, len(columns))
	for i, c := range columns {
		ratio[i] = isRatioColumn(c)
	}

	periods := t.Periods()
	records := make([][]string, 0, len(periods))
	for r, p := range periods {
		record := make([]string, 0, len(headers))
		record = append(record, p)
		for i, c := range columns {
			v := t.Value(r, c)
			if ratio[i] {
				record = append(record, style.ratio(v))
			} else {
				record = append(record, style.amount(v))
			}
		}
		records = append(records, record)
	}
	return headers, records
}

// StatisticsRecords lays out one headline summary per row.
func StatisticsRecords(stats []dre.StatisticsRecord, style Style) ([]string, [][]string) {
	headers := []string{"metric", "count", "best", "worst", "mean", "spread"}
	records := make([][]string, 0, len(stats))
	for _, s := range stats {
		records = append(records, []string{
			s.Metric,
			strconv.Itoa(s.Count),
			style.amount(s.Best),
			style.amount(s.Worst),
			style.amount(s.Mean),
			style.amount(s.Spread),
		})
	}
	return headers, records
}

// MeasureRecords lays out the consolidated totals of an overview.
func MeasureRecords(measures []dre.Measure, style Style) ([]string, [][]string) {
	headers := []string{"column", "total", "share_of_base"}
	records := make([][]string, 0, len(measures))
	for _, m := range measures {
		records = append(records, []string{
			m.Column,
			style.amount(m.Total),
			style.ratio(m.ShareOfBase),
		})
	}
	return headers, records
}

func isRatioColumn(name string) bool {
	return strings.HasPrefix(name, dre.PercentOfTotalPrefix) || strings.HasPrefix(name, dre.RatioToBasePrefix)
}
