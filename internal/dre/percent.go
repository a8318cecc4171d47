package dre

import "math"

const (
	// PercentOfTotalPrefix prefixes the column holding value / column total.
	PercentOfTotalPrefix = "percent_of_total_"
	// RatioToBasePrefix prefixes the column holding value / base total.
	RatioToBasePrefix = "ratio_to_base_"
)

// PercentOfTotalName returns the derived column name for column.
func PercentOfTotalName(column string) string {
	return PercentOfTotalPrefix + column
}

// RatioToBaseName returns the derived column name for column.
func RatioToBaseName(column string) string {
	return RatioToBasePrefix + column
}

// IsUndefined reports whether v is the undefined-ratio sentinel.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// divideBy divides every value by denominator. A zero denominator makes the
// whole series undefined.
func divideBy(values []float64, denominator float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if denominator == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = v / denominator
	}
	return out
}

// PercentOfTotalColumn returns each value's share of the column total.
func PercentOfTotalColumn(values []float64) []float64 {
	return divideBy(values, sum(values))
}

// RatioToBaseColumn returns each value divided by the base column total.
// Only a zero aggregate base makes the ratios undefined: a single zero base
// period has no effect on the result.
func RatioToBaseColumn(values, base []float64) []float64 {
	return divideBy(values, sum(base))
}

// AddPercentages appends percent_of_total_<c> and ratio_to_base_<c> for each
// target column, in target order, after the existing columns. base names the
// column whose total is the ratio denominator and must exist in t.
func AddPercentages(t *Table, targets []string, base string) (*Table, error) {
	baseValues, ok := t.Column(base)
	if !ok {
		return nil, accountNotFound(base, "")
	}
	return addDerived(t, targets, func(name string, values []float64) ([]string, [][]float64) {
		return []string{PercentOfTotalName(name), RatioToBaseName(name)},
			[][]float64{PercentOfTotalColumn(values), RatioToBaseColumn(values, baseValues)}
	})
}

// AddPercentOfTotal appends only percent_of_total_<c> for each target column.
func AddPercentOfTotal(t *Table, targets []string) (*Table, error) {
	return addDerived(t, targets, func(name string, values []float64) ([]string, [][]float64) {
		return []string{PercentOfTotalName(name)}, [][]float64{PercentOfTotalColumn(values)}
	})
}

func addDerived(t *Table, targets []string, derive func(string, []float64) ([]string, [][]float64)) (*Table, error) {
	columns := t.Columns()
	series := make([][]float64, len(t.values), len(t.values)+2*len(targets))
	copy(series, t.values)

	for _, target := range targets {
		values, ok := t.Column(target)
		if !ok {
			return nil, accountNotFound(target, "")
		}
		names, derived := derive(target, values)
		columns = append(columns, names...)
		series = append(series, derived...)
	}

	return NewTable(t.periods, columns, series)
}

// Measure is the consolidated value of one column over the current selection
// and its share of the base total.
type Measure struct {
	Column      string  `json:"column"`
	Total       float64 `json:"total"`
	ShareOfBase float64 `json:"share_of_base"`
}

// MeasureTotals totals each column over the rows of t and divides it by the
// base total. ShareOfBase is NaN when the base total is zero.
func MeasureTotals(t *Table, columns []string, base string) ([]Measure, error) {
	baseTotal, err := t.Sum(base)
	if err != nil {
		return nil, err
	}

	measures := make([]Measure, 0, len(columns))
	for _, name := range columns {
		total, err := t.Sum(name)
		if err != nil {
			return nil, err
		}
		share := math.NaN()
		if baseTotal != 0 {
			share = total / baseTotal
		}
		measures = append(measures, Measure{Column: name, Total: total, ShareOfBase: share})
	}
	return measures, nil
}
