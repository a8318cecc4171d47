package dre

import "math"

// Magnitudes applies the chart sign policy to one column: if any value is
// strictly negative, every value is replaced by its absolute value;
// otherwise the column is returned unchanged. The transform is lossy and
// column-wide, it never flips individual values on their own.
func Magnitudes(values []float64) []float64 {
	out := append([]float64(nil), values...)

	negative := false
	for _, v := range values {
		if v < 0 {
			negative = true
			break
		}
	}
	if !negative {
		return out
	}

	for i, v := range out {
		out[i] = math.Abs(v)
	}
	return out
}

// NormalizeSigns returns a copy of t where each named column has been passed
// through Magnitudes. Columns are decided independently of each other.
func NormalizeSigns(t *Table, columns []string) (*Table, error) {
	out := t
	for _, name := range columns {
		values, ok := t.Column(name)
		if !ok {
			return nil, accountNotFound(name, "")
		}

		var err error
		out, err = out.WithColumn(name, Magnitudes(values))
		if err != nil {
			return nil, err
		}
	}

	if out == t {
		out, _ = t.Select(t.columns...)
	}
	return out, nil
}
