package dre

// PruneZeroColumns drops every column whose sum over the current rows is
// exactly zero and returns the surviving table together with the names of
// the dropped columns. Each decision is taken against t as passed in, so the
// result does not depend on column order. A column with a nonzero sum is
// always kept, whatever its individual values.
func PruneZeroColumns(t *Table) (*Table, []string) {
	var keep, dropped []string
	for i, name := range t.columns {
		if sum(t.values[i]) == 0 {
			dropped = append(dropped, name)
			continue
		}
		keep = append(keep, name)
	}

	out, _ := t.Select(keep...)
	return out, dropped
}

// PruneZeroRows drops the periods in which every column is zero. A table
// without columns has no non-zero rows and comes back empty.
func PruneZeroRows(t *Table) *Table {
	return t.filterRows(func(row int) bool {
		for c := range t.columns {
			if t.values[c][row] != 0 {
				return true
			}
		}
		return false
	})
}
