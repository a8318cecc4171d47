package dre

// SelectPeriods returns the rows of t whose period label appears in
// selection. Output order is the table's native order, not the selection's;
// unknown labels and duplicates are ignored. An empty selection yields a
// table with the same columns and no rows.
func SelectPeriods(t *Table, selection []string) *Table {
	wanted := make(map[string]struct{}, len(selection))
	for _, label := range selection {
		wanted[label] = struct{}{}
	}

	return t.filterRows(func(row int) bool {
		_, ok := wanted[t.periods[row]]
		return ok
	})
}
