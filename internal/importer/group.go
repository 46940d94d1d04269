package importer

import "strings"

// Reserved group keys. The angle brackets keep them apart from real column values,
// which are trimmed cell contents.
const (
	// GroupSingle is the key of the only group when no grouping column is set.
	GroupSingle = "<single>"
	// GroupEmpty collects rows whose grouping column is blank or missing.
	GroupEmpty = "<empty>"
)

// RowGroup is the set of rows sharing one grouping-column value.
type RowGroup struct {
	Key  string
	Rows []Row
}

// GroupRows partitions rows by the trimmed value of groupBy.
// Groups come back in first-seen order and rows keep their input order.
// An empty groupBy yields a single GroupSingle group with every row.
func GroupRows(rows []Row, groupBy string) []RowGroup {
	if strings.TrimSpace(groupBy) == "" {
		return []RowGroup{{Key: GroupSingle, Rows: rows}}
	}

	var groups []RowGroup

	index := make(map[string]int)

	for _, row := range rows {
		key := cell(row, groupBy)
		if key == "" {
			key = GroupEmpty
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, RowGroup{Key: key})
		}

		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}
