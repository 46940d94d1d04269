package importer

import (
	"slices"
	"strings"
)

// Row is one parsed line of a bank export, keyed by column header.
type Row map[string]string

// TargetField is one of the fixed transaction fields a mapping can fill.
type TargetField string

const (
	FieldDate   TargetField = "date"
	FieldAmount TargetField = "amount"
	FieldPayee  TargetField = "payee"
	FieldNotes  TargetField = "notes"
)

// TargetFields lists every target field in output order.
var TargetFields = []TargetField{FieldDate, FieldAmount, FieldPayee, FieldNotes}

func (f TargetField) valid() bool {
	return slices.Contains(TargetFields, f)
}

// Rule derives one target field from a source row.
// The set of rules is closed: Direct and Merge are the only implementations.
type Rule interface {
	value(row Row) string
}

// Direct copies a single column.
type Direct struct {
	Column string
}

func (d Direct) value(row Row) string {
	return cell(row, d.Column)
}

// Merge joins several columns, skipping the empty ones.
// A nil Separator means a single space; an empty string joins without a separator.
type Merge struct {
	Columns   []string
	Separator *string
}

func (m Merge) value(row Row) string {
	sep := " "
	if m.Separator != nil {
		sep = *m.Separator
	}

	parts := make([]string, 0, len(m.Columns))

	for _, col := range m.Columns {
		if v := cell(row, col); v != "" {
			parts = append(parts, v)
		}
	}

	return strings.Join(parts, sep)
}

// MappingConfig assigns a rule to each target field. Fields without a rule map to "".
type MappingConfig map[TargetField]Rule

// MappedRow holds the four target fields as raw text.
type MappedRow struct {
	Date   string
	Amount string
	Payee  string
	Notes  string
}

// MapRow applies the mapping to a row. It never fails: missing columns
// and missing rules both produce empty strings.
func MapRow(row Row, mapping MappingConfig) MappedRow {
	return MappedRow{
		Date:   apply(row, mapping[FieldDate]),
		Amount: apply(row, mapping[FieldAmount]),
		Payee:  apply(row, mapping[FieldPayee]),
		Notes:  apply(row, mapping[FieldNotes]),
	}
}

func apply(row Row, rule Rule) string {
	if rule == nil {
		return ""
	}

	return rule.value(row)
}

// cell returns the trimmed value of a column, or "" when the column is absent.
func cell(row Row, column string) string {
	return strings.TrimSpace(row[column])
}
