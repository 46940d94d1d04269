// Package profile recognises known bank export layouts and suggests a mapping for them.
package profile

import (
	"strings"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

// Profile describes the columns of one bank export format.
// Adding a format is adding an entry to the profiles slice.
type Profile struct {
	Name          string
	Mapping       importer.MappingSpec
	GroupByColumn string
}

func str(s string) *string {
	return &s
}

// profiles is the ordered list of formats tried by Detect.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name: "rabobank",
		Mapping: importer.MappingSpec{
			importer.FieldDate:   {Type: importer.RuleDirect, Column: "Datum"},
			importer.FieldAmount: {Type: importer.RuleDirect, Column: "Bedrag"},
			importer.FieldPayee:  {Type: importer.RuleDirect, Column: "Naam tegenpartij"},
			importer.FieldNotes: {
				Type:    importer.RuleMerge,
				Columns: []string{"Omschrijving-1", "Omschrijving-2", "Omschrijving-3"},
			},
		},
		GroupByColumn: "IBAN/BBAN",
	},
	{
		Name: "cgd-extrato",
		Mapping: importer.MappingSpec{
			importer.FieldDate:   {Type: importer.RuleDirect, Column: "Data mov."},
			importer.FieldAmount: {Type: importer.RuleDirect, Column: "Movimento"},
			importer.FieldPayee:  {Type: importer.RuleDirect, Column: "Descrição"},
			importer.FieldNotes:  {Type: importer.RuleDirect, Column: "Origem"},
		},
	},
	{
		Name: "cgd-conta",
		Mapping: importer.MappingSpec{
			importer.FieldDate:   {Type: importer.RuleDirect, Column: "Data mov."},
			importer.FieldAmount: {Type: importer.RuleDirect, Column: "Montante"},
			importer.FieldPayee:  {Type: importer.RuleDirect, Column: "Descrição"},
		},
	},
	{
		Name: "generic",
		Mapping: importer.MappingSpec{
			importer.FieldDate:   {Type: importer.RuleDirect, Column: "Date"},
			importer.FieldAmount: {Type: importer.RuleDirect, Column: "Amount"},
			importer.FieldPayee:  {Type: importer.RuleDirect, Column: "Payee"},
			importer.FieldNotes:  {Type: importer.RuleMerge, Columns: []string{"Memo", "Notes"}, Separator: str(" - ")},
		},
	},
}

// requiredCols returns every column the profile reads, plus its grouping column.
func (p Profile) requiredCols() []string {
	var cols []string

	for _, spec := range p.Mapping {
		if spec.Column != "" {
			cols = append(cols, spec.Column)
		}

		cols = append(cols, spec.Columns...)
	}

	if p.GroupByColumn != "" {
		cols = append(cols, p.GroupByColumn)
	}

	return cols
}

// Detect returns the first profile whose columns are all present in headers.
// Header names are compared case-insensitively after trimming; the returned
// profile is a copy whose columns use the spelling found in headers.
func Detect(headers []string) (*Profile, bool) {
	present := make(map[string]string, len(headers))
	for _, h := range headers {
		if _, ok := present[normalize(h)]; !ok {
			present[normalize(h)] = h
		}
	}

	for i := range profiles {
		if matches(&profiles[i], present) {
			p := profiles[i].respell(present)
			return &p, true
		}
	}

	return nil, false
}

func matches(p *Profile, present map[string]string) bool {
	for _, col := range p.requiredCols() {
		if _, ok := present[normalize(col)]; !ok {
			return false
		}
	}

	return true
}

// respell copies the profile with every column renamed to its header spelling.
func (p Profile) respell(present map[string]string) Profile {
	mapping := make(importer.MappingSpec, len(p.Mapping))

	for field, spec := range p.Mapping {
		if spec.Column != "" {
			spec.Column = present[normalize(spec.Column)]
		}

		if len(spec.Columns) > 0 {
			cols := make([]string, len(spec.Columns))
			for i, c := range spec.Columns {
				cols[i] = present[normalize(c)]
			}

			spec.Columns = cols
		}

		mapping[field] = spec
	}

	p.Mapping = mapping

	if p.GroupByColumn != "" {
		p.GroupByColumn = present[normalize(p.GroupByColumn)]
	}

	return p
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
