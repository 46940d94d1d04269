// Package tabular reads bank exports into header-keyed rows.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	enc "github.com/MrJamesThe3rd/ledgerbridge/internal/encoding"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

// DefaultDelimiter is used when no delimiter is given.
const DefaultDelimiter = ','

// ErrNoHeader is returned for files without any non-blank line.
var ErrNoHeader = errors.New("no header row found")

// Table is a parsed export: the header row and every data row keyed by it.
type Table struct {
	Headers []string
	Rows    []importer.Row
	Charset string
}

// ParseDelimiter reads a user supplied delimiter: empty for the default,
// "tab" or `\t` for a tab, otherwise exactly one character.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return DefaultDelimiter, nil
	case `\t`, "tab":
		return '\t', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	d, _ := utf8.DecodeRuneInString(s)

	return d, nil
}

// ReadCSV parses a delimited file. The first non-blank record is the header.
// The delimiter is taken as given; it is never guessed.
func ReadCSV(r io.Reader, delimiter rune) (*Table, error) {
	decoded, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	reader := csv.NewReader(decoded)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	t, err := build(records)
	if err != nil {
		return nil, err
	}

	t.Charset = decoded.Charset

	return t, nil
}

// ReadXLSX parses a worksheet of an Excel file. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}

		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return build(records)
}

// Read dispatches on the file name extension.
func Read(r io.Reader, filename string, delimiter rune, sheet string) (*Table, error) {
	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm") {
		return ReadXLSX(r, sheet)
	}

	return ReadCSV(r, delimiter)
}

func build(records [][]string) (*Table, error) {
	start := -1

	for i, rec := range records {
		if !blank(rec) {
			start = i
			break
		}
	}

	if start == -1 {
		return nil, ErrNoHeader
	}

	headers := headerNames(records[start])
	t := &Table{Headers: headers}

	for _, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}

		row := make(importer.Row, len(headers))

		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}

		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// headerNames trims header cells, names blank ones by position and
// suffixes repeated names so every column stays addressable.
func headerNames(rec []string) []string {
	names := make([]string, len(rec))
	seen := make(map[string]int, len(rec))

	for i, cell := range rec {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}

		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s (%d)", name, n)
		}

		names[i] = name
	}

	return names
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
