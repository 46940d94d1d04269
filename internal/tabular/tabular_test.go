package tabular_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/tabular"
)

func TestReadCSV(t *testing.T) {
	type args struct {
		content   string
		delimiter rune
	}

	type testCase struct {
		name    string
		args    args
		verify  func(t *testing.T, tbl *tabular.Table)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Semicolon export",
			args: args{
				content: `"Datum";"Naam / Omschrijving";"Bedrag (EUR)"
"20240101";"Albert Heijn";"-12,50"
"20240102";"Salaris";"2.500,00"
`,
				delimiter: ';',
			},
			verify: func(t *testing.T, tbl *tabular.Table) {
				assert.Equal(t, []string{"Datum", "Naam / Omschrijving", "Bedrag (EUR)"}, tbl.Headers)
				require.Len(t, tbl.Rows, 2)
				assert.Equal(t, importer.Row{
					"Datum":               "20240101",
					"Naam / Omschrijving": "Albert Heijn",
					"Bedrag (EUR)":        "-12,50",
				}, tbl.Rows[0])
			},
		},
		{
			name: "Default delimiter",
			args: args{content: "a,b\n1,2\n"},
			verify: func(t *testing.T, tbl *tabular.Table) {
				require.Len(t, tbl.Rows, 1)
				assert.Equal(t, "2", tbl.Rows[0]["b"])
			},
		},
		{
			name: "Ragged rows and blank lines",
			args: args{content: "\n a , b ,c\n1\n,,\n1,2,3,4\n"},
			verify: func(t *testing.T, tbl *tabular.Table) {
				assert.Equal(t, []string{"a", "b", "c"}, tbl.Headers)
				require.Len(t, tbl.Rows, 2)
				assert.Equal(t, importer.Row{"a": "1", "b": "", "c": ""}, tbl.Rows[0])
				assert.Equal(t, importer.Row{"a": "1", "b": "2", "c": "3"}, tbl.Rows[1])
			},
		},
		{
			name: "Blank and repeated headers",
			args: args{content: "Bedrag,,Bedrag\n1,2,3\n"},
			verify: func(t *testing.T, tbl *tabular.Table) {
				assert.Equal(t, []string{"Bedrag", "Column 2", "Bedrag (2)"}, tbl.Headers)
				assert.Equal(t, "3", tbl.Rows[0]["Bedrag (2)"])
			},
		},
		{
			name:    "Empty file",
			args:    args{content: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tabular.ReadCSV(strings.NewReader(tt.args.content), tt.args.delimiter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestReadCSV_Latin1(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().String("Naam;Bedrag\nCafé Noël;-3,00\n")
	require.NoError(t, err)

	tbl, err := tabular.ReadCSV(strings.NewReader(latin1), ';')
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)

	assert.Equal(t, "Café Noël", tbl.Rows[0]["Naam"])
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Date", "Amount", "Payee"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"2024-01-01", "-12,50", "Shop"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"2024-01-02", "3,00"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tbl, err := tabular.Read(&buf, "export.XLSX", 0, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Amount", "Payee"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, importer.Row{"Date": "2024-01-01", "Amount": "-12,50", "Payee": "Shop"}, tbl.Rows[0])
	assert.Equal(t, "", tbl.Rows[1]["Payee"])
}

func TestReadXLSX_UnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := tabular.ReadXLSX(&buf, "Nope")
	assert.Error(t, err)
}

func TestParseDelimiter(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}

	tests := []testCase{
		{name: "Default", input: "", want: ','},
		{name: "Semicolon", input: ";", want: ';'},
		{name: "Tab keyword", input: "TAB", want: '\t'},
		{name: "Escaped tab", input: `\t`, want: '\t'},
		{name: "Multi byte rune", input: "§", want: '§'},
		{name: "Two characters", input: ";;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tabular.ParseDelimiter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
