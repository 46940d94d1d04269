package importer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		want      string
		wantValid bool
	}

	tests := []testCase{
		{name: "Thousands and decimals", input: "1.234,56", want: "1234.56", wantValid: true},
		{name: "Negative", input: "-12,50", want: "-12.5", wantValid: true},
		{name: "Integer", input: "10", want: "10", wantValid: true},
		{name: "Zero is a value", input: "0,00", want: "0", wantValid: true},
		{name: "Large amount", input: "-1.234.567,89", want: "-1234567.89", wantValid: true},
		{name: "Currency symbol", input: "€ 1.000,00", want: "1000", wantValid: true},
		{name: "Trailing currency code", input: "  -3,20 EUR ", want: "-3.2", wantValid: true},
		{name: "Empty", input: "", wantValid: false},
		{name: "Whitespace", input: "   ", wantValid: false},
		{name: "Letters", input: "abc", wantValid: false},
		{name: "Only symbols", input: "€ $", wantValid: false},
		{name: "Lone minus", input: "-", wantValid: false},
		{name: "Two decimal commas", input: "1,2,3", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := importer.ParseAmount(tt.input)

			assert.Equal(t, tt.wantValid, got.Valid)

			if tt.wantValid {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got.Decimal), "got %s", got.Decimal)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	amount := decimal.NewNullDecimal(decimal.RequireFromString("1.5"))

	assert.True(t, importer.IsValid(importer.Transaction{Date: "2024-01-01", Amount: amount}))
	assert.True(t, importer.IsValid(importer.Transaction{Date: "2024-01-01", Amount: decimal.NewNullDecimal(decimal.Zero)}))
	assert.False(t, importer.IsValid(importer.Transaction{Date: "  ", Amount: amount}))
	assert.False(t, importer.IsValid(importer.Transaction{Date: "2024-01-01"}))
}

func TestNormalize(t *testing.T) {
	mapping := importer.MappingConfig{
		importer.FieldDate:   importer.Direct{Column: "Datum"},
		importer.FieldAmount: importer.Direct{Column: "Bedrag"},
		importer.FieldPayee:  importer.Direct{Column: "Naam"},
	}

	got := importer.Normalize(importer.Row{"Datum": "01-01-2024", "Bedrag": "12,50", "Naam": "X"}, mapping)

	assert.Equal(t, "01-01-2024", got.Date)
	assert.Equal(t, "X", got.Payee)
	assert.Empty(t, got.Notes)
	assert.True(t, got.Amount.Valid)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.Amount.Decimal))
}
