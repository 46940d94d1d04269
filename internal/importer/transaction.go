package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is a mapped row with its amount parsed.
type Transaction struct {
	Date   string
	Payee  string
	Notes  string
	Amount decimal.NullDecimal
}

// Normalize maps a row and parses its amount.
func Normalize(row Row, mapping MappingConfig) Transaction {
	m := MapRow(row, mapping)

	return Transaction{
		Date:   m.Date,
		Payee:  m.Payee,
		Notes:  m.Notes,
		Amount: ParseAmount(m.Amount),
	}
}

// IsValid reports whether a transaction can be sent to the ledger:
// it needs a parsed amount and a non-empty date. Payee and notes are optional.
func IsValid(t Transaction) bool {
	return t.Amount.Valid && strings.TrimSpace(t.Date) != ""
}

func countInvalid(txs []Transaction) int {
	n := 0

	for _, t := range txs {
		if !IsValid(t) {
			n++
		}
	}

	return n
}
