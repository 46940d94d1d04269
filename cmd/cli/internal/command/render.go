package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...)
}

func renderSummary(result *importer.Result, withPreview bool) string {
	t := newTable("Group", "Account", "Transactions", "Invalid")

	for _, g := range result.Groups {
		account := g.AccountID
		if account == "" {
			account = "-"
		}

		t.Row(g.Group, account, strconv.Itoa(g.TransactionCount), strconv.Itoa(g.InvalidCount))
	}

	var b strings.Builder

	b.WriteString(t.Render())
	b.WriteString("\n")

	totals := fmt.Sprintf("%d transactions, %d invalid", result.TotalTransactions, result.TotalInvalid)
	if result.TotalInvalid > 0 {
		totals = warningStyle.Render(totals)
	}

	b.WriteString(totals + "\n")

	if !withPreview {
		return b.String()
	}

	for _, g := range result.Groups {
		b.WriteString("\n" + headerStyle.Render(g.Group) + "\n")
		b.WriteString(renderPreview(g.Preview))
	}

	return b.String()
}

func renderPreview(txs []importer.Transaction) string {
	t := newTable("Date", "Payee", "Amount", "Notes")

	for _, tx := range txs {
		amount := "invalid"
		if tx.Amount.Valid {
			amount = tx.Amount.Decimal.StringFixed(2)
		}

		t.Row(tx.Date, tx.Payee, amount, tx.Notes)
	}

	return t.Render() + "\n"
}

// ConfirmPrompt asks a yes/no question on the terminal.
func ConfirmPrompt(title string) (bool, error) {
	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Import").
		Negative("Cancel").
		Value(&ok).
		Run()

	return ok, err
}
