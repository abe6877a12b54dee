package views

import (
	"bankweb/src/models"

	"github.com/shopspring/decimal"
)

const (
	NoTransactionsMessage = "No transactions found."
	NotesPlaceholder      = "N/A"
	HistoryColumns        = 5
)

// Row is one rendered line of the history table.
type Row struct {
	Date    string
	Type    string
	Account string
	Amount  string
	Notes   string
}

// FormatAmount renders a currency amount with a dollar sign and exactly two
// decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func FilterTransactions(txns []models.Transaction, filter models.TransactionFilter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func HistoryRows(txns []models.Transaction) []Row {
	rows := make([]Row, 0, len(txns))
	for _, t := range txns {
		notes := t.Notes
		if notes == "" {
			notes = NotesPlaceholder
		}
		rows = append(rows, Row{
			Date:    t.Date,
			Type:    string(t.Type),
			Account: t.Account,
			Amount:  FormatAmount(t.Amount),
			Notes:   notes,
		})
	}
	return rows
}
