package models

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeDebit    TransactionType = "debit"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionTypes lists the types in the order the history filter offers them.
var TransactionTypes = []TransactionType{
	TransactionTypeCredit,
	TransactionTypeDebit,
	TransactionTypeTransfer,
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeCredit, TransactionTypeDebit, TransactionTypeTransfer:
		return true
	}
	return false
}

// DateLayout is the calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID      string          `json:"id"`
	UserID  int64           `json:"-"`
	Date    string          `json:"date"`
	Type    TransactionType `json:"type"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
	Notes   string          `json:"notes"`
}

// TransactionFilter selects transactions by exact date and/or type.
// Empty fields match everything.
type TransactionFilter struct {
	Date string
	Type TransactionType
}

func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	return true
}
