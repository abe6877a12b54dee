package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferKind string

const (
	TransferInternal TransferKind = "internal"
	TransferExternal TransferKind = "external"
)

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

var Frequencies = []Frequency{FrequencyOnce, FrequencyWeekly, FrequencyMonthly}

// TransferRequest is a validated transfer submission. It is only ever
// published as an audit event; balances are never touched.
type TransferRequest struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Kind        TransferKind    `json:"kind"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
	Frequency   Frequency       `json:"frequency"`
	RequestedAt time.Time       `json:"requested_at"`
}
