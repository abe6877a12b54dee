package db

import (
	"bankweb/src/models"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, date, transaction_type, account_name, amount, notes)
		VALUES ($1::text::uuid, $2, $3::text::date, $4, $5, $6::text::numeric, $7)
		RETURNING id::text
	`
	t := *txn
	err := pool.QueryRow(ctx, query,
		t.ID,
		t.UserID,
		t.Date,
		string(t.Type),
		t.Account,
		t.Amount.String(),
		t.Notes,
	).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &t, nil
}

// GetTransactionsForUser returns the user's transactions, oldest first,
// narrowed by exact date and type when the filter sets them.
func GetTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id::text, user_id, to_char(date, 'YYYY-MM-DD'), transaction_type, account_name, amount::text, notes
		FROM transactions
		WHERE user_id = $1`)
	args := []any{userID}

	if filter.Date != "" {
		args = append(args, filter.Date)
		fmt.Fprintf(&query, " AND to_char(date, 'YYYY-MM-DD') = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		fmt.Fprintf(&query, " AND transaction_type = $%d", len(args))
	}
	query.WriteString(" ORDER BY date, created_at")

	rows, err := pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Type, &t.Account, &amount, &t.Notes); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
