package db

import (
	"bankweb/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (id, user_id, name, account_type, balance)
		VALUES ($1::text::uuid, $2, $3, $4, $5::text::numeric)
		RETURNING id::text, user_id, name, account_type, balance::text, created_at
	`
	var a models.Account
	var balance string
	err := pool.QueryRow(ctx, query, account.ID, account.UserID, account.Name, string(account.Type), account.Balance.String()).
		Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &balance, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	return &a, nil
}

func GetAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `
		SELECT id::text, user_id, name, account_type, balance::text, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at, name
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		var balance string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parse balance %q: %w", balance, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
