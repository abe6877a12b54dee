package store

import (
	"context"
	"errors"

	"bankweb/src/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store is the persistence the web handlers depend on. Transactions are
// read-only from the web surface; CreateTransaction exists for seeding.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserLastLogin(ctx context.Context, userID int64) error

	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)

	CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error)
}
