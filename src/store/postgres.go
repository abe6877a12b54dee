package store

import (
	"context"
	"errors"
	"fmt"

	"bankweb/src/db"
	dbsql "bankweb/src/db/sql"
	"bankweb/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

// Postgres is the database-backed Store. Account and transaction reads go
// through the cache; writes drop the affected namespace.
type Postgres struct {
	pool   *pgxpool.Pool
	cache  *db.Cache
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, cache *db.Cache, logger *zap.Logger) *Postgres {
	return &Postgres{pool: pool, cache: cache, logger: logger}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func (p *Postgres) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	created, err := dbsql.CreateUser(ctx, p.pool, user)
	return created, translate(err)
}

func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := dbsql.GetUserByUsername(ctx, p.pool, username)
	return user, translate(err)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := dbsql.GetUserByEmail(ctx, p.pool, email)
	return user, translate(err)
}

func (p *Postgres) UpdateUserLastLogin(ctx context.Context, userID int64) error {
	return translate(dbsql.UpdateUserLastLogin(ctx, p.pool, userID))
}

func accountsKey(userID int64) string {
	return fmt.Sprintf("accounts:%d", userID)
}

func transactionsKey(userID int64, filter models.TransactionFilter) string {
	return fmt.Sprintf("transactions:%d:%s:%s", userID, filter.Date, filter.Type)
}

func (p *Postgres) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	a := *account
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	created, err := dbsql.CreateAccount(ctx, p.pool, &a)
	if err != nil {
		return nil, translate(err)
	}
	p.cache.Del(db.CacheAccounts, accountsKey(a.UserID))
	return created, nil
}

func (p *Postgres) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	key := accountsKey(userID)
	version := p.cache.Version(db.CacheAccounts)
	if cached, ok := p.cache.Get(key); ok {
		if accounts, ok := cached.([]models.Account); ok {
			return append([]models.Account{}, accounts...), nil
		}
	}

	accounts, err := dbsql.GetAccountsForUser(ctx, p.pool, userID)
	if err != nil {
		return nil, translate(err)
	}
	p.cache.SetIfCurrent(db.CacheAccounts, key, accounts, version)
	p.logger.Debug("Cached accounts", zap.Int64("user_id", userID), zap.Int("count", len(accounts)))
	return append([]models.Account{}, accounts...), nil
}

func (p *Postgres) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	t := *txn
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	created, err := dbsql.CreateTransaction(ctx, p.pool, &t)
	if err != nil {
		return nil, translate(err)
	}
	// filtered lists are keyed per filter, so drop them all
	p.cache.Clear(db.CacheTransactions)
	return created, nil
}

func (p *Postgres) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	key := transactionsKey(userID, filter)
	version := p.cache.Version(db.CacheTransactions)
	if cached, ok := p.cache.Get(key); ok {
		if txns, ok := cached.([]models.Transaction); ok {
			return append([]models.Transaction{}, txns...), nil
		}
	}

	txns, err := dbsql.GetTransactionsForUser(ctx, p.pool, userID, filter)
	if err != nil {
		return nil, translate(err)
	}
	p.cache.SetIfCurrent(db.CacheTransactions, key, txns, version)
	return append([]models.Transaction{}, txns...), nil
}
