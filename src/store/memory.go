package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"bankweb/src/models"

	"github.com/google/uuid"
)

// Memory is a Store held entirely in process memory. It backs the server
// when no database is configured and serves as the fake in tests.
type Memory struct {
	mu           sync.RWMutex
	nextUserID   int64
	users        map[int64]*models.User
	accounts     map[int64][]models.Account
	transactions map[int64][]models.Transaction
	now          func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		nextUserID:   1,
		users:        make(map[int64]*models.User),
		accounts:     make(map[int64][]models.Account),
		transactions: make(map[int64][]models.Transaction),
		now:          time.Now,
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return nil, fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
		}
	}

	u := *user
	u.ID = m.nextUserID
	u.CreatedAt = m.now()
	m.nextUserID++
	m.users[u.ID] = &u

	out := u
	return &out, nil
}

func (m *Memory) findUser(match func(*models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *Memory) UpdateUserLastLogin(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	now := m.now()
	u.LastLogin = &now
	return nil
}

func (m *Memory) CreateAccount(_ context.Context, account *models.Account) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[account.UserID]; !ok {
		return nil, fmt.Errorf("account owner %d: %w", account.UserID, ErrNotFound)
	}

	a := *account
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = m.now()
	m.accounts[a.UserID] = append(m.accounts[a.UserID], a)
	return &a, nil
}

func (m *Memory) ListAccounts(_ context.Context, userID int64) ([]models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Account, len(m.accounts[userID]))
	copy(out, m.accounts[userID])
	return out, nil
}

func (m *Memory) CreateTransaction(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[txn.UserID]; !ok {
		return nil, fmt.Errorf("transaction owner %d: %w", txn.UserID, ErrNotFound)
	}

	t := *txn
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.transactions[t.UserID] = append(m.transactions[t.UserID], t)
	return &t, nil
}

func (m *Memory) ListTransactions(_ context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Transaction, 0, len(m.transactions[userID]))
	for _, t := range m.transactions[userID] {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
