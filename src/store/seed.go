package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"bankweb/src/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is a fixture of demo users with their accounts and history.
type Seed struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Username     string            `yaml:"username"`
	Email        string            `yaml:"email"`
	Password     string            `yaml:"password"`
	Accounts     []SeedAccount     `yaml:"accounts,omitempty"`
	Transactions []SeedTransaction `yaml:"transactions,omitempty"`
}

type SeedAccount struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Balance string `yaml:"balance"`
}

type SeedTransaction struct {
	Date    string `yaml:"date"`
	Type    string `yaml:"type"`
	Account string `yaml:"account"`
	Amount  string `yaml:"amount"`
	Notes   string `yaml:"notes,omitempty"`
}

// LoadSeed reads a seed file from disk. An empty path yields the built-in
// fixture.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *Seed) validate() error {
	for i, u := range s.Users {
		if u.Username == "" || u.Email == "" || u.Password == "" {
			return fmt.Errorf("seed user %d: username, email and password are required", i)
		}
		for j, a := range u.Accounts {
			if a.Name == "" {
				return fmt.Errorf("seed user %s account %d: name is required", u.Username, j)
			}
			if a.Balance != "" {
				if _, err := decimal.NewFromString(a.Balance); err != nil {
					return fmt.Errorf("seed user %s account %s: balance: %w", u.Username, a.Name, err)
				}
			}
		}
		for j, t := range u.Transactions {
			if _, err := time.Parse(models.DateLayout, t.Date); err != nil {
				return fmt.Errorf("seed user %s transaction %d: date: %w", u.Username, j, err)
			}
			if !models.TransactionType(t.Type).Valid() {
				return fmt.Errorf("seed user %s transaction %d: unknown type %q", u.Username, j, t.Type)
			}
			if _, err := decimal.NewFromString(t.Amount); err != nil {
				return fmt.Errorf("seed user %s transaction %d: amount: %w", u.Username, j, err)
			}
		}
	}
	return nil
}

// Apply writes the seed into st. Users that already exist are skipped along
// with their accounts and transactions, so applying twice is harmless.
func Apply(ctx context.Context, st Store, seed *Seed, cost int, logger *zap.Logger) error {
	for _, su := range seed.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), cost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", su.Username, err)
		}
		user, err := st.CreateUser(ctx, &models.User{
			Username:     strings.ToLower(su.Username),
			Email:        strings.ToLower(su.Email),
			PasswordHash: hash,
		})
		if errors.Is(err, ErrDuplicate) {
			logger.Info("Seed user already exists, skipping", zap.String("username", su.Username))
			continue
		}
		if err != nil {
			return fmt.Errorf("creating seed user %s: %w", su.Username, err)
		}

		for _, sa := range su.Accounts {
			balance := decimal.Zero
			if sa.Balance != "" {
				balance = decimal.RequireFromString(sa.Balance)
			}
			if _, err := st.CreateAccount(ctx, &models.Account{
				UserID:  user.ID,
				Name:    sa.Name,
				Type:    models.AccountType(sa.Type),
				Balance: balance,
			}); err != nil {
				return fmt.Errorf("creating seed account %s for %s: %w", sa.Name, su.Username, err)
			}
		}

		for _, stx := range su.Transactions {
			if _, err := st.CreateTransaction(ctx, &models.Transaction{
				UserID:  user.ID,
				Date:    stx.Date,
				Type:    models.TransactionType(stx.Type),
				Account: stx.Account,
				Amount:  decimal.RequireFromString(stx.Amount),
				Notes:   stx.Notes,
			}); err != nil {
				return fmt.Errorf("creating seed transaction for %s: %w", su.Username, err)
			}
		}

		logger.Info("Seeded user",
			zap.String("username", user.Username),
			zap.Int64("user_id", user.ID),
			zap.Int("accounts", len(su.Accounts)),
			zap.Int("transactions", len(su.Transactions)))
	}
	return nil
}
