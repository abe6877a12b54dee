package store

import (
	"context"
	"fmt"

	"bankweb/src/models"

	"github.com/shopspring/decimal"
)

// DefaultAccounts is the account set every new user starts with.
func DefaultAccounts(userID int64) []models.Account {
	return []models.Account{
		{UserID: userID, Name: "Checking Account", Type: models.AccountTypeChecking, Balance: decimal.Zero},
		{UserID: userID, Name: "Savings Account", Type: models.AccountTypeSavings, Balance: decimal.Zero},
		{UserID: userID, Name: "Business Account", Type: models.AccountTypeBusiness, Balance: decimal.Zero},
	}
}

// OpenDefaultAccounts creates DefaultAccounts for userID.
func OpenDefaultAccounts(ctx context.Context, st Store, userID int64) error {
	for _, acct := range DefaultAccounts(userID) {
		acct := acct
		if _, err := st.CreateAccount(ctx, &acct); err != nil {
			return fmt.Errorf("creating %s: %w", acct.Name, err)
		}
	}
	return nil
}
