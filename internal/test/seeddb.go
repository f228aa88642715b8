// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/go-fintrack/fintrack/internal/accountrepo"
	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/internal/transactionrepo"
	"github.com/go-fintrack/fintrack/pkg/dbpkg"
	"github.com/go-fintrack/fintrack/pkg/randompkg"
)

// SeedAccount creates an account with the given balance for the given user.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, userID int32, balance string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		UserID:  userID,
		Name:    randompkg.AccountName(),
		Balance: balance,
	}

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedRandomAccount creates an account with a random balance for a random user.
func SeedRandomAccount(t *testing.T, db dbpkg.SQLInterface) domain.Account {
	t.Helper()

	return SeedAccount(t, db, randompkg.UserID(), randompkg.MoneyAmountBetween(1_000, 10_000))
}

// SeedTransaction appends a ledger entry against the given account.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, account domain.Account, amount, entryType string) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		UserID:      account.UserID,
		AccountID:   account.ID,
		Description: randompkg.String(12),
		Status:      domain.StatusCompleted,
		Source:      account.Name,
		Amount:      amount,
		Type:        entryType,
	}

	logRepo := transactionrepo.NewRepoPGS(db)

	entry, err := logRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("logRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return entry
}

// SeedTransactions appends count random expense entries against the given account.
func SeedTransactions(t *testing.T, db dbpkg.SQLInterface, account domain.Account, count int) []domain.Transaction {
	t.Helper()

	entries := make([]domain.Transaction, count)

	for i := range entries {
		entries[i] = SeedTransaction(t, db, account,
			randompkg.MoneyAmountBetween(1, 100), domain.TypeExpense)
	}

	return entries
}
