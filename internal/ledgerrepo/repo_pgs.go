// Package ledgerrepo executes ledger operations as single database transactions.
//
// It is the only writer of account balances. Every operation locks the
// affected account rows for its whole duration, so the balance check and the
// balance write can never interleave with a concurrent operation on the same
// account.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-fintrack/fintrack/internal/accountrepo"
	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/internal/transactionrepo"
	"github.com/go-fintrack/fintrack/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// SpendTx debits the account and appends one expense entry
// within a single database transaction.
func (r *RepoPGS) SpendTx(ctx context.Context, arg domain.SpendParams) (domain.SpendTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.SpendTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	logRepo := transactionrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	// An account that is already at zero rejects any spend, even one the
	// plain balance comparison would allow.
	if balance.LessThanOrEqual(decimal.Zero) || balance.LessThan(amount) {
		return result, domain.ErrInsufficientBalance
	}

	result.Account, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.AccountID)
	if err != nil {
		return result, err
	}

	result.Entry, err = logRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:      arg.UserID,
		AccountID:   arg.AccountID,
		Description: arg.Description,
		Status:      domain.StatusCompleted,
		Source:      arg.Source,
		Amount:      arg.Amount,
		Type:        domain.TypeExpense,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// TransferTx moves the amount between two accounts and appends the matching
// expense and income entries within a single database transaction.
//
// The sender is loaded scoped to the initiating user; the recipient may be
// any existing account. Both entries are filed under the initiating user.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	logRepo := transactionrepo.NewRepoPGS(tx)

	fromAccount, toAccount, err := lockAccounts(ctx, accountRepo, arg)
	if err != nil {
		return result, err
	}

	balance, err := decimal.NewFromString(fromAccount.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if amount.GreaterThan(balance) {
		return result, domain.ErrInsufficientBalance
	}

	result.FromAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.FromAccountID)
	if err != nil {
		return result, err
	}

	result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.ToAccountID)
	if err != nil {
		return result, err
	}

	description := "Transfer from " + fromAccount.Name + " to " + toAccount.Name

	result.FromEntry, err = logRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:      arg.UserID,
		AccountID:   fromAccount.ID,
		Description: description,
		Status:      domain.StatusCompleted,
		Source:      fromAccount.Name,
		Amount:      arg.Amount,
		Type:        domain.TypeExpense,
	})
	if err != nil {
		return result, err
	}

	result.ToEntry, err = logRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:      arg.UserID,
		AccountID:   toAccount.ID,
		Description: description,
		Status:      domain.StatusCompleted,
		Source:      toAccount.Name,
		Amount:      arg.Amount,
		Type:        domain.TypeIncome,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// lockAccounts locks both transfer accounts in ascending id order to avoid
// deadlocks between concurrent opposite-direction transfers.
func lockAccounts(ctx context.Context, r *accountrepo.RepoPGS, arg domain.TransferParams) (domain.Account, domain.Account, error) {
	var (
		fromAccount, toAccount domain.Account
		err                    error
	)

	lockFrom := func() error {
		fromAccount, err = r.GetForUserForUpdate(ctx, arg.FromAccountID, arg.UserID)
		if err == domain.ErrAccountNotFound {
			return domain.ErrSenderNotFound
		}
		return err
	}
	lockTo := func() error {
		toAccount, err = r.GetForUpdate(ctx, arg.ToAccountID)
		if err == domain.ErrAccountNotFound {
			return domain.ErrRecipientNotFound
		}
		return err
	}

	if arg.FromAccountID < arg.ToAccountID {
		err = lockFrom()
		if err == nil {
			err = lockTo()
		}
	} else {
		err = lockTo()
		if err == nil {
			err = lockFrom()
		}
	}

	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return fromAccount, toAccount, nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		zerolog.Ctx(ctx).Error().Err(err).Send()
	}
}
