package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates zero or negative amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccountTransfer indicates a transfer where source and destination are the same account.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	// ErrInvalidDate indicates a malformed date query parameter.
	ErrInvalidDate = errors.New("invalid date")
)

// Transaction statuses and types.
//
// Type is a two-valued tag: anything that is not TypeExpense counts as income
// in every aggregation.
const (
	StatusCompleted = "Completed"
	TypeExpense     = "Expense"
	TypeIncome      = "Income"
)

// Transaction holds a single immutable ledger entry. AccountID is the durable
// link to the account; Source keeps the account name as a display label.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int32     `json:"user_id"`
	AccountID   int32     `json:"account_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	Amount      string    `json:"amount"` // always positive
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTransactionParams is the input data to append a ledger entry.
type CreateTransactionParams struct {
	UserID      int32  `json:"user_id"`
	AccountID   int32  `json:"account_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Source      string `json:"source"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
}

// SpendParams is the input data for the spend transaction.
type SpendParams struct {
	UserID      int32  `json:"user_id"`
	AccountID   int32  `json:"account_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// SpendTxResult is the result of the spend transaction.
type SpendTxResult struct {
	Account Account     `json:"account"`
	Entry   Transaction `json:"entry"`
}

// TransferParams is the input data for the transfer transaction.
type TransferParams struct {
	UserID        int32  `json:"user_id"`
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
	FromEntry   Transaction `json:"from_entry"`
	ToEntry     Transaction `json:"to_entry"`
}

// TypeTotals holds income and expense sums for a user.
type TypeTotals struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// MonthTotals holds income and expense sums for one calendar month.
type MonthTotals struct {
	Month   int    `json:"month"` // 1..12
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// ListTransactionsParams is the input data for the history query.
type ListTransactionsParams struct {
	UserID int32     `json:"user_id"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Search string    `json:"search"`
}
