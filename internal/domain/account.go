// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSenderNotFound indicates that the transfer source account is not found
	// or is not owned by the requesting user.
	ErrSenderNotFound = errors.New("sender account not found")
	// ErrRecipientNotFound indicates that the transfer destination account is not found.
	ErrRecipientNotFound = errors.New("recipient account not found")
)

// Account holds a user's account with its current balance.
type Account struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	UserID  int32  `json:"user_id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
}
