// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/pkg/dbpkg"
	"github.com/go-fintrack/fintrack/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (user_id, name, balance)
VALUES
    ($1, $2, $3)
RETURNING id, user_id, name, balance, created_at, updated_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.UserID, arg.Name, arg.Balance)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrNegativeAmount
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, user_id, name, balance, created_at, updated_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = getQuery + `
FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row for
// the duration of the enclosing transaction.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int32) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

const getForUserQuery = `
SELECT
	id, user_id, name, balance, created_at, updated_at
FROM accounts
WHERE id = $1 AND user_id = $2
`

// GetForUser returns the account with the given id only if it belongs to the given user.
func (r *RepoPGS) GetForUser(ctx context.Context, id, userID int32) (domain.Account, error) {
	return r.get(ctx, getForUserQuery, id, userID)
}

const getForUserForUpdateQuery = getForUserQuery + `
FOR UPDATE
`

// GetForUserForUpdate is the row-locking variant of GetForUser.
func (r *RepoPGS) GetForUserForUpdate(ctx context.Context, id, userID int32) (domain.Account, error) {
	return r.get(ctx, getForUserForUpdateQuery, id, userID)
}

func (r *RepoPGS) get(ctx context.Context, query string, args ...interface{}) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1, updated_at = now()
WHERE id = $2
RETURNING id, user_id, name, balance, created_at, updated_at
`

// AddBalance applies the given delta to the account's balance and returns the
// changed account. The delta may be negative; a resulting negative balance is
// rejected by the accounts_balance_check constraint.
func (r *RepoPGS) AddBalance(ctx context.Context, delta string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, delta, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, user_id, name, balance, created_at, updated_at
FROM accounts
WHERE user_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of accounts for the given user.
func (r *RepoPGS) List(ctx context.Context, userID, limit, offset int32) ([]domain.Account, error) {
	return r.list(ctx, listQuery, userID, limit, offset)
}

const listRecentQuery = `
SELECT
	id, user_id, name, balance, created_at, updated_at
FROM accounts
WHERE user_id = $1
ORDER BY id DESC
LIMIT $2
`

// ListRecent returns the newest accounts of the given user, newest first.
func (r *RepoPGS) ListRecent(ctx context.Context, userID, limit int32) ([]domain.Account, error) {
	return r.list(ctx, listRecentQuery, userID, limit)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}
