// Package transactionrepo manages repository layer of the append-only transaction log.
package transactionrepo

import (
	"context"

	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/pkg/dbpkg"
	"github.com/go-fintrack/fintrack/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction log RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (user_id, account_id, description, status, source, amount, type)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, account_id, description, status, source, amount, type, created_at
`

// Create appends the entry to the log and then returns it.
// Entries are immutable once written; there is no update or delete path.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.AccountID,
		arg.Description,
		arg.Status,
		arg.Source,
		arg.Amount,
		arg.Type,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.AccountID,
		&t.Description,
		&t.Status,
		&t.Source,
		&t.Amount,
		&t.Type,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listRecentQuery = `
SELECT
	id, user_id, account_id, description, status, source, amount, type, created_at
FROM transactions
WHERE user_id = $1
ORDER BY id DESC
LIMIT $2
`

// ListRecent returns the newest entries of the given user, newest first by id.
func (r *RepoPGS) ListRecent(ctx context.Context, userID, limit int32) ([]domain.Transaction, error) {
	return r.list(ctx, listRecentQuery, userID, limit)
}

const listBetweenQuery = `
SELECT
	id, user_id, account_id, description, status, source, amount, type, created_at
FROM transactions
WHERE user_id = $1
	AND created_at BETWEEN $2 AND $3
	AND (description ILIKE '%' || $4 || '%'
		OR status ILIKE '%' || $4 || '%'
		OR source ILIKE '%' || $4 || '%')
ORDER BY id DESC
`

// ListBetween returns the entries of the given user within the time window
// whose description, status or source matches the search string.
func (r *RepoPGS) ListBetween(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	return r.list(ctx, listBetweenQuery, arg.UserID, arg.From, arg.To, arg.Search)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.AccountID,
			&t.Description,
			&t.Status,
			&t.Source,
			&t.Amount,
			&t.Type,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const sumByTypeQuery = `
SELECT
	COALESCE(SUM(CASE WHEN type != 'Expense' THEN amount ELSE 0 END), 0) AS income,
	COALESCE(SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END), 0) AS expense
FROM transactions
WHERE user_id = $1
`

// SumByType returns the income and expense totals of the given user.
// Any type other than Expense counts as income.
func (r *RepoPGS) SumByType(ctx context.Context, userID int32) (domain.TypeTotals, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, sumByTypeQuery, userID)

	var totals domain.TypeTotals

	if err := row.Scan(&totals.Income, &totals.Expense); err != nil {
		l.Error().Err(err).Send()
		return totals, errorspkg.ErrInternal
	}

	return totals, nil
}

const monthlyTotalsQuery = `
SELECT
	EXTRACT(MONTH FROM created_at)::int AS month,
	COALESCE(SUM(CASE WHEN type != 'Expense' THEN amount ELSE 0 END), 0) AS income,
	COALESCE(SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END), 0) AS expense
FROM transactions
WHERE user_id = $1
	AND created_at >= make_date($2, 1, 1)
	AND created_at < make_date($2 + 1, 1, 1)
GROUP BY month
ORDER BY month
`

// MonthlyTotals returns per-month income and expense sums of the given user
// for the given year. Months with no activity are absent from the result;
// the query facade zero-fills them.
func (r *RepoPGS) MonthlyTotals(ctx context.Context, userID int32, year int) ([]domain.MonthTotals, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, monthlyTotalsQuery, userID, year)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.MonthTotals{}

	for rows.Next() {
		var m domain.MonthTotals
		if err := rows.Scan(&m.Month, &m.Income, &m.Expense); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
