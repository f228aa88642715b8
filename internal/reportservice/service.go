// Package reportservice provides the read-only query facade over the ledger.
//
// It only ever reads committed state; all balance mutation happens in the
// ledger packages.
package reportservice

import (
	"context"
	"time"

	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	recentTransactionsLimit = 5
	recentAccountsLimit     = 4
	defaultHistoryWindow    = 7 * 24 * time.Hour

	dateLayout = "2006-01-02"
)

// TransactionStore provides transaction log access needed by the facade.
//
//go:generate mockgen -source service.go -destination service_mock.go -package reportservice
type TransactionStore interface {
	ListRecent(ctx context.Context, userID, limit int32) ([]domain.Transaction, error)
	ListBetween(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	SumByType(ctx context.Context, userID int32) (domain.TypeTotals, error)
	MonthlyTotals(ctx context.Context, userID int32, year int) ([]domain.MonthTotals, error)
}

// AccountStore provides account access needed by the facade.
type AccountStore interface {
	ListRecent(ctx context.Context, userID, limit int32) ([]domain.Account, error)
}

// Service facilitates report service layer logic.
type Service struct {
	transactions TransactionStore
	accounts     AccountStore
}

// New returns report service struct to serve dashboard and history reads.
func New(ts TransactionStore, as AccountStore) *Service {
	return &Service{
		transactions: ts,
		accounts:     as,
	}
}

// Dashboard returns the snapshot consumed by the reporting UI: overall
// totals, a twelve-point series for the current calendar year, and the most
// recent transactions and accounts.
func (s *Service) Dashboard(ctx context.Context, userID int32) (domain.Dashboard, error) {
	l := zerolog.Ctx(ctx)

	var d domain.Dashboard

	totals, err := s.transactions.SumByType(ctx, userID)
	if err != nil {
		return d, err
	}

	income, err := decimal.NewFromString(totals.Income)
	if err != nil {
		l.Error().Err(err).Send()
		return d, err
	}

	expense, err := decimal.NewFromString(totals.Expense)
	if err != nil {
		l.Error().Err(err).Send()
		return d, err
	}

	d.TotalIncome = income.String()
	d.TotalExpense = expense.String()
	d.AvailableBalance = income.Sub(expense).String()

	monthly, err := s.transactions.MonthlyTotals(ctx, userID, time.Now().Year())
	if err != nil {
		return d, err
	}

	d.Chart = fillMonths(monthly)

	d.LastTransactions, err = s.transactions.ListRecent(ctx, userID, recentTransactionsLimit)
	if err != nil {
		return d, err
	}

	d.LastAccounts, err = s.accounts.ListRecent(ctx, userID, recentAccountsLimit)
	if err != nil {
		return d, err
	}

	return d, nil
}

// fillMonths expands sparse per-month totals into twelve points; months with
// no activity report zero, not omitted.
func fillMonths(monthly []domain.MonthTotals) []domain.MonthPoint {
	chart := make([]domain.MonthPoint, 12)

	for i := range chart {
		chart[i] = domain.MonthPoint{
			Label:   time.Month(i + 1).String(),
			Income:  "0",
			Expense: "0",
		}
	}

	for _, m := range monthly {
		if m.Month < 1 || m.Month > 12 {
			continue
		}

		chart[m.Month-1].Income = m.Income
		chart[m.Month-1].Expense = m.Expense
	}

	return chart
}

// Transactions returns the user's history entries within the requested
// window, filtered by the search string over description, status and source.
//
// The window defaults to the last seven days; an explicit end date is
// extended to the end of that day.
func (s *Service) Transactions(ctx context.Context, userID int32, df, dt, search string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	now := time.Now()

	from := now.Add(-defaultHistoryWindow)
	if df != "" {
		parsed, err := time.Parse(dateLayout, df)
		if err != nil {
			l.Info().Err(err).Send()
			return nil, domain.ErrInvalidDate
		}
		from = parsed
	}

	to := now
	if dt != "" {
		parsed, err := time.Parse(dateLayout, dt)
		if err != nil {
			l.Info().Err(err).Send()
			return nil, domain.ErrInvalidDate
		}
		to = parsed.Add(24*time.Hour - time.Millisecond)
	}

	return s.transactions.ListBetween(ctx, domain.ListTransactionsParams{
		UserID: userID,
		From:   from,
		To:     to,
		Search: search,
	})
}
