// Package ledgerservice manages business logic layer of ledger operations.
package ledgerservice

import (
	"context"
	"time"

	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/internal/events"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	SpendTx(ctx context.Context, arg domain.SpendParams) (domain.SpendTxResult, error)
	TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo      Repo
	publisher events.Publisher
}

// New returns ledger service struct to manage ledger business logic.
func New(r Repo, p events.Publisher) *Service {
	return &Service{
		repo:      r,
		publisher: p,
	}
}

func validAmount(ctx context.Context, amount string) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", amount).Msg("rejected non-positive amount")
		return domain.ErrNegativeAmount
	}

	return nil
}

// Spend debits the account and records one expense entry.
func (s *Service) Spend(ctx context.Context, arg domain.SpendParams) (domain.SpendTxResult, error) {
	if err := validAmount(ctx, arg.Amount); err != nil {
		return domain.SpendTxResult{}, err
	}

	result, err := s.repo.SpendTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.publish(ctx, events.TransactionCompleted{
		UserID:      arg.UserID,
		AccountID:   arg.AccountID,
		Type:        domain.TypeExpense,
		Amount:      arg.Amount,
		Description: arg.Description,
		OccurredAt:  time.Now().UTC(),
	})

	return result, nil
}

// Transfer moves the amount between two accounts, recording one expense and
// one income entry.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferTxResult{}, domain.ErrSameAccountTransfer
	}

	if err := validAmount(ctx, arg.Amount); err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.TransferTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.publish(ctx, events.TransactionCompleted{
		UserID:      arg.UserID,
		AccountID:   arg.FromAccountID,
		Type:        domain.TypeExpense,
		Amount:      arg.Amount,
		Description: result.FromEntry.Description,
		OccurredAt:  time.Now().UTC(),
	})

	return result, nil
}

// publish emits the event after the unit has committed. A publish failure
// never affects the already committed result.
func (s *Service) publish(ctx context.Context, event events.TransactionCompleted) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to publish ledger event")
	}
}
