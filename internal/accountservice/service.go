// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-fintrack/fintrack/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetForUser(ctx context.Context, id, userID int32) (domain.Account, error)
	List(ctx context.Context, userID, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Create creates an account for the given user.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	return s.repo.Create(ctx, arg)
}

// Get returns the account with the given id if it belongs to the given user.
func (s *Service) Get(ctx context.Context, id, userID int32) (domain.Account, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

// List returns a page of the user's accounts.
func (s *Service) List(ctx context.Context, userID, pageSize, pageID int32) ([]domain.Account, error) {
	return s.repo.List(ctx, userID, pageSize, (pageID-1)*pageSize)
}
