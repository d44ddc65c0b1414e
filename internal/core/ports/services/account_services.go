package services

import (
	"context"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/crafterp/accounting/internal/dto"
)

// AccountService is the chart-of-accounts registry facade.
type AccountService interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, organizationID, accountCode string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)
	ListActiveAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)
	ListPostingAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)
	ListAccountsByType(ctx context.Context, organizationID string, accountType domain.AccountType) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, organizationID, accountID string, actorID string) error
}
