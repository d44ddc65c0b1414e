package repositories

import (
	"context"

	"github.com/crafterp/accounting/internal/core/domain"
)

// AccountRepository defines persistence operations for chart-of-accounts data.
type AccountRepository interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when
	// the (organization, account code) pair already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists mutable account fields for an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account scoped to an organization.
	// Returns apperrors.ErrNotFound when absent.
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within an organization.
	FindAccountByCode(ctx context.Context, organizationID, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves a batch of accounts keyed by account ID.
	// Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns all accounts for an organization ordered by account code.
	ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)

	// ListAccountsByType returns accounts of one type ordered by account code.
	ListAccountsByType(ctx context.Context, organizationID string, accountType domain.AccountType) ([]domain.Account, error)
}
