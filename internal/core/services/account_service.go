package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/dto"
	"github.com/crafterp/accounting/internal/platform/cache"
	"github.com/google/uuid"
)

var (
	// ErrDuplicateCode indicates the account code is already in use within the organization.
	ErrDuplicateCode = fmt.Errorf("%w: account code already in use", apperrors.ErrDuplicate)
	// ErrInvalidParent indicates the parent account is missing or not a group account.
	ErrInvalidParent = fmt.Errorf("%w: parent account must exist and be a group account", apperrors.ErrValidation)
	// ErrAccountInactive indicates an operation addressed a deactivated account.
	ErrAccountInactive = fmt.Errorf("%w: account is deactivated", apperrors.ErrConflict)
)

type AccountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	listingCache cache.AccountListingCache
}

// NewAccountService creates the chart-of-accounts service. The listing cache
// may be nil, in which case every listing hits the database.
func NewAccountService(repo portsrepo.AccountRepository, listingCache cache.AccountListingCache) *AccountService {
	return &AccountService{accountRepo: repo, listingCache: listingCache}
}

// Ensure AccountService implements the ports interface
var _ portssvc.AccountService = (*AccountService)(nil)

// CreateAccount registers a new account in the organization's chart of accounts.
func (s *AccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.AccountCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("account_code", req.AccountCode))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCode
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, organizationID, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, ErrInvalidParent
			}
			s.LogError(ctx, err, "Failed to look up parent account", slog.String("parent_account_id", req.ParentAccountID))
			return nil, err
		}
		if !parent.IsGroup {
			return nil, ErrInvalidParent
		}
	}

	now := time.Now()
	allowManualEntry := true
	if req.AllowManualEntry != nil {
		allowManualEntry = *req.AllowManualEntry
	}

	account := domain.Account{
		AccountID:          uuid.NewString(),
		OrganizationID:     organizationID,
		AccountCode:        req.AccountCode,
		Name:               req.Name,
		AccountType:        domain.AccountType(req.AccountType),
		Category:           req.Category,
		SubCategory:        req.SubCategory,
		ParentAccountID:    req.ParentAccountID,
		Description:        req.Description,
		IsGroup:            req.IsGroup,
		IsActive:           true,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceDate: req.OpeningBalanceDate,
		CurrencyCode:       req.CurrencyCode,
		AllowManualEntry:   allowManualEntry,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.invalidateListing(ctx, organizationID)
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its code within the organization.
func (s *AccountService) GetAccountByCode(ctx context.Context, organizationID, accountCode string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, organizationID, accountCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("account_code", accountCode))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves a batch of accounts keyed by account ID.
func (s *AccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to batch fetch accounts", slog.Int("requested", len(accountIDs)))
		return nil, err
	}
	return accounts, nil
}

// ListAccounts returns the organization's full chart of accounts, serving from
// the listing cache when possible.
func (s *AccountService) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	if s.listingCache != nil {
		if cached, ok := s.listingCache.Get(ctx, organizationID); ok {
			s.LogDebug(ctx, "Account listing served from cache", slog.String("organization_id", organizationID))
			return cached, nil
		}
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	if s.listingCache != nil {
		s.listingCache.Set(ctx, organizationID, accounts)
	}
	return accounts, nil
}

// ListActiveAccounts returns only active accounts.
func (s *AccountService) ListActiveAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	accounts, err := s.ListAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

// ListPostingAccounts returns active non-group accounts, the only accounts
// journal lines may reference.
func (s *AccountService) ListPostingAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	accounts, err := s.ListAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	postable := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive && !a.IsGroup {
			postable = append(postable, a)
		}
	}
	return postable, nil
}

// ListAccountsByType returns accounts of one type ordered by account code.
func (s *AccountService) ListAccountsByType(ctx context.Context, organizationID string, accountType domain.AccountType) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByType(ctx, organizationID, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by type", slog.String("account_type", string(accountType)))
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// UpdateAccount applies the non-nil request fields to an existing account.
// Changing the code of an account that may already appear on posted lines is
// allowed but logged, since historical reports will show the new code.
func (s *AccountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for update", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if req.AccountCode != nil && *req.AccountCode != account.AccountCode {
		s.LogWarn(ctx, "Account code changed; historical reports will show the new code",
			slog.String("account_id", accountID),
			slog.String("old_code", account.AccountCode),
			slog.String("new_code", *req.AccountCode))
		account.AccountCode = *req.AccountCode
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Category != nil {
		account.Category = *req.Category
	}
	if req.SubCategory != nil {
		account.SubCategory = *req.SubCategory
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.AllowManualEntry != nil {
		account.AllowManualEntry = *req.AllowManualEntry
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.invalidateListing(ctx, organizationID)
	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. Deactivation never blocks on
// existing postings; the account simply stops accepting new lines while its
// history remains reportable.
func (s *AccountService) DeactivateAccount(ctx context.Context, organizationID, accountID string, actorID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for deactivation", slog.String("account_id", accountID))
		}
		return err
	}
	if !account.IsActive {
		return ErrAccountInactive
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.invalidateListing(ctx, organizationID)
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *AccountService) invalidateListing(ctx context.Context, organizationID string) {
	if s.listingCache != nil {
		s.listingCache.Invalidate(ctx, organizationID)
	}
}
