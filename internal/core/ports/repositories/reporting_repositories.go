package repositories

import (
	"context"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-side queries backing balance derivation.
// All queries consider POSTED entries only.
type ReportingRepository interface {
	// GetLedgerLines fetches an account's posted lines within the date range in
	// document order (journal date, journal number, line number). RunningBalance
	// is left zero; the service computes it.
	GetLedgerLines(ctx context.Context, organizationID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error)

	// GetAccountMovement returns the posted debit and credit sums for an account
	// within the date range.
	GetAccountMovement(ctx context.Context, organizationID, accountID string, from, to time.Time) (debit, credit decimal.Decimal, err error)

	// GetAccountActivity aggregates posted debit/credit totals per active
	// postable account of the given types over the date range, ordered by
	// account code. Accounts with no activity in range are still included with
	// zero totals so statements list every account.
	GetAccountActivity(ctx context.Context, organizationID string, accountTypes []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error)

	// GetTrialBalanceRows reads the per-period account balance snapshot joined
	// with account metadata, one row per active postable account ordered by
	// account code.
	GetTrialBalanceRows(ctx context.Context, organizationID, periodID string) ([]domain.TrialBalanceRow, error)
}

// SnapshotRepository is the snapshot maintainer's write port for the
// period_account_balances side table. Only the worker writes it.
type SnapshotRepository interface {
	// UpsertPeriodAccountBalances replaces the snapshot rows for one
	// (organization, period) in a single transaction.
	UpsertPeriodAccountBalances(ctx context.Context, organizationID, periodID string, rows []domain.PeriodAccountBalance) error
}
