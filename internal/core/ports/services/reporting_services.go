package services

import (
	"context"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService is the balance projector facade. Every figure is derived
// from POSTED journal lines only; no method mutates state.
type ReportingService interface {
	GeneralLedger(ctx context.Context, organizationID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error)
	AccountBalance(ctx context.Context, organizationID, accountID string, from, to time.Time) (decimal.Decimal, error)
	AccountBalanceAsOf(ctx context.Context, organizationID, accountID string, asOf time.Time) (decimal.Decimal, error)
	TrialBalance(ctx context.Context, organizationID, periodID string) ([]domain.TrialBalanceRow, error)
	ProfitAndLoss(ctx context.Context, organizationID, periodID string) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}

// ExportService renders reports as spreadsheet workbooks.
type ExportService interface {
	TrialBalanceWorkbook(ctx context.Context, organizationID, periodID string) ([]byte, error)
	ProfitAndLossWorkbook(ctx context.Context, organizationID, periodID string) ([]byte, error)
}
