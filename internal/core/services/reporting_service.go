package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type ReportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
	fiscalRepo    portsrepo.FiscalRepository
}

// NewReportingService creates the balance derivation service. All figures are
// computed from POSTED lines only; the service never writes.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository, fiscalRepo portsrepo.FiscalRepository) *ReportingService {
	return &ReportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		fiscalRepo:    fiscalRepo,
	}
}

// Ensure ReportingService implements the ports interface
var _ portssvc.ReportingService = (*ReportingService)(nil)

// GeneralLedger returns an account's posted lines in document order with a
// running balance. The balance starts at zero at the range start; callers
// wanting an opening carry combine this with AccountBalanceAsOf.
func (s *ReportingService) GeneralLedger(ctx context.Context, organizationID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for ledger", slog.String("account_id", accountID))
		}
		return nil, err
	}

	rows, err := s.reportingRepo.GetLedgerLines(ctx, organizationID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger lines", slog.String("account_id", accountID))
		return nil, err
	}

	running := decimal.Zero
	for i := range rows {
		signed, err := accounting.SignedAmount(rows[i].Debit, rows[i].Credit, account.AccountType)
		if err != nil {
			return nil, err
		}
		running = running.Add(signed)
		rows[i].RunningBalance = running
	}
	return rows, nil
}

// AccountBalance returns the net movement over the range: sum of credits minus
// sum of debits across posted lines, with no opening carry. This is the figure
// P&L accounts use, where the opening balance has no meaning.
func (s *ReportingService) AccountBalance(ctx context.Context, organizationID, accountID string, from, to time.Time) (decimal.Decimal, error) {
	debit, credit, err := s.reportingRepo.GetAccountMovement(ctx, organizationID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account movement", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return credit.Sub(debit), nil
}

// AccountBalanceAsOf returns the point-in-time balance: the account's opening
// balance plus all posted movement through asOf under the account type's sign
// convention. This is the figure balance-sheet accounts use.
func (s *ReportingService) AccountBalanceAsOf(ctx context.Context, organizationID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance", slog.String("account_id", accountID))
		}
		return decimal.Zero, err
	}

	debit, credit, err := s.reportingRepo.GetAccountMovement(ctx, organizationID, accountID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account movement", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	signed, err := accounting.SignedAmount(debit, credit, account.AccountType)
	if err != nil {
		return decimal.Zero, err
	}
	return account.OpeningBalance.Add(signed), nil
}

// TrialBalance returns one row per active postable account for the period,
// sourced from the precomputed balance snapshot.
func (s *ReportingService) TrialBalance(ctx context.Context, organizationID, periodID string) ([]domain.TrialBalanceRow, error) {
	if _, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for trial balance", slog.String("period_id", periodID))
		}
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, organizationID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance rows", slog.String("period_id", periodID))
		return nil, err
	}
	return rows, nil
}

// ProfitAndLoss builds the income statement for one period. Expense accounts
// whose category contains "Cost of" land in the COGS bucket, everything else
// in operating expenses.
func (s *ReportingService) ProfitAndLoss(ctx context.Context, organizationID, periodID string) (*domain.PAndLReport, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for P&L", slog.String("period_id", periodID))
		}
		return nil, err
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, organizationID,
		[]domain.AccountType{domain.Revenue, domain.Expense}, period.StartDate, period.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account activity for P&L", slog.String("period_id", periodID))
		return nil, err
	}

	report := &domain.PAndLReport{
		Revenue:           []domain.AccountAmount{},
		CostOfGoodsSold:   []domain.AccountAmount{},
		OperatingExpenses: []domain.AccountAmount{},
		TotalRevenue:      decimal.Zero,
		TotalCOGS:         decimal.Zero,
		TotalOpex:         decimal.Zero,
	}

	for _, a := range activity {
		signed, err := accounting.SignedAmount(a.TotalDebit, a.TotalCredit, a.AccountType)
		if err != nil {
			return nil, err
		}
		amount := domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			NetAmount:   accounting.RoundMoney(signed),
		}
		switch a.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(amount.NetAmount)
		case domain.Expense:
			if strings.Contains(a.Category, "Cost of") {
				report.CostOfGoodsSold = append(report.CostOfGoodsSold, amount)
				report.TotalCOGS = report.TotalCOGS.Add(amount.NetAmount)
			} else {
				report.OperatingExpenses = append(report.OperatingExpenses, amount)
				report.TotalOpex = report.TotalOpex.Add(amount.NetAmount)
			}
		}
	}

	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.OperatingIncome = report.GrossProfit.Sub(report.TotalOpex)
	report.NetIncome = report.OperatingIncome
	report.GrossMarginPct = accounting.Percentage(report.GrossProfit, report.TotalRevenue)
	report.NetMarginPct = accounting.Percentage(report.NetIncome, report.TotalRevenue)
	return report, nil
}

// BalanceSheet builds the statement of financial position as of a date.
// Assets and liabilities whose category contains "Current" are classed
// current, the rest non-current. The balanced flag is diagnostic only; a
// mismatch is reported, never rejected.
func (s *ReportingService) BalanceSheet(ctx context.Context, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, organizationID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account activity for balance sheet")
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:                  asOf,
		CurrentAssets:         []domain.AccountAmount{},
		NonCurrentAssets:      []domain.AccountAmount{},
		CurrentLiabilities:    []domain.AccountAmount{},
		NonCurrentLiabilities: []domain.AccountAmount{},
		Equity:                []domain.AccountAmount{},
		TotalAssets:           decimal.Zero,
		TotalLiabilities:      decimal.Zero,
		TotalEquity:           decimal.Zero,
	}

	for _, a := range activity {
		signed, err := accounting.SignedAmount(a.TotalDebit, a.TotalCredit, a.AccountType)
		if err != nil {
			return nil, err
		}
		amount := domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			NetAmount:   accounting.RoundMoney(a.OpeningBalance.Add(signed)),
		}
		current := strings.Contains(a.Category, "Current")
		switch a.AccountType {
		case domain.Asset:
			if current {
				report.CurrentAssets = append(report.CurrentAssets, amount)
			} else {
				report.NonCurrentAssets = append(report.NonCurrentAssets, amount)
			}
			report.TotalAssets = report.TotalAssets.Add(amount.NetAmount)
		case domain.Liability:
			if current {
				report.CurrentLiabilities = append(report.CurrentLiabilities, amount)
			} else {
				report.NonCurrentLiabilities = append(report.NonCurrentLiabilities, amount)
			}
			report.TotalLiabilities = report.TotalLiabilities.Add(amount.NetAmount)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(amount.NetAmount)
		}
	}

	report.IsBalanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))
	return report, nil
}
