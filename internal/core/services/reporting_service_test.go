package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/crafterp/accounting/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetLedgerLines(ctx context.Context, organizationID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	args := m.Called(ctx, organizationID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountMovement(ctx context.Context, organizationID, accountID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, accountID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, organizationID string, accountTypes []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, organizationID, accountTypes, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceRows(ctx context.Context, organizationID, periodID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, organizationID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockFiscalRepo    *MockFiscalRepository
	service           *services.ReportingService
	organizationID    string
	from              time.Time
	to                time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockFiscalRepo)
	suite.organizationID = uuid.NewString()
	suite.from = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalance() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Asset,
	}
	rows := []domain.GeneralLedgerRow{
		{LineNumber: 1, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{LineNumber: 2, Debit: decimal.Zero, Credit: decimal.NewFromInt(30)},
		{LineNumber: 3, Debit: decimal.NewFromInt(20), Credit: decimal.Zero},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetLedgerLines", ctx, suite.organizationID, account.AccountID, suite.from, suite.to).Return(rows, nil).Once()

	got, err := suite.service.GeneralLedger(ctx, suite.organizationID, account.AccountID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(got, 3)
	// Asset accounts accumulate debit-positive: 100, 70, 90.
	suite.True(got[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(got[1].RunningBalance.Equal(decimal.NewFromInt(70)))
	suite.True(got[2].RunningBalance.Equal(decimal.NewFromInt(90)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GeneralLedger(ctx, suite.organizationID, accountID, suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetLedgerLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_NetMovement() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockReportingRepo.On("GetAccountMovement", ctx, suite.organizationID, accountID, suite.from, suite.to).
		Return(decimal.NewFromInt(40), decimal.NewFromInt(100), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.organizationID, accountID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(60)), "credit minus debit")
}

func (suite *ReportingServiceTestSuite) TestAccountBalanceAsOf_IncludesOpening() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Liability,
		OpeningBalance: decimal.NewFromInt(500),
	}
	asOf := suite.to

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, account.AccountID).Return(account, nil).Once()
	// Movement is summed from the beginning of time through asOf.
	suite.mockReportingRepo.On("GetAccountMovement", ctx, suite.organizationID, account.AccountID, time.Time{}, asOf).
		Return(decimal.NewFromInt(200), decimal.NewFromInt(350), nil).Once()

	balance, err := suite.service.AccountBalanceAsOf(ctx, suite.organizationID, account.AccountID, asOf)

	suite.Require().NoError(err)
	// Liability is credit-positive: 500 + (350 - 200) = 650.
	suite.True(balance.Equal(decimal.NewFromInt(650)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_VerifiesPeriod() {
	ctx := context.Background()
	periodID := uuid.NewString()
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1000", AccountType: domain.Asset, ClosingBalance: decimal.NewFromInt(90)},
	}

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, periodID).
		Return(&domain.Period{PeriodID: periodID, OrganizationID: suite.organizationID}, nil).Once()
	suite.mockReportingRepo.On("GetTrialBalanceRows", ctx, suite.organizationID, periodID).Return(rows, nil).Once()

	got, err := suite.service.TrialBalance(ctx, suite.organizationID, periodID)

	suite.Require().NoError(err)
	suite.Equal(rows, got)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_PeriodNotFound() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, periodID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.TrialBalance(ctx, suite.organizationID, periodID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetTrialBalanceRows", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_SplitsCOGS() {
	ctx := context.Background()
	period := &domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		StartDate:      suite.from,
		EndDate:        suite.to,
	}
	activity := []domain.AccountActivity{
		{AccountID: uuid.NewString(), AccountCode: "4000", Name: "Sales", AccountType: domain.Revenue,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(1000)},
		{AccountID: uuid.NewString(), AccountCode: "5000", Name: "Materials", AccountType: domain.Expense,
			Category: "Cost of Goods Sold", TotalDebit: decimal.NewFromInt(400), TotalCredit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "6000", Name: "Rent", AccountType: domain.Expense,
			Category: "Operating Expenses", TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, period.PeriodID).Return(period, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.organizationID,
		[]domain.AccountType{domain.Revenue, domain.Expense}, period.StartDate, period.EndDate).Return(activity, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.organizationID, period.PeriodID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Revenue, 1)
	suite.Require().Len(report.CostOfGoodsSold, 1)
	suite.Require().Len(report.OperatingExpenses, 1)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalCOGS.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalOpex.Equal(decimal.NewFromInt(100)))
	suite.True(report.GrossProfit.Equal(decimal.NewFromInt(600)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(500)))
	suite.Equal("60", report.GrossMarginPct.String())
	suite.Equal("50", report.NetMarginPct.String())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ZeroRevenueMargins() {
	ctx := context.Background()
	period := &domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		StartDate:      suite.from,
		EndDate:        suite.to,
	}
	activity := []domain.AccountActivity{
		{AccountID: uuid.NewString(), AccountCode: "6000", Name: "Rent", AccountType: domain.Expense,
			Category: "Operating Expenses", TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, period.PeriodID).Return(period, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.organizationID,
		mock.Anything, period.StartDate, period.EndDate).Return(activity, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.organizationID, period.PeriodID)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(-100)))
	suite.True(report.GrossMarginPct.IsZero(), "margin with no revenue reports zero, not a division error")
	suite.True(report.NetMarginPct.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ClassifiesAndBalances() {
	ctx := context.Background()
	asOf := suite.to
	activity := []domain.AccountActivity{
		{AccountID: uuid.NewString(), AccountCode: "1000", Name: "Cash", AccountType: domain.Asset,
			Category: "Current Assets", OpeningBalance: decimal.NewFromInt(100),
			TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.NewFromInt(200)},
		{AccountID: uuid.NewString(), AccountCode: "1500", Name: "Equipment", AccountType: domain.Asset,
			Category: "Fixed Assets", TotalDebit: decimal.NewFromInt(300), TotalCredit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "2000", Name: "Payables", AccountType: domain.Liability,
			Category: "Current Liabilities", TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(250)},
		{AccountID: uuid.NewString(), AccountCode: "3000", Name: "Share Capital", AccountType: domain.Equity,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(450)},
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.organizationID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, time.Time{}, asOf).Return(activity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.organizationID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.CurrentAssets, 1)
	suite.Require().Len(report.NonCurrentAssets, 1)
	suite.Require().Len(report.CurrentLiabilities, 1)
	suite.Empty(report.NonCurrentLiabilities)
	suite.Require().Len(report.Equity, 1)
	// Cash: 100 + (500-200) = 400; Equipment: 300.
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(250)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(450)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ReportsImbalance() {
	ctx := context.Background()
	asOf := suite.to
	activity := []domain.AccountActivity{
		{AccountID: uuid.NewString(), AccountCode: "1000", Name: "Cash", AccountType: domain.Asset,
			Category: "Current Assets", TotalDebit: decimal.NewFromInt(700), TotalCredit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "3000", Name: "Share Capital", AccountType: domain.Equity,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(450)},
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.organizationID,
		mock.Anything, time.Time{}, asOf).Return(activity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.organizationID, asOf)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
