package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/core/services"
	"github.com/crafterp/accounting/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, organizationID, entryID string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, organizationID, entryID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, reversedBy string, reversedAt time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, reversal, lines, originalEntryID, reversedBy, reversedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock PeriodService (as used by JournalService) ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodService = (*MockPeriodService)(nil)

func (m *MockPeriodService) ResolvePeriodForDate(ctx context.Context, organizationID string, date time.Time, actorID string) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, date, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, periodID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) ReopenPeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, periodID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) LockPeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, periodID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) ListOpenPeriods(ctx context.Context, organizationID string) ([]domain.Period, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

// --- Mock SnapshotEnqueuer ---
type MockSnapshotEnqueuer struct {
	mock.Mock
}

var _ portssvc.SnapshotEnqueuer = (*MockSnapshotEnqueuer)(nil)

func (m *MockSnapshotEnqueuer) EnqueueSnapshotRebuild(ctx context.Context, organizationID, periodID string) error {
	args := m.Called(ctx, organizationID, periodID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodSvc   *MockPeriodService
	mockEnqueuer    *MockSnapshotEnqueuer
	service         *services.JournalService
	organizationID  string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
	groupAccount    domain.Account
	openPeriod      domain.Period
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.mockEnqueuer = new(MockSnapshotEnqueuer)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodSvc, suite.mockEnqueuer)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:        uuid.NewString(),
		OrganizationID:   suite.organizationID,
		AccountCode:      "1000",
		AccountType:      domain.Asset,
		IsActive:         true,
		AllowManualEntry: true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:        uuid.NewString(),
		OrganizationID:   suite.organizationID,
		AccountCode:      "4000",
		AccountType:      domain.Revenue,
		IsActive:         true,
		AllowManualEntry: true,
	}
	suite.groupAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountCode:    "1",
		AccountType:    domain.Asset,
		IsGroup:        true,
		IsActive:       true,
	}
	suite.openPeriod = domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		Status:         domain.PeriodOpen,
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	result := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		result[a.AccountID] = a
	}
	return result
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		JournalDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodForDate", ctx, suite.organizationID, req.JournalDate, suite.userID).
		Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			lines := args.Get(2).([]domain.JournalLine)
			suite.Equal(domain.Draft, entry.Status)
			suite.Equal(suite.openPeriod.PeriodID, entry.PeriodID)
			suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
			suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
			suite.Require().Len(lines, 2)
			suite.Equal(1, lines[0].LineNumber)
			suite.Equal(2, lines[1].LineNumber)
			suite.Equal(entry.EntryID, lines[0].EntryID)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), JournalNumber: "JV000001", Status: domain.Draft}, nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JV000001", entry.JournalNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_IntradayDateTruncated() {
	ctx := context.Background()
	req := suite.balancedRequest()
	// Last day of the month with a time of day; the date must be truncated so
	// the entry lands in the March period instead of missing it.
	req.JournalDate = time.Date(2026, 3, 31, 15, 4, 5, 0, time.UTC)
	truncated := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodForDate", ctx, suite.organizationID, truncated, suite.userID).
		Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			suite.Equal(truncated, entry.JournalDate)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), JournalNumber: "JV000002", Status: domain.Draft}, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalanced)
	suite.Contains(err.Error(), "debit 100")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_BothSidesSet() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(100)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLineAmounts)
	suite.Contains(err.Error(), "line 1")
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only the cash account resolves.
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.Contains(err.Error(), "line 2")
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_GroupAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].AccountID = suite.groupAccount.AccountID

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.groupAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPostable)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ManualEntryDisabled() {
	ctx := context.Background()
	restricted := suite.cashAccount
	restricted.AllowManualEntry = false
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(restricted, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPostable)
	suite.Contains(err.Error(), "does not allow manual entries")
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_SystemTypeBypassesManualCheck() {
	ctx := context.Background()
	restricted := suite.cashAccount
	restricted.AllowManualEntry = false
	req := suite.balancedRequest()
	req.JournalType = "SYSTEM"

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(restricted, suite.revenueAccount), nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodForDate", ctx, suite.organizationID, req.JournalDate, suite.userID).
		Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), JournalType: domain.JournalTypeSystem}, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PeriodNotOpen() {
	ctx := context.Background()
	req := suite.balancedRequest()
	closedPeriod := suite.openPeriod
	closedPeriod.Status = domain.PeriodClosed

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodForDate", ctx, suite.organizationID, req.JournalDate, suite.userID).
		Return(&closedPeriod, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_Success() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		JournalNumber:  "JV000007",
		PeriodID:       suite.openPeriod.PeriodID,
		Status:         domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.organizationID, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, suite.organizationID, entry.EntryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEnqueuer.On("EnqueueSnapshotRebuild", ctx, suite.organizationID, suite.openPeriod.PeriodID).Return(nil).Once()

	posted, err := suite.service.PostJournalEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(suite.userID, posted.PostedBy)
	suite.NotNil(posted.PostedAt)
	suite.mockEnqueuer.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_NotDraft() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		PeriodID:       suite.openPeriod.PeriodID,
		Status:         domain.Posted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_PeriodClosed() {
	ctx := context.Background()
	closedPeriod := suite.openPeriod
	closedPeriod.Status = domain.PeriodClosed
	entry := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		PeriodID:       closedPeriod.PeriodID,
		Status:         domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.organizationID, closedPeriod.PeriodID).Return(&closedPeriod, nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodClosed)
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_MirrorsLines() {
	ctx := context.Background()
	originalPeriodID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		JournalNumber:  "JV000010",
		JournalDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PeriodID:       originalPeriodID,
		JournalType:    domain.JournalTypeManual,
		Description:    "Cash sale",
		Status:         domain.Posted,
		TotalDebit:     decimal.NewFromInt(100),
		TotalCredit:    decimal.NewFromInt(100),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: original.EntryID, LineNumber: 1, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero, Description: "cash in"},
		{LineID: uuid.NewString(), EntryID: original.EntryID, LineNumber: 2, AccountID: suite.revenueAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(100), Description: "sale"},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(originalLines, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), original.EntryID, suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			reversal := args.Get(1).(domain.JournalEntry)
			lines := args.Get(2).([]domain.JournalLine)
			suite.Equal(domain.JournalTypeReversal, reversal.JournalType)
			suite.Equal(domain.Posted, reversal.Status)
			suite.Contains(reversal.Description, "Reversal of JV000010")
			// The reversal cancels the original in the same reporting window.
			suite.Equal(original.JournalDate, reversal.JournalDate)
			suite.Equal(originalPeriodID, reversal.PeriodID)
			suite.True(reversal.TotalDebit.Equal(original.TotalCredit))
			suite.Require().NotNil(reversal.ReversedEntryID)
			suite.Equal(original.EntryID, *reversal.ReversedEntryID)

			suite.Require().Len(lines, 2)
			suite.True(lines[0].Debit.IsZero(), "original debit becomes credit")
			suite.True(lines[0].Credit.Equal(decimal.NewFromInt(100)))
			suite.True(lines[1].Debit.Equal(decimal.NewFromInt(100)), "original credit becomes debit")
			suite.Equal("Reversal: cash in", lines[0].Description)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), JournalNumber: "JV000011", Status: domain.Posted, PeriodID: originalPeriodID}, nil).Once()
	suite.mockEnqueuer.On("EnqueueSnapshotRebuild", ctx, suite.organizationID, originalPeriodID).Return(nil).Once()

	reversal, err := suite.service.ReverseJournalEntry(ctx, suite.organizationID, original.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JV000011", reversal.JournalNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockEnqueuer.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_NotPosted() {
	ctx := context.Background()
	draft := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Status:         domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, draft.EntryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseJournalEntry(ctx, suite.organizationID, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_ReversalOfReversal() {
	ctx := context.Background()
	reversal := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		JournalType:    domain.JournalTypeReversal,
		Status:         domain.Posted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, reversal.EntryID).Return(reversal, nil).Once()

	_, err := suite.service.ReverseJournalEntry(ctx, suite.organizationID, reversal.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_NilEnqueuerIsSafe() {
	ctx := context.Background()
	service := services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodSvc, nil)
	entry := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		PeriodID:       suite.openPeriod.PeriodID,
		Status:         domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.organizationID, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, suite.organizationID, entry.EntryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := service.PostJournalEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
}

func (suite *JournalServiceTestSuite) TestGetJournalEntry_LoadsLines() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), OrganizationID: suite.organizationID}
	lines := []domain.JournalLine{{LineID: uuid.NewString(), EntryID: entry.EntryID, LineNumber: 1}}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	got, err := suite.service.GetJournalEntry(ctx, suite.organizationID, entry.EntryID)

	suite.Require().NoError(err)
	suite.Require().Len(got.Lines, 1)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
