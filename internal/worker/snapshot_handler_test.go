package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReportingRepo struct {
	mock.Mock
}

func (m *mockReportingRepo) GetLedgerLines(ctx context.Context, organizationID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	args := m.Called(ctx, organizationID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerRow), args.Error(1)
}

func (m *mockReportingRepo) GetAccountMovement(ctx context.Context, organizationID, accountID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, accountID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *mockReportingRepo) GetAccountActivity(ctx context.Context, organizationID string, accountTypes []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, organizationID, accountTypes, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *mockReportingRepo) GetTrialBalanceRows(ctx context.Context, organizationID, periodID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, organizationID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func TestComputeSnapshotRows(t *testing.T) {
	ctx := context.Background()
	repo := new(mockReportingRepo)
	handler := &SnapshotTaskHandler{
		reportingRepo: repo,
		logger:        slog.Default(),
	}

	organizationID := uuid.NewString()
	period := domain.Period{
		PeriodID:  uuid.NewString(),
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	cashID := uuid.NewString()
	salesID := uuid.NewString()

	inPeriod := []domain.AccountActivity{
		{AccountID: cashID, AccountCode: "1000", AccountType: domain.Asset,
			OpeningBalance: decimal.NewFromInt(100),
			TotalDebit:     decimal.NewFromInt(500), TotalCredit: decimal.NewFromInt(200)},
		{AccountID: salesID, AccountCode: "4000", AccountType: domain.Revenue,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(300)},
	}
	// Activity strictly before the period start; only cash has any.
	priorEnd := period.StartDate.AddDate(0, 0, -1)
	beforePeriod := []domain.AccountActivity{
		{AccountID: cashID, AccountCode: "1000", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(50), TotalCredit: decimal.NewFromInt(20)},
	}

	repo.On("GetAccountActivity", ctx, organizationID, allAccountTypes, period.StartDate, period.EndDate).
		Return(inPeriod, nil).Once()
	repo.On("GetAccountActivity", ctx, organizationID, allAccountTypes, time.Time{}, priorEnd).
		Return(beforePeriod, nil).Once()

	rows, err := handler.computeSnapshotRows(ctx, organizationID, period)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Cash opening carries the configured opening plus signed prior movement:
	// 100 + (50 - 20) = 130; closing adds the period movement: 130 + 300 = 430.
	assert.Equal(t, cashID, rows[0].AccountID)
	assert.True(t, rows[0].OpeningBalance.Equal(decimal.NewFromInt(130)))
	assert.True(t, rows[0].TotalDebit.Equal(decimal.NewFromInt(500)))
	assert.True(t, rows[0].TotalCredit.Equal(decimal.NewFromInt(200)))
	assert.True(t, rows[0].ClosingBalance.Equal(decimal.NewFromInt(430)))

	// Sales has no prior activity, opening stays at zero; revenue accumulates
	// credit-positive.
	assert.Equal(t, salesID, rows[1].AccountID)
	assert.True(t, rows[1].OpeningBalance.IsZero())
	assert.True(t, rows[1].ClosingBalance.Equal(decimal.NewFromInt(300)))

	assert.Equal(t, period.PeriodID, rows[0].PeriodID)
	repo.AssertExpectations(t)
}

func TestHandleSnapshotRebuild_BadPayload(t *testing.T) {
	handler := &SnapshotTaskHandler{logger: slog.Default()}
	task := asynq.NewTask(TypeSnapshotRebuild, []byte("{not json"))

	err := handler.HandleSnapshotRebuild(context.Background(), task)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestNewSnapshotRebuildTask(t *testing.T) {
	organizationID := uuid.NewString()
	periodID := uuid.NewString()

	task, err := NewSnapshotRebuildTask(organizationID, periodID)

	require.NoError(t, err)
	assert.Equal(t, TypeSnapshotRebuild, task.Type())

	var payload SnapshotRebuildPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, organizationID, payload.OrganizationID)
	assert.Equal(t, periodID, payload.PeriodID)
}
