package services

import (
	"context"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/crafterp/accounting/internal/dto"
)

// FiscalService is the fiscal calendar facade.
type FiscalService interface {
	CreateFiscalYear(ctx context.Context, organizationID string, req dto.CreateFiscalYearRequest, actorID string) (*domain.FiscalYear, error)
	GenerateMonthlyPeriods(ctx context.Context, organizationID, fiscalYearID string, actorID string) ([]domain.Period, error)
	CreateCurrentFiscalYearWithPeriods(ctx context.Context, organizationID string, actorID string) (*domain.FiscalYear, []domain.Period, error)
	CreateFiscalYearWithPeriodsForDate(ctx context.Context, organizationID string, date time.Time, actorID string) (*domain.FiscalYear, []domain.Period, error)
	CloseFiscalYear(ctx context.Context, organizationID, fiscalYearID string, actorID string) (*domain.FiscalYear, error)
	GetFiscalYearForDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error)
	ListPeriods(ctx context.Context, organizationID, fiscalYearID string) ([]domain.Period, error)
}

// PeriodService is the period gate facade. It owns the OPEN/CLOSED/LOCKED
// state machine and is the only component the journal engine consults at
// write time.
type PeriodService interface {
	// ResolvePeriodForDate returns the period owning the date, provisioning a
	// fiscal year with monthly periods when none exists. Callers must be aware
	// this lookup can mutate state.
	ResolvePeriodForDate(ctx context.Context, organizationID string, date time.Time, actorID string) (*domain.Period, error)
	GetPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error)
	ClosePeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error)
	ReopenPeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error)
	LockPeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error)
	ListOpenPeriods(ctx context.Context, organizationID string) ([]domain.Period, error)
}
