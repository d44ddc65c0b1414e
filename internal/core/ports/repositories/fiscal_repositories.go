package repositories

import (
	"context"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
)

// FiscalRepository defines persistence operations for fiscal years and their
// periods. The fiscal calendar is the sole writer of both tables.
type FiscalRepository interface {
	// SaveFiscalYear inserts a new fiscal year. Returns apperrors.ErrDuplicate
	// when the (organization, year code) pair already exists.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// FindFiscalYearByID retrieves a fiscal year scoped to an organization.
	FindFiscalYearByID(ctx context.Context, organizationID, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearForDate retrieves the fiscal year covering the given date.
	// Returns apperrors.ErrNotFound when no year covers it.
	FindFiscalYearForDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalYear, error)

	// ListFiscalYears returns all fiscal years for an organization ordered by start date.
	ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error)

	// MarkFiscalYearClosed stamps the year closed.
	MarkFiscalYearClosed(ctx context.Context, fiscalYearID string, closedBy string, closedAt time.Time) error

	// SavePeriods inserts the generated periods for a fiscal year in one transaction.
	SavePeriods(ctx context.Context, periods []domain.Period) error

	// FindPeriodByID retrieves a period scoped to an organization.
	FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error)

	// FindPeriodForDate retrieves the period covering the given date.
	FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.Period, error)

	// ListPeriodsByFiscalYear returns the year's periods ordered by period number.
	ListPeriodsByFiscalYear(ctx context.Context, organizationID, fiscalYearID string) ([]domain.Period, error)

	// ListOpenPeriods returns all OPEN periods for an organization ordered by start date.
	ListOpenPeriods(ctx context.Context, organizationID string) ([]domain.Period, error)

	// CountNonClosedPeriods counts the fiscal year's periods still OPEN.
	CountNonClosedPeriods(ctx context.Context, fiscalYearID string) (int, error)

	// UpdatePeriodStatus transitions a period, updating close metadata. A nil
	// closedAt clears the close stamp (reopen).
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedBy string, closedAt *time.Time, updatedBy string, updatedAt time.Time) error
}
