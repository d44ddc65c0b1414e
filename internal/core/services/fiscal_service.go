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
	"github.com/google/uuid"
)

var (
	// ErrDuplicateYear indicates the year code is already in use within the organization.
	ErrDuplicateYear = fmt.Errorf("%w: fiscal year code already in use", apperrors.ErrDuplicate)
	// ErrYearOverlap indicates the requested range overlaps an existing fiscal year.
	ErrYearOverlap = fmt.Errorf("%w: fiscal year range overlaps an existing year", apperrors.ErrValidation)
	// ErrInvalidYearRange indicates the start date is not before the end date.
	ErrInvalidYearRange = fmt.Errorf("%w: fiscal year start date must be before end date", apperrors.ErrValidation)
	// ErrYearAlreadyClosed indicates the fiscal year is already closed.
	ErrYearAlreadyClosed = fmt.Errorf("%w: fiscal year is already closed", apperrors.ErrConflict)
	// ErrOpenPeriodsRemain indicates the year still has periods that are not CLOSED or LOCKED.
	ErrOpenPeriodsRemain = fmt.Errorf("%w: fiscal year still has open periods", apperrors.ErrConflict)
	// ErrPeriodsAlreadyGenerated indicates the fiscal year already has periods.
	ErrPeriodsAlreadyGenerated = fmt.Errorf("%w: fiscal year already has periods", apperrors.ErrConflict)
)

type FiscalService struct {
	BaseService
	fiscalRepo portsrepo.FiscalRepository
}

// NewFiscalService creates the fiscal calendar service.
func NewFiscalService(repo portsrepo.FiscalRepository) *FiscalService {
	return &FiscalService{fiscalRepo: repo}
}

// Ensure FiscalService implements the ports interface
var _ portssvc.FiscalService = (*FiscalService)(nil)

// CreateFiscalYear registers a new fiscal year. The range must not overlap any
// existing year of the organization.
func (s *FiscalService) CreateFiscalYear(ctx context.Context, organizationID string, req dto.CreateFiscalYearRequest, actorID string) (*domain.FiscalYear, error) {
	// Year bounds are stored at date precision, like period bounds.
	req.StartDate = domain.DateOnly(req.StartDate)
	req.EndDate = domain.DateOnly(req.EndDate)
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrInvalidYearRange
	}

	// An overlapping year either contains one of the new endpoints or lies
	// entirely inside the new range.
	for _, probe := range []time.Time{req.StartDate, req.EndDate} {
		existing, err := s.fiscalRepo.FindFiscalYearForDate(ctx, organizationID, probe)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check fiscal year overlap")
			return nil, err
		}
		if existing != nil {
			return nil, ErrYearOverlap
		}
	}
	years, err := s.fiscalRepo.ListFiscalYears(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years for overlap check")
		return nil, err
	}
	for _, y := range years {
		if !y.StartDate.Before(req.StartDate) && !y.EndDate.After(req.EndDate) {
			return nil, ErrYearOverlap
		}
	}

	now := time.Now()
	year := domain.FiscalYear{
		FiscalYearID:   uuid.NewString(),
		OrganizationID: organizationID,
		YearCode:       req.YearCode,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsClosed:       false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.fiscalRepo.SaveFiscalYear(ctx, year); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrDuplicateYear
		}
		s.LogError(ctx, err, "Failed to save fiscal year", slog.String("year_code", req.YearCode))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("year_code", year.YearCode))
	return &year, nil
}

// GenerateMonthlyPeriods partitions a fiscal year into calendar-month periods.
// The final period is truncated to the year's end date when the year does not
// end on a month boundary; all periods start OPEN.
func (s *FiscalService) GenerateMonthlyPeriods(ctx context.Context, organizationID, fiscalYearID string, actorID string) ([]domain.Period, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year for period generation", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}

	existing, err := s.fiscalRepo.ListPeriodsByFiscalYear(ctx, organizationID, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list existing periods", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrPeriodsAlreadyGenerated
	}

	periods := buildMonthlyPeriods(*year, actorID, time.Now())

	if err := s.fiscalRepo.SavePeriods(ctx, periods); err != nil {
		s.LogError(ctx, err, "Failed to save generated periods", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	s.LogInfo(ctx, "Monthly periods generated", slog.String("fiscal_year_id", fiscalYearID), slog.Int("count", len(periods)))
	return periods, nil
}

// buildMonthlyPeriods walks the year span month by month. A mid-month start
// yields a short first period and a mid-month end a short last one.
func buildMonthlyPeriods(year domain.FiscalYear, actorID string, now time.Time) []domain.Period {
	periods := []domain.Period{}
	cursor := year.StartDate
	number := 1
	for !cursor.After(year.EndDate) {
		nextMonthFirst := time.Date(cursor.Year(), cursor.Month()+1, 1, 0, 0, 0, 0, cursor.Location())
		end := nextMonthFirst.AddDate(0, 0, -1)
		if end.After(year.EndDate) {
			end = year.EndDate
		}
		periods = append(periods, domain.Period{
			PeriodID:       uuid.NewString(),
			OrganizationID: year.OrganizationID,
			FiscalYearID:   year.FiscalYearID,
			PeriodNumber:   number,
			Name:           cursor.Format("Jan 2006"),
			PeriodType:     domain.PeriodTypeMonthly,
			StartDate:      cursor,
			EndDate:        end,
			Status:         domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
		cursor = nextMonthFirst
		number++
	}
	return periods
}

// CreateCurrentFiscalYearWithPeriods provisions the calendar year containing
// today with monthly periods.
func (s *FiscalService) CreateCurrentFiscalYearWithPeriods(ctx context.Context, organizationID string, actorID string) (*domain.FiscalYear, []domain.Period, error) {
	return s.CreateFiscalYearWithPeriodsForDate(ctx, organizationID, time.Now(), actorID)
}

// CreateFiscalYearWithPeriodsForDate provisions the calendar year containing
// the given date, Jan 1 through Dec 31, with monthly periods.
func (s *FiscalService) CreateFiscalYearWithPeriodsForDate(ctx context.Context, organizationID string, date time.Time, actorID string) (*domain.FiscalYear, []domain.Period, error) {
	start := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	req := dto.CreateFiscalYearRequest{
		YearCode:  fmt.Sprintf("FY%d", date.Year()),
		StartDate: start,
		EndDate:   end,
	}

	year, err := s.CreateFiscalYear(ctx, organizationID, req, actorID)
	if err != nil {
		return nil, nil, err
	}
	periods, err := s.GenerateMonthlyPeriods(ctx, organizationID, year.FiscalYearID, actorID)
	if err != nil {
		return nil, nil, err
	}
	return year, periods, nil
}

// CloseFiscalYear stamps a fiscal year closed. Every period of the year must
// already be CLOSED or LOCKED.
func (s *FiscalService) CloseFiscalYear(ctx context.Context, organizationID, fiscalYearID string, actorID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year for close", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}
	if year.IsClosed {
		return nil, ErrYearAlreadyClosed
	}

	remaining, err := s.fiscalRepo.CountNonClosedPeriods(ctx, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count non-closed periods", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	if remaining > 0 {
		return nil, fmt.Errorf("%w: %d period(s) not closed", ErrOpenPeriodsRemain, remaining)
	}

	now := time.Now()
	if err := s.fiscalRepo.MarkFiscalYearClosed(ctx, fiscalYearID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	year.IsClosed = true
	year.ClosedAt = &now
	year.ClosedBy = actorID
	year.LastUpdatedAt = now
	year.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return year, nil
}

// GetFiscalYearForDate retrieves the fiscal year covering a date.
func (s *FiscalService) GetFiscalYearForDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindFiscalYearForDate(ctx, organizationID, date)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year for date")
		}
		return nil, err
	}
	return year, nil
}

// ListFiscalYears returns the organization's fiscal years ordered by start date.
func (s *FiscalService) ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error) {
	years, err := s.fiscalRepo.ListFiscalYears(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years", slog.String("organization_id", organizationID))
		return nil, err
	}
	if years == nil {
		years = []domain.FiscalYear{}
	}
	return years, nil
}

// ListPeriods returns a fiscal year's periods ordered by period number.
func (s *FiscalService) ListPeriods(ctx context.Context, organizationID, fiscalYearID string) ([]domain.Period, error) {
	periods, err := s.fiscalRepo.ListPeriodsByFiscalYear(ctx, organizationID, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	if periods == nil {
		periods = []domain.Period{}
	}
	return periods, nil
}
