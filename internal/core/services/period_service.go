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
)

var (
	// ErrNoPeriodConfigured indicates no period covers the date and none could be provisioned.
	ErrNoPeriodConfigured = fmt.Errorf("%w: no accounting period covers this date", apperrors.ErrNotFound)
	// ErrPeriodLocked indicates the period is LOCKED; a lock is terminal.
	ErrPeriodLocked = fmt.Errorf("%w: period is locked", apperrors.ErrConflict)
	// ErrPeriodNotOpen indicates a transition that requires an OPEN period.
	ErrPeriodNotOpen = fmt.Errorf("%w: period is not open", apperrors.ErrConflict)
	// ErrPeriodNotClosed indicates a transition that requires a CLOSED period.
	ErrPeriodNotClosed = fmt.Errorf("%w: period is not closed", apperrors.ErrConflict)
)

type PeriodService struct {
	BaseService
	fiscalRepo portsrepo.FiscalRepository
	fiscalSvc  portssvc.FiscalService
}

// NewPeriodService creates the period gate service. It provisions missing
// fiscal years through the fiscal service on first use of a date.
func NewPeriodService(repo portsrepo.FiscalRepository, fiscalSvc portssvc.FiscalService) *PeriodService {
	return &PeriodService{fiscalRepo: repo, fiscalSvc: fiscalSvc}
}

// Ensure PeriodService implements the ports interface
var _ portssvc.PeriodService = (*PeriodService)(nil)

// ResolvePeriodForDate returns the period owning the date. When no fiscal year
// covers the date yet, the calendar year is provisioned with monthly periods
// and the lookup retried. A concurrent caller may win the provisioning race;
// the duplicate error from the loser is swallowed and the lookup retried
// against the winner's rows. The date is truncated to day precision before any
// lookup so an intraday timestamp matches the date-precision period bounds.
func (s *PeriodService) ResolvePeriodForDate(ctx context.Context, organizationID string, date time.Time, actorID string) (*domain.Period, error) {
	date = domain.DateOnly(date)
	period, err := s.fiscalRepo.FindPeriodForDate(ctx, organizationID, date)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to resolve period for date")
		return nil, err
	}

	// No period covers the date. If a fiscal year does, its periods were
	// simply never generated and we refuse to guess.
	if _, yearErr := s.fiscalRepo.FindFiscalYearForDate(ctx, organizationID, date); yearErr == nil {
		return nil, ErrNoPeriodConfigured
	} else if !errors.Is(yearErr, apperrors.ErrNotFound) {
		s.LogError(ctx, yearErr, "Failed to check fiscal year for date")
		return nil, yearErr
	}

	s.LogInfo(ctx, "Provisioning fiscal year for unmapped date",
		slog.String("organization_id", organizationID),
		slog.Time("date", date))

	_, periods, provErr := s.fiscalSvc.CreateFiscalYearWithPeriodsForDate(ctx, organizationID, date, actorID)
	if provErr != nil {
		if errors.Is(provErr, apperrors.ErrDuplicate) || errors.Is(provErr, apperrors.ErrValidation) {
			// Lost the provisioning race; the winner's periods should cover the date now.
			period, retryErr := s.fiscalRepo.FindPeriodForDate(ctx, organizationID, date)
			if retryErr != nil {
				if errors.Is(retryErr, apperrors.ErrNotFound) {
					return nil, ErrNoPeriodConfigured
				}
				return nil, retryErr
			}
			return period, nil
		}
		s.LogError(ctx, provErr, "Failed to provision fiscal year for date")
		return nil, provErr
	}

	for i := range periods {
		if periods[i].Contains(date) {
			return &periods[i], nil
		}
	}
	return nil, ErrNoPeriodConfigured
}

// GetPeriodByID retrieves a period.
func (s *PeriodService) GetPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period by ID", slog.String("period_id", periodID))
		}
		return nil, err
	}
	return period, nil
}

// ClosePeriod transitions an OPEN period to CLOSED.
func (s *PeriodService) ClosePeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for close", slog.String("period_id", periodID))
		}
		return nil, err
	}
	switch period.Status {
	case domain.PeriodLocked:
		return nil, ErrPeriodLocked
	case domain.PeriodClosed:
		return nil, ErrPeriodNotOpen
	}

	now := time.Now()
	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodClosed, actorID, &now, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to close period", slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodClosed
	period.ClosedAt = &now
	period.ClosedBy = actorID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Period closed", slog.String("period_id", periodID), slog.String("period_name", period.Name))
	return period, nil
}

// ReopenPeriod transitions a CLOSED period back to OPEN. Locked periods never
// reopen, and a period of a closed fiscal year stays closed.
func (s *PeriodService) ReopenPeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for reopen", slog.String("period_id", periodID))
		}
		return nil, err
	}
	switch period.Status {
	case domain.PeriodLocked:
		return nil, ErrPeriodLocked
	case domain.PeriodOpen:
		return nil, ErrPeriodNotClosed
	}

	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, period.FiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find fiscal year for reopen check", slog.String("period_id", periodID))
		return nil, err
	}
	if year.IsClosed {
		return nil, ErrYearAlreadyClosed
	}

	now := time.Now()
	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodOpen, "", nil, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to reopen period", slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodOpen
	period.ClosedAt = nil
	period.ClosedBy = ""
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Period reopened", slog.String("period_id", periodID), slog.String("period_name", period.Name))
	return period, nil
}

// LockPeriod transitions any non-locked period to LOCKED. The lock is
// terminal; locking an OPEN period stamps the close metadata as part of the
// lock, since nothing can close it afterwards.
func (s *PeriodService) LockPeriod(ctx context.Context, organizationID, periodID string, actorID string) (*domain.Period, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for lock", slog.String("period_id", periodID))
		}
		return nil, err
	}
	if period.Status == domain.PeriodLocked {
		return nil, ErrPeriodLocked
	}

	now := time.Now()
	closedAt := period.ClosedAt
	closedBy := period.ClosedBy
	if period.Status == domain.PeriodOpen {
		closedAt = &now
		closedBy = actorID
	}
	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodLocked, closedBy, closedAt, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to lock period", slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodLocked
	period.ClosedAt = closedAt
	period.ClosedBy = closedBy
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Period locked", slog.String("period_id", periodID), slog.String("period_name", period.Name))
	return period, nil
}

// ListOpenPeriods returns all OPEN periods of an organization.
func (s *PeriodService) ListOpenPeriods(ctx context.Context, organizationID string) ([]domain.Period, error) {
	periods, err := s.fiscalRepo.ListOpenPeriods(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open periods", slog.String("organization_id", organizationID))
		return nil, err
	}
	if periods == nil {
		periods = []domain.Period{}
	}
	return periods, nil
}
