package mapping

import (
	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/crafterp/accounting/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID:   d.FiscalYearID,
		OrganizationID: d.OrganizationID,
		YearCode:       d.YearCode,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		IsClosed:       d.IsClosed,
		ClosedAt:       d.ClosedAt,
		ClosedBy:       d.ClosedBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID:   m.FiscalYearID,
		OrganizationID: m.OrganizationID,
		YearCode:       m.YearCode,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsClosed:       m.IsClosed,
		ClosedAt:       m.ClosedAt,
		ClosedBy:       m.ClosedBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPeriod converts a domain Period to a model Period
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		FiscalYearID:   d.FiscalYearID,
		PeriodNumber:   d.PeriodNumber,
		Name:           d.Name,
		PeriodType:     string(d.PeriodType),
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Status:         string(d.Status),
		ClosedAt:       d.ClosedAt,
		ClosedBy:       d.ClosedBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		FiscalYearID:   m.FiscalYearID,
		PeriodNumber:   m.PeriodNumber,
		Name:           m.Name,
		PeriodType:     domain.PeriodType(m.PeriodType),
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Status:         domain.PeriodStatus(m.Status),
		ClosedAt:       m.ClosedAt,
		ClosedBy:       m.ClosedBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model Periods to domain Periods
func ToDomainPeriodSlice(ms []models.Period) []domain.Period {
	ds := make([]domain.Period, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}
