package dto

import (
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
)

// CreateFiscalYearRequest defines the JSON body for creating a fiscal year.
type CreateFiscalYearRequest struct {
	YearCode  string    `json:"yearCode" binding:"required,max=16"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID   string     `json:"fiscalYearID"`
	OrganizationID string     `json:"organizationID"`
	YearCode       string     `json:"yearCode"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	IsClosed       bool       `json:"isClosed"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
	ClosedBy       string     `json:"closedBy,omitempty"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID     string     `json:"periodID"`
	FiscalYearID string     `json:"fiscalYearID"`
	PeriodNumber int        `json:"periodNumber"`
	Name         string     `json:"name"`
	PeriodType   string     `json:"periodType"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Status       string     `json:"status"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosedBy     string     `json:"closedBy,omitempty"`
}

// ListPeriodsResponse wraps a list of periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to FiscalYearResponse.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID:   fy.FiscalYearID,
		OrganizationID: fy.OrganizationID,
		YearCode:       fy.YearCode,
		StartDate:      fy.StartDate,
		EndDate:        fy.EndDate,
		IsClosed:       fy.IsClosed,
		ClosedAt:       fy.ClosedAt,
		ClosedBy:       fy.ClosedBy,
	}
}

// ToFiscalYearResponses converts a slice of domain.FiscalYear to []FiscalYearResponse.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	responses := make([]FiscalYearResponse, len(years))
	for i := range years {
		responses[i] = ToFiscalYearResponse(&years[i])
	}
	return responses
}

// ToPeriodResponse converts a domain.Period to PeriodResponse.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYearID: p.FiscalYearID,
		PeriodNumber: p.PeriodNumber,
		Name:         p.Name,
		PeriodType:   string(p.PeriodType),
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       string(p.Status),
		ClosedAt:     p.ClosedAt,
		ClosedBy:     p.ClosedBy,
	}
}

// ToPeriodResponses converts a slice of domain.Period to []PeriodResponse.
func ToPeriodResponses(periods []domain.Period) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
