package domain

import "time"

// PeriodStatus enumerates the accounting-period lifecycle.
// OPEN periods accept postings; CLOSED periods can be reopened;
// LOCKED is terminal and never reopens.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// PeriodType describes how a fiscal year was partitioned.
type PeriodType string

const (
	PeriodTypeMonthly PeriodType = "MONTHLY"
)

// FiscalYear represents one accounting year for an organization.
type FiscalYear struct {
	FiscalYearID   string     `json:"fiscalYearID"`
	OrganizationID string     `json:"organizationID"`
	YearCode       string     `json:"yearCode"` // Unique per organization, e.g. "FY2026"
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	IsClosed       bool       `json:"isClosed"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
	ClosedBy       string     `json:"closedBy,omitempty"`
	AuditFields
}

// Period represents a single accounting period within a fiscal year.
// Periods within a year are contiguous and non-overlapping, covering the
// full fiscal-year span.
type Period struct {
	PeriodID       string       `json:"periodID"`
	OrganizationID string       `json:"organizationID"`
	FiscalYearID   string       `json:"fiscalYearID"`
	PeriodNumber   int          `json:"periodNumber"` // Sequential within the year, 1-based
	Name           string       `json:"name"`         // e.g. "Jan 2026"
	PeriodType     PeriodType   `json:"periodType"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	ClosedAt       *time.Time   `json:"closedAt,omitempty"`
	ClosedBy       string       `json:"closedBy,omitempty"`
	AuditFields
}

// DateOnly normalizes a timestamp to midnight UTC. Period bounds are stored at
// date precision, so lookups must compare at the same precision or an intraday
// timestamp on a period's last day would fall outside it.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsOpen reports whether the period accepts new postings.
func (p Period) IsOpen() bool {
	return p.Status == PeriodOpen
}

// Contains reports whether the given date falls within the period span (inclusive).
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
