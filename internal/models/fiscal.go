package models

import "time"

// FiscalYear represents a fiscal_years row.
type FiscalYear struct {
	FiscalYearID   string     `db:"fiscal_year_id"`
	OrganizationID string     `db:"organization_id"`
	YearCode       string     `db:"year_code"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        time.Time  `db:"end_date"`
	IsClosed       bool       `db:"is_closed"`
	ClosedAt       *time.Time `db:"closed_at"`
	ClosedBy       string     `db:"closed_by"`
	AuditFields
}

// Period represents a periods row.
type Period struct {
	PeriodID       string     `db:"period_id"`
	OrganizationID string     `db:"organization_id"`
	FiscalYearID   string     `db:"fiscal_year_id"`
	PeriodNumber   int        `db:"period_number"`
	Name           string     `db:"name"`
	PeriodType     string     `db:"period_type"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        time.Time  `db:"end_date"`
	Status         string     `db:"status"`
	ClosedAt       *time.Time `db:"closed_at"`
	ClosedBy       string     `db:"closed_by"`
	AuditFields
}
