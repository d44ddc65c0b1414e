package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry represents a journal_entries row.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	OrganizationID   string          `db:"organization_id"`
	JournalNumber    string          `db:"journal_number"`
	JournalDate      time.Time       `db:"journal_date"`
	PeriodID         string          `db:"period_id"`
	JournalType      string          `db:"journal_type"`
	ReferenceNumber  string          `db:"reference_number"`
	Description      string          `db:"description"`
	Status           JournalStatus   `db:"status"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	ReversingEntryID *string         `db:"reversing_entry_id"` // Nullable
	ReversedEntryID  *string         `db:"reversed_entry_id"`  // Nullable
	PostedAt         *time.Time      `db:"posted_at"`
	PostedBy         string          `db:"posted_by"`
	ReversedAt       *time.Time      `db:"reversed_at"`
	ReversedBy       string          `db:"reversed_by"`
	AuditFields
}

// JournalLine represents a journal_lines row. Exactly one of Debit/Credit is
// non-zero, enforced by the service before persistence and by a CHECK constraint.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNumber  int             `db:"line_number"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	Department  string          `db:"department"`
	CostCenter  string          `db:"cost_center"`
	AuditFields
}

// PeriodAccountBalance represents a period_account_balances snapshot row.
type PeriodAccountBalance struct {
	OrganizationID string          `db:"organization_id"`
	PeriodID       string          `db:"period_id"`
	AccountID      string          `db:"account_id"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	TotalDebit     decimal.Decimal `db:"total_debit"`
	TotalCredit    decimal.Decimal `db:"total_credit"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
