package domain

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

// JournalType classifies how an entry originated.
type JournalType string

const (
	JournalTypeManual     JournalType = "MANUAL"
	JournalTypeSystem     JournalType = "SYSTEM"
	JournalTypeAdjustment JournalType = "ADJUSTMENT"
	JournalTypeReversal   JournalType = "REVERSAL"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines. Total debit always equals total credit.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`       // Primary Key (UUID)
	OrganizationID  string          `json:"organizationID"`
	JournalNumber   string          `json:"journalNumber"` // e.g. "JV000042", sequential per organization
	JournalDate     time.Time       `json:"journalDate"`
	PeriodID        string          `json:"periodID"` // FK -> Period, resolved at creation
	JournalType     JournalType     `json:"journalType"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	Status          JournalStatus   `json:"status"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	// ReversingEntryID is set on the original entry and points to the entry
	// that reversed it. ReversedEntryID is set on a reversal entry and points
	// back at its source. Both directions are persisted.
	ReversingEntryID *string    `json:"reversingEntryID,omitempty"`
	ReversedEntryID  *string    `json:"reversedEntryID,omitempty"`
	PostedAt         *time.Time `json:"postedAt,omitempty"`
	PostedBy         string     `json:"postedBy,omitempty"`
	ReversedAt       *time.Time `json:"reversedAt,omitempty"`
	ReversedBy       string     `json:"reversedBy,omitempty"`
	AuditFields

	// Lines are often loaded separately; nil unless explicitly populated.
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine represents a single line item within a journal entry, affecting
// one account. Exactly one of Debit/Credit is non-zero. Lines become logically
// immutable once their parent entry is POSTED.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"` // 1-based, sequential within the entry
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Department  string          `json:"department"`
	CostCenter  string          `json:"costCenter"`
	AuditFields
}
