package dto

import (
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a create-journal-entry request. Exactly one
// of debit/credit must be non-zero; the service validates the pair.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Department  string          `json:"department"`
	CostCenter  string          `json:"costCenter"`
}

// CreateJournalEntryRequest defines the JSON body for creating a journal entry.
type CreateJournalEntryRequest struct {
	JournalDate     time.Time            `json:"journalDate" binding:"required"`
	JournalType     string               `json:"journalType" binding:"omitempty,oneof=MANUAL SYSTEM ADJUSTMENT"`
	ReferenceNumber string               `json:"referenceNumber"`
	Description     string               `json:"description" binding:"required"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	Department  string          `json:"department,omitempty"`
	CostCenter  string          `json:"costCenter,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	OrganizationID   string                `json:"organizationID"`
	JournalNumber    string                `json:"journalNumber"`
	JournalDate      time.Time             `json:"journalDate"`
	PeriodID         string                `json:"periodID"`
	JournalType      string                `json:"journalType"`
	ReferenceNumber  string                `json:"referenceNumber,omitempty"`
	Description      string                `json:"description"`
	Status           string                `json:"status"`
	TotalDebit       decimal.Decimal       `json:"totalDebit"`
	TotalCredit      decimal.Decimal       `json:"totalCredit"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	ReversedEntryID  *string               `json:"reversedEntryID,omitempty"`
	PostedAt         *time.Time            `json:"postedAt,omitempty"`
	PostedBy         string                `json:"postedBy,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesParams holds the query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is a page of journal entries with a continuation token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		LineNumber:  l.LineNumber,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		Department:  l.Department,
		CostCenter:  l.CostCenter,
	}
}

// ToJournalLineResponses converts a slice of domain.JournalLine to []JournalLineResponse.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		OrganizationID:   e.OrganizationID,
		JournalNumber:    e.JournalNumber,
		JournalDate:      e.JournalDate,
		PeriodID:         e.PeriodID,
		JournalType:      string(e.JournalType),
		ReferenceNumber:  e.ReferenceNumber,
		Description:      e.Description,
		Status:           string(e.Status),
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		ReversingEntryID: e.ReversingEntryID,
		ReversedEntryID:  e.ReversedEntryID,
		PostedAt:         e.PostedAt,
		PostedBy:         e.PostedBy,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}
