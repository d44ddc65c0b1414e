package mapping

import (
	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/crafterp/accounting/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		OrganizationID:   d.OrganizationID,
		JournalNumber:    d.JournalNumber,
		JournalDate:      d.JournalDate,
		PeriodID:         d.PeriodID,
		JournalType:      string(d.JournalType),
		ReferenceNumber:  d.ReferenceNumber,
		Description:      d.Description,
		Status:           models.JournalStatus(d.Status),
		TotalDebit:       d.TotalDebit,
		TotalCredit:      d.TotalCredit,
		ReversingEntryID: d.ReversingEntryID,
		ReversedEntryID:  d.ReversedEntryID,
		PostedAt:         d.PostedAt,
		PostedBy:         d.PostedBy,
		ReversedAt:       d.ReversedAt,
		ReversedBy:       d.ReversedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		OrganizationID:   m.OrganizationID,
		JournalNumber:    m.JournalNumber,
		JournalDate:      m.JournalDate,
		PeriodID:         m.PeriodID,
		JournalType:      domain.JournalType(m.JournalType),
		ReferenceNumber:  m.ReferenceNumber,
		Description:      m.Description,
		Status:           domain.JournalStatus(m.Status),
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		ReversingEntryID: m.ReversingEntryID,
		ReversedEntryID:  m.ReversedEntryID,
		PostedAt:         m.PostedAt,
		PostedBy:         m.PostedBy,
		ReversedAt:       m.ReversedAt,
		ReversedBy:       m.ReversedBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNumber:  d.LineNumber,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		Department:  d.Department,
		CostCenter:  d.CostCenter,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNumber:  m.LineNumber,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		Department:  m.Department,
		CostCenter:  m.CostCenter,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
