package mapping

import (
	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/crafterp/accounting/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		OrganizationID:     d.OrganizationID,
		AccountCode:        d.AccountCode,
		Name:               d.Name,
		AccountType:        models.AccountType(d.AccountType),
		Category:           d.Category,
		SubCategory:        d.SubCategory,
		ParentAccountID:    d.ParentAccountID,
		Description:        d.Description,
		IsGroup:            d.IsGroup,
		IsActive:           d.IsActive,
		OpeningBalance:     d.OpeningBalance,
		OpeningBalanceDate: d.OpeningBalanceDate,
		CurrencyCode:       d.CurrencyCode,
		AllowManualEntry:   d.AllowManualEntry,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		OrganizationID:     m.OrganizationID,
		AccountCode:        m.AccountCode,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		Category:           m.Category,
		SubCategory:        m.SubCategory,
		ParentAccountID:    m.ParentAccountID,
		Description:        m.Description,
		IsGroup:            m.IsGroup,
		IsActive:           m.IsActive,
		OpeningBalance:     m.OpeningBalance,
		OpeningBalanceDate: m.OpeningBalanceDate,
		CurrencyCode:       m.CurrencyCode,
		AllowManualEntry:   m.AllowManualEntry,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
