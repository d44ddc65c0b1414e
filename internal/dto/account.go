package dto

import (
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	AccountCode        string          `json:"accountCode" binding:"required,max=32"`
	Name               string          `json:"name" binding:"required,max=255"`
	AccountType        string          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category           string          `json:"category"`
	SubCategory        string          `json:"subCategory"`
	ParentAccountID    string          `json:"parentAccountID"`
	Description        string          `json:"description"`
	IsGroup            bool            `json:"isGroup"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time      `json:"openingBalanceDate"`
	CurrencyCode       string          `json:"currencyCode" binding:"required,len=3"`
	AllowManualEntry   *bool           `json:"allowManualEntry"` // Defaults to true when omitted
}

// UpdateAccountRequest defines the JSON body for updating an account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	AccountCode      *string `json:"accountCode"`
	Name             *string `json:"name"`
	Category         *string `json:"category"`
	SubCategory      *string `json:"subCategory"`
	Description      *string `json:"description"`
	AllowManualEntry *bool   `json:"allowManualEntry"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string          `json:"accountID"`
	OrganizationID     string          `json:"organizationID"`
	AccountCode        string          `json:"accountCode"`
	Name               string          `json:"name"`
	AccountType        string          `json:"accountType"`
	Category           string          `json:"category"`
	SubCategory        string          `json:"subCategory"`
	ParentAccountID    string          `json:"parentAccountID,omitempty"`
	Description        string          `json:"description,omitempty"`
	IsGroup            bool            `json:"isGroup"`
	IsActive           bool            `json:"isActive"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time      `json:"openingBalanceDate,omitempty"`
	CurrencyCode       string          `json:"currencyCode"`
	AllowManualEntry   bool            `json:"allowManualEntry"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		OrganizationID:     a.OrganizationID,
		AccountCode:        a.AccountCode,
		Name:               a.Name,
		AccountType:        string(a.AccountType),
		Category:           a.Category,
		SubCategory:        a.SubCategory,
		ParentAccountID:    a.ParentAccountID,
		Description:        a.Description,
		IsGroup:            a.IsGroup,
		IsActive:           a.IsActive,
		OpeningBalance:     a.OpeningBalance,
		OpeningBalanceDate: a.OpeningBalanceDate,
		CurrencyCode:       a.CurrencyCode,
		AllowManualEntry:   a.AllowManualEntry,
		CreatedAt:          a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
