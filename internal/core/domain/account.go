package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts node within the core domain.
// Group accounts aggregate their children in reporting and never receive
// postings directly; only non-group (postable) accounts appear on journal lines.
type Account struct {
	AccountID          string          `json:"accountID"`      // Primary Key (UUID)
	OrganizationID     string          `json:"organizationID"` // Tenant scope (NON-NULL)
	AccountCode        string          `json:"accountCode"`    // Unique per organization
	Name               string          `json:"name"`
	AccountType        AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	Category           string          `json:"category"`    // Free-text classifier, e.g. "Current Assets"
	SubCategory        string          `json:"subCategory"`
	ParentAccountID    string          `json:"parentAccountID"` // Nullable self reference; parent must be a group account
	Description        string          `json:"description"`
	IsGroup            bool            `json:"isGroup"`
	IsActive           bool            `json:"isActive"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time      `json:"openingBalanceDate,omitempty"`
	CurrencyCode       string          `json:"currencyCode"`
	AllowManualEntry   bool            `json:"allowManualEntry"`
	AuditFields
}
