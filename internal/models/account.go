package models

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

// Account represents a chart-of-accounts row.
// Note: ParentAccountID uses string for the nullable foreign key; the
// repository converts to sql.NullString at the boundary.
type Account struct {
	AccountID          string          `db:"account_id"`
	OrganizationID     string          `db:"organization_id"`
	AccountCode        string          `db:"account_code"`
	Name               string          `db:"name"`
	AccountType        AccountType     `db:"account_type"`
	Category           string          `db:"category"`
	SubCategory        string          `db:"sub_category"`
	ParentAccountID    string          `db:"parent_account_id"` // Nullable
	Description        string          `db:"description"`
	IsGroup            bool            `db:"is_group"`
	IsActive           bool            `db:"is_active"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceDate *time.Time      `db:"opening_balance_date"`
	CurrencyCode       string          `db:"currency_code"`
	AllowManualEntry   bool            `db:"allow_manual_entry"`
	AuditFields
}
