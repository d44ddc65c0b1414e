package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralLedgerRow is a single ledger line with the cumulative account balance
// after it, in document order.
type GeneralLedgerRow struct {
	EntryID        string          `json:"entryID"`
	JournalNumber  string          `json:"journalNumber"`
	JournalDate    time.Time       `json:"journalDate"`
	LineNumber     int             `json:"lineNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss statement for one period.
// Expense accounts are split into cost-of-goods-sold and operating buckets.
type PAndLReport struct {
	Revenue           []AccountAmount `json:"revenue"`
	CostOfGoodsSold   []AccountAmount `json:"costOfGoodsSold"`
	OperatingExpenses []AccountAmount `json:"operatingExpenses"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalCOGS         decimal.Decimal `json:"totalCOGS"`
	TotalOpex         decimal.Decimal `json:"totalOpex"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	OperatingIncome   decimal.Decimal `json:"operatingIncome"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	GrossMarginPct    decimal.Decimal `json:"grossMarginPct"`
	NetMarginPct      decimal.Decimal `json:"netMarginPct"`
}

// BalanceSheetReport represents a balance sheet as of a date. Assets and
// liabilities are split current vs non-current; IsBalanced is a diagnostic
// flag, not an enforced invariant.
type BalanceSheetReport struct {
	AsOf                  time.Time       `json:"asOf"`
	CurrentAssets         []AccountAmount `json:"currentAssets"`
	NonCurrentAssets      []AccountAmount `json:"nonCurrentAssets"`
	CurrentLiabilities    []AccountAmount `json:"currentLiabilities"`
	NonCurrentLiabilities []AccountAmount `json:"nonCurrentLiabilities"`
	Equity                []AccountAmount `json:"equity"`
	TotalAssets           decimal.Decimal `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal `json:"totalEquity"`
	IsBalanced            bool            `json:"isBalanced"`
}

// AccountActivity aggregates posted debit/credit totals for one postable
// account over some window, together with the classification fields the
// statement builders partition on.
type AccountActivity struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Category       string          `json:"category"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
}

// PeriodAccountBalance is the per-period, per-account snapshot row backing the
// trial balance read path. It is maintained by the snapshot worker, never
// computed synchronously on a read.
type PeriodAccountBalance struct {
	OrganizationID string          `json:"organizationID"`
	PeriodID       string          `json:"periodID"`
	AccountID      string          `json:"accountID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
