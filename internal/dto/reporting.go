package dto

import (
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GeneralLedgerResponse wraps the ledger rows for one account and date range.
type GeneralLedgerResponse struct {
	AccountID string                    `json:"accountID"`
	From      time.Time                 `json:"from"`
	To        time.Time                 `json:"to"`
	Rows      []domain.GeneralLedgerRow `json:"rows"`
}

// AccountBalanceResponse carries a single derived balance figure.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	From      *time.Time      `json:"from,omitempty"`
	To        *time.Time      `json:"to,omitempty"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
}

// TrialBalanceResponse wraps the trial balance rows for one period.
type TrialBalanceResponse struct {
	PeriodID string                   `json:"periodID"`
	Rows     []domain.TrialBalanceRow `json:"rows"`
}
