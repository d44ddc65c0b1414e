package accounting

import (
	"fmt"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// SignedAmount applies the accounting sign convention to a debit/credit pair
// for the given account type. This is used in services, repositories and the
// snapshot worker to keep balance arithmetic consistent.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SignedLineAmount is SignedAmount applied to a journal line.
func SignedLineAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	amount, err := SignedAmount(line.Debit, line.Credit, accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", line.AccountID, err)
	}
	return amount, nil
}

// SumLineTotals returns the debit and credit totals across the given lines.
func SumLineTotals(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, line := range lines {
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}
	return debitTotal, creditTotal
}

// RoundMoney rounds a monetary amount to 2 decimal places, half up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percentage computes part/whole as a percentage. The ratio is rounded to
// 4 decimal places (half up) before scaling, and a zero whole yields zero
// instead of a division-by-zero panic.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, 4).Mul(oneHundred)
}
