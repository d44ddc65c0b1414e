package pgsql

import (
	"context"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the read-side queries
// behind the reports. All queries consider POSTED entries only.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetLedgerLines fetches an account's posted lines within the date range in
// document order. RunningBalance is left zero for the service to fill in.
func (r *PgxReportingRepository) GetLedgerLines(ctx context.Context, organizationID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	query := `
		SELECT e.entry_id, e.journal_number, e.journal_date, l.line_number, l.description, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.organization_id = $1
		  AND l.account_id = $2
		  AND e.status = 'POSTED'
		  AND e.journal_date >= $3 AND e.journal_date <= $4
		ORDER BY e.journal_date, e.journal_number, l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines for account "+accountID, err)
	}
	defer rows.Close()

	result := []domain.GeneralLedgerRow{}
	for rows.Next() {
		var row domain.GeneralLedgerRow
		err := rows.Scan(
			&row.EntryID,
			&row.JournalNumber,
			&row.JournalDate,
			&row.LineNumber,
			&row.Description,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line row for account "+accountID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger line rows for account "+accountID, err)
	}
	return result, nil
}

// GetAccountMovement returns the posted debit and credit sums for an account
// within the date range.
func (r *PgxReportingRepository) GetAccountMovement(ctx context.Context, organizationID, accountID string, from, to time.Time) (debit, credit decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.organization_id = $1
		  AND l.account_id = $2
		  AND e.status = 'POSTED'
		  AND e.journal_date >= $3 AND e.journal_date <= $4;
	`
	if scanErr := r.Pool.QueryRow(ctx, query, organizationID, accountID, from, to).Scan(&debit, &credit); scanErr != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to query movement for account "+accountID, scanErr)
	}
	return debit, credit, nil
}

// GetAccountActivity aggregates posted totals per active postable account of
// the given types. The left join keeps accounts with no activity in range so
// statements list every account with zero totals.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, organizationID string, accountTypes []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error) {
	typeStrings := make([]string, len(accountTypes))
	for i, t := range accountTypes {
		typeStrings[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.account_code, a.name, a.account_type, a.category, a.opening_balance,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries e ON e.entry_id = l.entry_id
		    AND e.status = 'POSTED'
		    AND e.journal_date >= $3 AND e.journal_date <= $4
		WHERE a.organization_id = $1
		  AND a.account_type = ANY($2)
		  AND a.is_active = TRUE
		  AND a.is_group = FALSE
		GROUP BY a.account_id, a.account_code, a.name, a.account_type, a.category, a.opening_balance
		ORDER BY a.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, typeStrings, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity for organization "+organizationID, err)
	}
	defer rows.Close()

	return collectAccountActivity(rows)
}

// GetTrialBalanceRows reads the per-period snapshot joined with account
// metadata, one row per active postable account ordered by account code.
func (r *PgxReportingRepository) GetTrialBalanceRows(ctx context.Context, organizationID, periodID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.account_code, a.name, a.account_type,
		       COALESCE(b.opening_balance, 0), COALESCE(b.total_debit, 0),
		       COALESCE(b.total_credit, 0), COALESCE(b.closing_balance, 0)
		FROM accounts a
		LEFT JOIN period_account_balances b
		    ON b.account_id = a.account_id AND b.period_id = $2
		WHERE a.organization_id = $1
		  AND a.is_active = TRUE
		  AND a.is_group = FALSE
		ORDER BY a.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance rows for period "+periodID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.OpeningBalance,
			&row.TotalDebit,
			&row.TotalCredit,
			&row.ClosingBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row for period "+periodID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows for period "+periodID, err)
	}
	return result, nil
}

func collectAccountActivity(rows pgx.Rows) ([]domain.AccountActivity, error) {
	result := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		err := rows.Scan(
			&a.AccountID,
			&a.AccountCode,
			&a.Name,
			&a.AccountType,
			&a.Category,
			&a.OpeningBalance,
			&a.TotalDebit,
			&a.TotalCredit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return result, nil
}

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates the write-side repository for the
// period_account_balances table. Only the snapshot worker uses it.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSnapshotRepository implements portsrepo.SnapshotRepository
var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// UpsertPeriodAccountBalances replaces the snapshot rows for one
// (organization, period) in a single transaction. Delete-then-insert keeps
// rows for since-deactivated accounts from lingering in the snapshot.
func (r *PgxSnapshotRepository) UpsertPeriodAccountBalances(ctx context.Context, organizationID, periodID string, snapshotRows []domain.PeriodAccountBalance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		DELETE FROM period_account_balances
		WHERE organization_id = $1 AND period_id = $2;
	`, organizationID, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear snapshot rows for period "+periodID, err)
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO period_account_balances (
			organization_id, period_id, account_id,
			opening_balance, total_debit, total_credit, closing_balance, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, row := range snapshotRows {
		batch.Queue(query,
			organizationID,
			periodID,
			row.AccountID,
			row.OpeningBalance,
			row.TotalDebit,
			row.TotalCredit,
			row.ClosingBalance,
			row.UpdatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute snapshot insert batch for period "+periodID, err)
	}

	return r.Commit(ctx, tx)
}
