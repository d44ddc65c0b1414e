package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/crafterp/accounting/internal/models"
	"github.com/crafterp/accounting/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalRepository struct {
	BaseRepository
}

// newPgxFiscalRepository creates a new repository for fiscal years and periods.
func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepository {
	return &PgxFiscalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFiscalRepository implements portsrepo.FiscalRepository
var _ portsrepo.FiscalRepository = (*PgxFiscalRepository)(nil)

const fiscalYearColumns = `
	fiscal_year_id, organization_id, year_code, start_date, end_date, is_closed, closed_at, closed_by,
	created_at, created_by, last_updated_at, last_updated_by
`

const periodColumns = `
	period_id, organization_id, fiscal_year_id, period_number, name, period_type,
	start_date, end_date, status, closed_at, closed_by,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveFiscalYear inserts a new fiscal year row.
func (r *PgxFiscalRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID,
		m.OrganizationID,
		m.YearCode,
		m.StartDate,
		m.EndDate,
		m.IsClosed,
		m.ClosedAt,
		nullableString(m.ClosedBy),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation on (organization_id, year_code)
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+m.FiscalYearID, err)
	}
	return nil
}

func scanFiscalYearRow(row pgx.Row) (*models.FiscalYear, error) {
	var m models.FiscalYear
	var closedBy sql.NullString
	err := row.Scan(
		&m.FiscalYearID,
		&m.OrganizationID,
		&m.YearCode,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.ClosedAt,
		&closedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if closedBy.Valid {
		m.ClosedBy = closedBy.String
	}
	return &m, nil
}

// FindFiscalYearByID retrieves a fiscal year scoped to an organization.
func (r *PgxFiscalRepository) FindFiscalYearByID(ctx context.Context, organizationID, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE organization_id = $1 AND fiscal_year_id = $2;`
	m, err := scanFiscalYearRow(r.Pool.QueryRow(ctx, query, organizationID, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year by ID "+fiscalYearID, err)
	}
	d := mapping.ToDomainFiscalYear(*m)
	return &d, nil
}

// FindFiscalYearForDate retrieves the fiscal year whose range covers the date.
// Year ranges never overlap, so at most one row matches.
func (r *PgxFiscalRepository) FindFiscalYearForDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE organization_id = $1 AND start_date <= $2 AND end_date >= $2;
	`
	m, err := scanFiscalYearRow(r.Pool.QueryRow(ctx, query, organizationID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year for date", err)
	}
	d := mapping.ToDomainFiscalYear(*m)
	return &d, nil
}

// ListFiscalYears returns all fiscal years for an organization ordered by start date.
func (r *PgxFiscalRepository) ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE organization_id = $1 ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years for organization "+organizationID, err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYearRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal year row", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal year rows", err)
	}
	return years, nil
}

// MarkFiscalYearClosed stamps the fiscal year closed.
func (r *PgxFiscalRepository) MarkFiscalYearClosed(ctx context.Context, fiscalYearID string, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE fiscal_years
		SET is_closed = TRUE,
		    closed_at = $2,
		    closed_by = $3,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE fiscal_year_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, fiscalYearID, closedAt, closedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark fiscal year closed "+fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePeriods inserts a fiscal year's generated periods in one transaction.
func (r *PgxFiscalRepository) SavePeriods(ctx context.Context, periods []domain.Period) error {
	if len(periods) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, p := range periods {
		m := mapping.ToModelPeriod(p)
		batch.Queue(query,
			m.PeriodID,
			m.OrganizationID,
			m.FiscalYearID,
			m.PeriodNumber,
			m.Name,
			m.PeriodType,
			m.StartDate,
			m.EndDate,
			m.Status,
			m.ClosedAt,
			nullableString(m.ClosedBy),
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to execute period insert batch", err)
	}

	return r.Commit(ctx, tx)
}

func scanPeriodRow(row pgx.Row) (*models.Period, error) {
	var m models.Period
	var closedBy sql.NullString
	err := row.Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.FiscalYearID,
		&m.PeriodNumber,
		&m.Name,
		&m.PeriodType,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
		&closedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if closedBy.Valid {
		m.ClosedBy = closedBy.String
	}
	return &m, nil
}

// FindPeriodByID retrieves a period scoped to an organization.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE organization_id = $1 AND period_id = $2;`
	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, organizationID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by ID "+periodID, err)
	}
	d := mapping.ToDomainPeriod(*m)
	return &d, nil
}

// FindPeriodForDate retrieves the period whose range covers the date. Period
// ranges within an organization never overlap.
func (r *PgxFiscalRepository) FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE organization_id = $1 AND start_date <= $2 AND end_date >= $2;
	`
	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, organizationID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period for date", err)
	}
	d := mapping.ToDomainPeriod(*m)
	return &d, nil
}

// ListPeriodsByFiscalYear returns a year's periods ordered by period number.
func (r *PgxFiscalRepository) ListPeriodsByFiscalYear(ctx context.Context, organizationID, fiscalYearID string) ([]domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE organization_id = $1 AND fiscal_year_id = $2
		ORDER BY period_number;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for fiscal year "+fiscalYearID, err)
	}
	defer rows.Close()

	return collectPeriods(rows)
}

// ListOpenPeriods returns all OPEN periods for an organization ordered by start date.
func (r *PgxFiscalRepository) ListOpenPeriods(ctx context.Context, organizationID string) ([]domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE organization_id = $1 AND status = 'OPEN'
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open periods for organization "+organizationID, err)
	}
	defer rows.Close()

	return collectPeriods(rows)
}

// CountNonClosedPeriods counts a fiscal year's periods still OPEN. LOCKED
// periods count as closed: a lock carries a close stamp and can never reopen,
// so counting it would leave the year permanently unclosable.
func (r *PgxFiscalRepository) CountNonClosedPeriods(ctx context.Context, fiscalYearID string) (int, error) {
	query := `SELECT COUNT(*) FROM periods WHERE fiscal_year_id = $1 AND status = 'OPEN';`
	var count int
	if err := r.Pool.QueryRow(ctx, query, fiscalYearID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count non-closed periods for fiscal year "+fiscalYearID, err)
	}
	return count, nil
}

// UpdatePeriodStatus transitions a period. A nil closedAt clears the close
// stamp, which is how a reopen is persisted.
func (r *PgxFiscalRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedBy string, closedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE periods
		SET status = $2,
		    closed_at = $3,
		    closed_by = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE period_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		periodID,
		string(status),
		closedAt,
		nullableString(closedBy),
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period status for "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func collectPeriods(rows pgx.Rows) ([]domain.Period, error) {
	periods := []models.Period{}
	for rows.Next() {
		m, err := scanPeriodRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return mapping.ToDomainPeriodSlice(periods), nil
}
