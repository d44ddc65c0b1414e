package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/crafterp/accounting/internal/models"
	"github.com/crafterp/accounting/internal/utils/mapping"
	"github.com/crafterp/accounting/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
	numberPrefix string
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool, numberPrefix string) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		numberPrefix:   numberPrefix,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const journalEntryColumns = `
	entry_id, organization_id, journal_number, journal_date, period_id, journal_type,
	reference_number, description, status, total_debit, total_credit,
	reversing_entry_id, reversed_entry_id, posted_at, posted_by, reversed_at, reversed_by,
	created_at, created_by, last_updated_at, last_updated_by
`

const journalLineColumns = `
	line_id, entry_id, line_number, account_id, debit, credit, description, department, cost_center,
	created_at, created_by, last_updated_at, last_updated_by
`

// nextJournalNumber atomically increments the per-organization sequence inside
// the caller's transaction and formats the resulting journal number. The upsert
// makes the first allocation and every later one a single round trip, and the
// row lock taken by DO UPDATE serialises concurrent allocations.
func (r *PgxJournalRepository) nextJournalNumber(ctx context.Context, tx pgx.Tx, organizationID string) (string, error) {
	query := `
		INSERT INTO journal_sequences (organization_id, prefix, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (organization_id, prefix)
		DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, organizationID, r.numberPrefix).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate journal number for organization "+organizationID, err)
	}
	return fmt.Sprintf("%s%06d", r.numberPrefix, seq), nil
}

// insertLines queues and executes the line inserts for one entry as a batch.
func insertLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		m.EntryID = entryID
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.LineNumber,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.Department,
			m.CostCenter,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line insert batch for entry "+entryID, err)
	}
	return nil
}

func insertEntryHeader(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.OrganizationID,
		m.JournalNumber,
		m.JournalDate,
		m.PeriodID,
		m.JournalType,
		m.ReferenceNumber,
		m.Description,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.ReversingEntryID,
		m.ReversedEntryID,
		m.PostedAt,
		nullableString(m.PostedBy),
		m.ReversedAt,
		nullableString(m.ReversedBy),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

// SaveJournalEntry allocates the entry's journal number and persists the header
// together with its lines in one transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.nextJournalNumber(ctx, tx, entry.OrganizationID)
	if err != nil {
		return nil, err
	}
	entry.JournalNumber = number

	if err := insertEntryHeader(ctx, tx, mapping.ToModelJournalEntry(entry)); err != nil {
		return nil, err
	}
	if err := insertLines(ctx, tx, entry.EntryID, lines); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Lines = lines
	return &entry, nil
}

func scanJournalEntryRow(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	var postedBy, reversedBy sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.JournalNumber,
		&m.JournalDate,
		&m.PeriodID,
		&m.JournalType,
		&m.ReferenceNumber,
		&m.Description,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.ReversingEntryID,
		&m.ReversedEntryID,
		&m.PostedAt,
		&postedBy,
		&m.ReversedAt,
		&reversedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if postedBy.Valid {
		m.PostedBy = postedBy.String
	}
	if reversedBy.Valid {
		m.ReversedBy = reversedBy.String
	}
	return &m, nil
}

// FindEntryByID retrieves a journal entry scoped to an organization.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`
	m, err := scanJournalEntryRow(r.Pool.QueryRow(ctx, query, organizationID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.LineNumber,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.Department,
			&m.CostCenter,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves a paginated list of journal entries for an organization
// using token-based pagination, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE organization_id = $1
	`
	// Ordering must be stable; created_at breaks journal_date ties.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{organizationID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison keeps the cursor condition in one index range scan
		cursorClause := `AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for organization "+organizationID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row for organization "+organizationID, scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.JournalDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, nextTokenVal, nil
}

// MarkEntryPosted transitions a DRAFT entry to POSTED. The entry row is locked
// and its status re-read, and the owning period row takes a share lock, so a
// concurrent period close or double post fails here rather than leaving a
// posted entry in a closed period.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, organizationID, entryID string, postedBy string, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.JournalStatus
	var periodID string
	err = tx.QueryRow(ctx, `
		SELECT status, period_id FROM journal_entries
		WHERE organization_id = $1 AND entry_id = $2
		FOR UPDATE;
	`, organizationID, entryID).Scan(&status, &periodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal entry "+entryID, err)
	}
	if status != models.Draft {
		return apperrors.ErrConflict
	}

	// The share lock blocks a concurrent status change on the period row until
	// this transaction commits.
	var periodStatus string
	err = tx.QueryRow(ctx, `
		SELECT status FROM periods WHERE period_id = $1 FOR SHARE;
	`, periodID).Scan(&periodStatus)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock period "+periodID, err)
	}
	if periodStatus != string(domain.PeriodOpen) {
		return apperrors.ErrConflict
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3,
		    posted_at = $4,
		    posted_by = $5,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE organization_id = $1 AND entry_id = $2;
	`, organizationID, entryID, models.Posted, postedAt, postedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry posted "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversal entry with its mirrored lines and flips
// the original entry to REVERSED, all in one transaction.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, reversedBy string, reversedAt time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var status models.JournalStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM journal_entries
		WHERE organization_id = $1 AND entry_id = $2
		FOR UPDATE;
	`, reversal.OrganizationID, originalEntryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock journal entry "+originalEntryID, err)
	}
	if status != models.Posted {
		return nil, apperrors.ErrConflict
	}

	number, err := r.nextJournalNumber(ctx, tx, reversal.OrganizationID)
	if err != nil {
		return nil, err
	}
	reversal.JournalNumber = number

	if err := insertEntryHeader(ctx, tx, mapping.ToModelJournalEntry(reversal)); err != nil {
		return nil, err
	}
	if err := insertLines(ctx, tx, reversal.EntryID, lines); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3,
		    reversing_entry_id = $4,
		    reversed_at = $5,
		    reversed_by = $6,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE organization_id = $1 AND entry_id = $2;
	`, reversal.OrganizationID, originalEntryID, models.Reversed, reversal.EntryID, reversedAt, reversedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark entry reversed "+originalEntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	reversal.Lines = lines
	return &reversal, nil
}
