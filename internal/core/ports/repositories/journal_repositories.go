package repositories

import (
	"context"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
)

// JournalRepository defines persistence operations for journal entries and
// their lines. Header and lines are always written in a single transaction so
// concurrent readers never observe a partially persisted entry.
type JournalRepository interface {
	// SaveJournalEntry allocates the next journal number for the entry's
	// organization and persists the DRAFT header together with its lines in one
	// transaction. The returned entry carries the assigned journal number.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)

	// FindEntryByID retrieves a journal entry scoped to an organization.
	FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries returns a page of entries for an organization, newest first,
	// with an opaque next-page token.
	ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// MarkEntryPosted transitions a DRAFT entry to POSTED. Inside the
	// transaction it re-reads the entry status and takes a share lock on the
	// owning period row, failing with apperrors.ErrConflict if the entry is no
	// longer DRAFT or the period is no longer OPEN.
	MarkEntryPosted(ctx context.Context, organizationID, entryID string, postedBy string, postedAt time.Time) error

	// SaveReversal persists the reversal entry (POSTED) with its mirrored lines
	// and marks the original entry REVERSED with a reference to the reversal,
	// all in one transaction. The reversal's journal number is allocated inside
	// the same transaction. Fails with apperrors.ErrConflict if the original is
	// no longer POSTED.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, reversedBy string, reversedAt time.Time) (*domain.JournalEntry, error)
}
