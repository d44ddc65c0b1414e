package services

import (
	"context"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/crafterp/accounting/internal/dto"
)

// JournalService is the journal engine facade: the DRAFT -> POSTED -> REVERSED
// posting state machine.
type JournalService interface {
	CreateJournalEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)
	PostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error)
	ReverseJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error)
	GetJournalEntry(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)
	GetJournalLines(ctx context.Context, organizationID, entryID string) ([]domain.JournalLine, error)
	ListJournalEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// SnapshotEnqueuer schedules a rebuild of the per-period account balance
// snapshot for one (organization, period). Implementations must be safe to
// call concurrently; a failed enqueue only leaves the snapshot stale and must
// never fail the posting that triggered it.
type SnapshotEnqueuer interface {
	EnqueueSnapshotRebuild(ctx context.Context, organizationID, periodID string) error
}
