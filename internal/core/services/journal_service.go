package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crafterp/accounting/internal/apperrors"
	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/dto"
	"github.com/crafterp/accounting/internal/utils/accounting"
	"github.com/google/uuid"
)

var (
	// ErrUnbalanced indicates the entry's debit and credit totals differ.
	ErrUnbalanced = fmt.Errorf("%w: debit and credit totals must match", apperrors.ErrValidation)
	// ErrLineAmounts indicates a line does not carry exactly one positive side.
	ErrLineAmounts = fmt.Errorf("%w: each line must carry exactly one positive amount, debit or credit", apperrors.ErrValidation)
	// ErrUnknownAccount indicates a line references an account that does not exist in the organization.
	ErrUnknownAccount = fmt.Errorf("%w: line references an unknown account", apperrors.ErrValidation)
	// ErrAccountNotPostable indicates a line references a group, inactive, or manual-entry-disabled account.
	ErrAccountNotPostable = fmt.Errorf("%w: line references a non-postable account", apperrors.ErrValidation)
	// ErrPeriodClosed indicates the owning period does not accept postings.
	ErrPeriodClosed = fmt.Errorf("%w: accounting period is not open", apperrors.ErrConflict)
	// ErrNotDraft indicates a post was attempted on a non-DRAFT entry.
	ErrNotDraft = fmt.Errorf("%w: journal entry is not in draft", apperrors.ErrConflict)
	// ErrNotPosted indicates a reversal was attempted on a non-POSTED entry.
	ErrNotPosted = fmt.Errorf("%w: journal entry is not posted", apperrors.ErrConflict)
)

type JournalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	periodSvc   portssvc.PeriodService
	enqueuer    portssvc.SnapshotEnqueuer
}

// NewJournalService creates the journal engine service. The snapshot enqueuer
// may be nil; posting then leaves the balance snapshot stale until the next
// scheduled rebuild.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, periodSvc portssvc.PeriodService, enqueuer portssvc.SnapshotEnqueuer) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodSvc:   periodSvc,
		enqueuer:    enqueuer,
	}
}

// Ensure JournalService implements the ports interface
var _ portssvc.JournalService = (*JournalService)(nil)

// CreateJournalEntry validates and persists a new DRAFT entry. The owning
// period is resolved from the journal date and must be OPEN even for a draft,
// so a draft can never sit in a period it could not eventually post into.
func (s *JournalService) CreateJournalEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	journalType := domain.JournalTypeManual
	if req.JournalType != "" {
		journalType = domain.JournalType(req.JournalType)
	}
	// Journal dates carry day precision; an intraday timestamp would otherwise
	// miss the period covering its own calendar day.
	journalDate := domain.DateOnly(req.JournalDate)

	lines, err := s.buildLines(ctx, organizationID, req.Lines, journalType, actorID)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := accounting.SumLineTotals(lines)
	if !totalDebit.Equal(totalCredit) {
		return nil, fmt.Errorf("%w (debit %s, credit %s)", ErrUnbalanced, totalDebit, totalCredit)
	}
	if totalDebit.IsZero() {
		return nil, ErrLineAmounts
	}

	period, err := s.periodSvc.ResolvePeriodForDate(ctx, organizationID, journalDate, actorID)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, ErrPeriodClosed
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		OrganizationID:  organizationID,
		JournalDate:     journalDate,
		PeriodID:        period.PeriodID,
		JournalType:     journalType,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		Status:          domain.Draft,
		TotalDebit:      accounting.RoundMoney(totalDebit),
		TotalCredit:     accounting.RoundMoney(totalCredit),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	for i := range lines {
		lines[i].EntryID = entry.EntryID
		lines[i].AuditFields = entry.AuditFields
	}

	saved, err := s.journalRepo.SaveJournalEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("journal_number", saved.JournalNumber),
		slog.String("period_id", saved.PeriodID))
	return saved, nil
}

// buildLines validates the requested lines against the chart of accounts and
// assigns 1-based line numbers in request order.
func (s *JournalService) buildLines(ctx context.Context, organizationID string, reqLines []dto.JournalLineRequest, journalType domain.JournalType, actorID string) ([]domain.JournalLine, error) {
	accountIDs := make([]string, 0, len(reqLines))
	for _, l := range reqLines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal lines")
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(reqLines))
	for i, l := range reqLines {
		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if debitSet == creditSet || l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w (line %d)", ErrLineAmounts, i+1)
		}

		account, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w (line %d, account %s)", ErrUnknownAccount, i+1, l.AccountID)
		}
		if !account.IsActive || account.IsGroup {
			return nil, fmt.Errorf("%w (line %d, account %s)", ErrAccountNotPostable, i+1, account.AccountCode)
		}
		if journalType == domain.JournalTypeManual && !account.AllowManualEntry {
			return nil, fmt.Errorf("%w (line %d, account %s does not allow manual entries)", ErrAccountNotPostable, i+1, account.AccountCode)
		}

		lines = append(lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			LineNumber:  i + 1,
			AccountID:   l.AccountID,
			Debit:       accounting.RoundMoney(l.Debit),
			Credit:      accounting.RoundMoney(l.Credit),
			Description: l.Description,
			Department:  l.Department,
			CostCenter:  l.CostCenter,
		})
	}
	return lines, nil
}

// PostJournalEntry transitions a DRAFT entry to POSTED. The period gate is
// checked here for a precise error, then re-checked under lock inside the
// repository transaction; a race surfaces as a conflict.
func (s *JournalService) PostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry for posting", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, ErrNotDraft
	}

	period, err := s.periodSvc.GetPeriodByID(ctx, organizationID, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, ErrPeriodClosed
	}

	now := time.Now()
	if err := s.journalRepo.MarkEntryPosted(ctx, organizationID, entryID, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Posting lost a race with a concurrent status change", slog.String("entry_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to mark entry posted", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = actorID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	s.enqueueSnapshotRebuild(ctx, organizationID, entry.PeriodID)
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("journal_number", entry.JournalNumber))
	return entry, nil
}

// ReverseJournalEntry creates and immediately posts a mirror-image entry for a
// POSTED original and marks the original REVERSED. The reversal carries the
// original's date and period so the two cancel out in the same reporting
// window, even when that period has since been closed.
func (s *JournalService) ReverseJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry for reversal", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, ErrNotPosted
	}
	if original.JournalType == domain.JournalTypeReversal {
		return nil, fmt.Errorf("%w: a reversal entry cannot itself be reversed", apperrors.ErrConflict)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load lines for reversal", slog.String("entry_id", entryID))
		return nil, err
	}

	now := time.Now()
	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		OrganizationID:  organizationID,
		JournalDate:     original.JournalDate,
		PeriodID:        original.PeriodID,
		JournalType:     domain.JournalTypeReversal,
		ReferenceNumber: original.ReferenceNumber,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.JournalNumber, original.Description),
		Status:          domain.Posted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		ReversedEntryID: &originalID,
		PostedAt:        &now,
		PostedBy:        actorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	lines := make([]domain.JournalLine, len(originalLines))
	for i, l := range originalLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversal.EntryID,
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: "Reversal: " + l.Description,
			Department:  l.Department,
			CostCenter:  l.CostCenter,
			AuditFields: reversal.AuditFields,
		}
	}

	saved, err := s.journalRepo.SaveReversal(ctx, reversal, lines, originalID, actorID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Reversal lost a race with a concurrent status change", slog.String("entry_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to save reversal", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.enqueueSnapshotRebuild(ctx, organizationID, original.PeriodID)
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", saved.EntryID),
		slog.String("reversal_number", saved.JournalNumber))
	return saved, nil
}

// GetJournalEntry retrieves an entry with its lines populated.
func (s *JournalService) GetJournalEntry(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// GetJournalLines retrieves an entry's lines, verifying the entry belongs to
// the organization first.
func (s *JournalService) GetJournalLines(ctx context.Context, organizationID, entryID string) ([]domain.JournalLine, error) {
	if _, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID); err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.String("entry_id", entryID))
		return nil, err
	}
	return lines, nil
}

// ListJournalEntries returns a page of entries, newest first.
func (s *JournalService) ListJournalEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, organizationID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("organization_id", organizationID))
		return nil, err
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListJournalEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// enqueueSnapshotRebuild schedules a snapshot rebuild. A failed enqueue only
// leaves the snapshot stale, so it is logged and swallowed.
func (s *JournalService) enqueueSnapshotRebuild(ctx context.Context, organizationID, periodID string) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueSnapshotRebuild(ctx, organizationID, periodID); err != nil {
		s.LogError(ctx, err, "Failed to enqueue snapshot rebuild", slog.String("period_id", periodID))
	}
}
