package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/crafterp/accounting/internal/utils/accounting"
	"github.com/hibiken/asynq"
)

// SnapshotTaskHandler rebuilds the period_account_balances rows for one period
// from posted journal lines.
type SnapshotTaskHandler struct {
	fiscalRepo    portsrepo.FiscalRepository
	reportingRepo portsrepo.ReportingRepository
	snapshotRepo  portsrepo.SnapshotRepository
	logger        *slog.Logger
}

// NewSnapshotTaskHandler creates the handler for snapshot rebuild tasks.
func NewSnapshotTaskHandler(repos portsrepo.RepositoryProvider, logger *slog.Logger) *SnapshotTaskHandler {
	return &SnapshotTaskHandler{
		fiscalRepo:    repos.FiscalRepo,
		reportingRepo: repos.ReportingRepo,
		snapshotRepo:  repos.SnapshotRepo,
		logger:        logger,
	}
}

var allAccountTypes = []domain.AccountType{
	domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense,
}

// HandleSnapshotRebuild recomputes one period's snapshot and replaces its rows.
// The rebuild is a full replacement, so retries and duplicate tasks converge on
// the same result.
func (h *SnapshotTaskHandler) HandleSnapshotRebuild(ctx context.Context, task *asynq.Task) error {
	var payload SnapshotRebuildPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	h.logger.Info("Rebuilding balance snapshot",
		slog.String("organization_id", payload.OrganizationID),
		slog.String("period_id", payload.PeriodID))

	period, err := h.fiscalRepo.FindPeriodByID(ctx, payload.OrganizationID, payload.PeriodID)
	if err != nil {
		return fmt.Errorf("failed to find period %s: %w", payload.PeriodID, err)
	}

	rows, err := h.computeSnapshotRows(ctx, payload.OrganizationID, *period)
	if err != nil {
		return err
	}

	if err := h.snapshotRepo.UpsertPeriodAccountBalances(ctx, payload.OrganizationID, payload.PeriodID, rows); err != nil {
		return fmt.Errorf("failed to store snapshot for period %s: %w", payload.PeriodID, err)
	}

	h.logger.Info("Balance snapshot rebuilt",
		slog.String("period_id", payload.PeriodID),
		slog.Int("accounts", len(rows)))
	return nil
}

// computeSnapshotRows derives one row per active postable account. The opening
// balance is the account's configured opening plus all posted movement before
// the period start; the closing balance adds the period's signed movement.
func (h *SnapshotTaskHandler) computeSnapshotRows(ctx context.Context, organizationID string, period domain.Period) ([]domain.PeriodAccountBalance, error) {
	inPeriod, err := h.reportingRepo.GetAccountActivity(ctx, organizationID, allAccountTypes, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period activity: %w", err)
	}
	beforePeriod, err := h.reportingRepo.GetAccountActivity(ctx, organizationID, allAccountTypes, time.Time{}, period.StartDate.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prior activity: %w", err)
	}

	priorByAccount := make(map[string]domain.AccountActivity, len(beforePeriod))
	for _, a := range beforePeriod {
		priorByAccount[a.AccountID] = a
	}

	now := time.Now()
	rows := make([]domain.PeriodAccountBalance, 0, len(inPeriod))
	for _, a := range inPeriod {
		opening := a.OpeningBalance
		if prior, ok := priorByAccount[a.AccountID]; ok {
			signed, err := accounting.SignedAmount(prior.TotalDebit, prior.TotalCredit, a.AccountType)
			if err != nil {
				return nil, err
			}
			opening = opening.Add(signed)
		}
		movement, err := accounting.SignedAmount(a.TotalDebit, a.TotalCredit, a.AccountType)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.PeriodAccountBalance{
			OrganizationID: organizationID,
			PeriodID:       period.PeriodID,
			AccountID:      a.AccountID,
			OpeningBalance: accounting.RoundMoney(opening),
			TotalDebit:     accounting.RoundMoney(a.TotalDebit),
			TotalCredit:    accounting.RoundMoney(a.TotalCredit),
			ClosingBalance: accounting.RoundMoney(opening.Add(movement)),
			UpdatedAt:      now,
		})
	}
	return rows, nil
}
