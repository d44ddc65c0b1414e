package worker

import (
	"context"
	"fmt"

	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// AsynqSnapshotEnqueuer schedules snapshot rebuilds on the asynq queue.
type AsynqSnapshotEnqueuer struct {
	client *asynq.Client
}

// NewAsynqSnapshotEnqueuer wraps an asynq client as a snapshot enqueuer.
func NewAsynqSnapshotEnqueuer(client *asynq.Client) *AsynqSnapshotEnqueuer {
	return &AsynqSnapshotEnqueuer{client: client}
}

// Ensure AsynqSnapshotEnqueuer implements the ports interface
var _ portssvc.SnapshotEnqueuer = (*AsynqSnapshotEnqueuer)(nil)

// EnqueueSnapshotRebuild enqueues a rebuild task. Rebuilds are idempotent
// full replacements, so duplicate tasks for the same period are harmless.
func (e *AsynqSnapshotEnqueuer) EnqueueSnapshotRebuild(ctx context.Context, organizationID, periodID string) error {
	task, err := NewSnapshotRebuildTask(organizationID, periodID)
	if err != nil {
		return fmt.Errorf("failed to build snapshot rebuild task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, asynq.Queue("default")); err != nil {
		return fmt.Errorf("failed to enqueue snapshot rebuild for period %s: %w", periodID, err)
	}
	return nil
}
