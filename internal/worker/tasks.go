// Package worker maintains the per-period account balance snapshot behind the
// trial balance read path. Posting and reversal enqueue a rebuild task; the
// worker recomputes the affected period from posted lines and replaces the
// snapshot rows.
package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeSnapshotRebuild is the task type for rebuilding one period's balance snapshot.
const TypeSnapshotRebuild = "snapshot:rebuild"

// SnapshotRebuildPayload identifies the snapshot to rebuild.
type SnapshotRebuildPayload struct {
	OrganizationID string `json:"organization_id"`
	PeriodID       string `json:"period_id"`
}

// NewSnapshotRebuildTask builds the asynq task for one (organization, period).
func NewSnapshotRebuildTask(organizationID, periodID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SnapshotRebuildPayload{
		OrganizationID: organizationID,
		PeriodID:       periodID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSnapshotRebuild, payload), nil
}
