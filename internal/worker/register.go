package worker

import (
	"log/slog"

	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/hibiken/asynq"
)

// RegisterHandlers wires the task handlers onto the asynq mux.
func RegisterHandlers(mux *asynq.ServeMux, repos portsrepo.RepositoryProvider, logger *slog.Logger) {
	snapshotHandler := NewSnapshotTaskHandler(repos, logger)
	mux.HandleFunc(TypeSnapshotRebuild, snapshotHandler.HandleSnapshotRebuild)
}
