package pgsql

import (
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, journalNumberPrefix string) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	fiscalRepo := newPgxFiscalRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, journalNumberPrefix)
	reportingRepo := newPgxReportingRepository(dbPool)
	snapshotRepo := newPgxSnapshotRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		FiscalRepo:    fiscalRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
		SnapshotRepo:  snapshotRepo,
	}
}
