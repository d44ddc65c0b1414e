package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at wiring time.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	FiscalRepo    FiscalRepository
	JournalRepo   JournalRepository
	ReportingRepo ReportingRepository
	SnapshotRepo  SnapshotRepository
}
