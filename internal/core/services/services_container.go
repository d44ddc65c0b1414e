package services

import (
	portsrepo "github.com/crafterp/accounting/internal/core/ports/repositories"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/crafterp/accounting/internal/platform/cache"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The cache and enqueuer are optional; nil disables the account
// listing cache and the snapshot rebuild trigger respectively.
func NewServiceContainer(repos portsrepo.RepositoryProvider, listingCache cache.AccountListingCache, enqueuer portssvc.SnapshotEnqueuer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, listingCache)
	container.Fiscal = NewFiscalService(repos.FiscalRepo)

	// The period gate provisions missing fiscal years through the fiscal service.
	container.Period = NewPeriodService(repos.FiscalRepo, container.Fiscal)

	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.Period, enqueuer)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.FiscalRepo)
	container.Export = NewExportService(container.Reporting)

	return container
}
