package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountService
	Fiscal    FiscalService
	Period    PeriodService
	Journal   JournalService
	Reporting ReportingService
	Export    ExportService
}
