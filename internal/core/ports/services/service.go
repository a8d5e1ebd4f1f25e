package services

// ServiceContainer holds instances of all the application services.
// Handlers and the CLI reach the ledger only through it.
type ServiceContainer struct {
	Journal       JournalSvcFacade
	InvoicePoster InvoicePosterSvc
	PaymentPoster PaymentPosterSvc
	ExchangeRate  ExchangeRateSvc
	PeriodGate    PeriodGateSvc
	Reporting     ReportingService
}
