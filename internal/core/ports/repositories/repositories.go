package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalReader
	InvoiceRepo      InvoiceReader
	PaymentRepo      PaymentReader
	ExchangeRateRepo ExchangeRateReader
	PeriodRepo       PeriodReader
	ReportingRepo    ReportingRepository
	TxManager        TransactionManager
}
