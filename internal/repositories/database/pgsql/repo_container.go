package pgsql

import (
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		PeriodRepo:       newPgxPeriodRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
		TxManager:        newPgxTxManager(dbPool),
	}
}
