package services

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
	"github.com/SscSPs/settlement_ledger/internal/utils"
)

// NewServiceContainer wires every ledger service. The account role mapping is loaded and
// validated here, so a broken chart of accounts stops the process before it serves traffic.
// rateProvider may be nil when no remote FX source is configured.
func NewServiceContainer(
	ctx context.Context,
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	rateProvider portssvc.RateProvider,
) (*portssvc.ServiceContainer, *ChartOfAccounts, error) {
	mapping, err := config.LoadRoleMapping(cfg.AccountRolesFile)
	if err != nil {
		return nil, nil, err
	}
	chart, err := NewChartOfAccounts(ctx, repos.AccountRepo, *mapping)
	if err != nil {
		return nil, nil, err
	}

	fxOptions := []ExchangeRateServiceOption{
		WithRateLookupTimeout(cfg.FXTimeout),
		WithRateCacheSize(cfg.FXCacheSize),
	}
	if rateProvider != nil {
		fxOptions = append(fxOptions, WithRateProvider(rateProvider))
	}
	fx, err := NewExchangeRateService(repos.ExchangeRateRepo, cfg.BaseCurrency, fxOptions...)
	if err != nil {
		return nil, nil, err
	}

	buckets, err := utils.ParseBucketWidths(cfg.AgingBuckets)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid AGING_BUCKETS: %w", err)
	}

	periodGate := NewPeriodService(repos.PeriodRepo)

	container := &portssvc.ServiceContainer{
		Journal:       NewJournalService(repos.AccountRepo, repos.JournalRepo, repos.TxManager, periodGate),
		InvoicePoster: NewInvoicePostingService(repos, periodGate, fx, chart),
		PaymentPoster: NewPaymentPostingService(repos, periodGate, fx, chart),
		ExchangeRate:  fx,
		PeriodGate:    periodGate,
		Reporting:     NewReportingService(repos, fx, WithDefaultAgingBuckets(buckets)),
	}
	return container, chart, nil
}
