package services

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateSvc resolves rates for posting and reporting.
type ExchangeRateSvc interface {
	// GetExchangeRate returns the rate converting one unit of from into to on the date.
	// It fails with apperrors.ErrFxRateUnavailable, never with a default of 1.
	GetExchangeRate(ctx context.Context, from, to string, on time.Time, rateType domain.RateType) (decimal.Decimal, error)

	// GetBaseCurrency returns the ledger's functional currency.
	GetBaseCurrency(ctx context.Context) string
}

// RateProvider is a remote source of exchange rates.
type RateProvider interface {
	FetchRate(ctx context.Context, from, to string, on time.Time, rateType domain.RateType) (decimal.Decimal, error)
}
