package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the latest rate of the given type effective on or before the
	// date, trying the direct pair before the inverse pair.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, on time.Time, rateType domain.RateType) (*domain.ExchangeRate, error)
}
