package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRateLookupTimeout = 3 * time.Second
	defaultRateCacheSize     = 1024
)

type rateKey struct {
	from, to string
	day      string
	rateType domain.RateType
}

func (k rateKey) String() string {
	return k.from + ">" + k.to + "@" + k.day + "/" + string(k.rateType)
}

type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateReader
	provider     portssvc.RateProvider
	baseCurrency string
	timeout      time.Duration
	cacheSize    int
	cache        *lru.Cache[rateKey, decimal.Decimal]
	group        singleflight.Group
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateProvider falls back to a remote provider when the local table has no rate.
func WithRateProvider(provider portssvc.RateProvider) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.provider = provider
	}
}

// WithRateLookupTimeout bounds each rate resolution.
func WithRateLookupTimeout(timeout time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithRateCacheSize sets how many resolved rates are kept in memory.
func WithRateCacheSize(size int) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// NewExchangeRateService creates the FX primitive used by posting and reporting.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader, baseCurrency string, options ...ExchangeRateServiceOption) (portssvc.ExchangeRateSvc, error) {
	base := strings.ToUpper(strings.TrimSpace(baseCurrency))
	if len(base) != 3 {
		return nil, fmt.Errorf("%w: base currency must be a 3-letter code, got %q", apperrors.ErrValidation, baseCurrency)
	}
	svc := &exchangeRateService{
		rateRepo:     rateRepo,
		baseCurrency: base,
		timeout:      defaultRateLookupTimeout,
		cacheSize:    defaultRateCacheSize,
	}
	for _, option := range options {
		option(svc)
	}

	cache, err := lru.New[rateKey, decimal.Decimal](svc.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange rate cache: %w", err)
	}
	svc.cache = cache
	return svc, nil
}

var _ portssvc.ExchangeRateSvc = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetBaseCurrency(ctx context.Context) string {
	return s.baseCurrency
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, from, to string, on time.Time, rateType domain.RateType) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if len(from) != 3 || len(to) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if rateType == "" {
		rateType = domain.RateSpot
	}

	key := rateKey{from: from, to: to, day: domain.DateOnly(on).Format(time.DateOnly), rateType: rateType}
	if rate, ok := s.cache.Get(key); ok {
		return rate, nil
	}

	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.resolve(lookupCtx, key, on)
	})
	if err != nil {
		s.LogWarn(ctx, "Exchange rate unavailable",
			slog.String("pair", key.String()),
			slog.String("error", err.Error()))
		return decimal.Zero, err
	}

	rate := v.(decimal.Decimal)
	s.cache.Add(key, rate)
	return rate, nil
}

func (s *exchangeRateService) resolve(ctx context.Context, key rateKey, on time.Time) (decimal.Decimal, error) {
	stored, err := s.rateRepo.FindExchangeRate(ctx, key.from, key.to, on, key.rateType)
	switch {
	case err == nil && stored.Rate.IsPositive():
		return stored.Rate, nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return decimal.Zero, fmt.Errorf("%w: %s: %w", apperrors.ErrFxRateUnavailable, key, err)
	}

	if s.provider == nil {
		return decimal.Zero, fmt.Errorf("%w: no %s rate for %s", apperrors.ErrFxRateUnavailable, key.rateType, key)
	}

	rate, err := s.provider.FetchRate(ctx, key.from, key.to, on, key.rateType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %w", apperrors.ErrFxRateUnavailable, key, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: provider returned non-positive rate %s for %s", apperrors.ErrFxRateUnavailable, rate, key)
	}
	s.LogDebug(ctx, "Exchange rate fetched from provider", slog.String("pair", key.String()), slog.String("rate", rate.String()))
	return rate, nil
}
