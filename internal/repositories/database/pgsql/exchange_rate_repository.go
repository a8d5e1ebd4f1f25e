package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// inverseRatePrecision is the number of decimal places kept when inverting a stored rate.
const inverseRatePrecision = 12

// PgxExchangeRateRepository reads maintained exchange rates.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateReader = (*PgxExchangeRateRepository)(nil)

// FindExchangeRate returns the latest rate effective on or before the date. When only the
// inverse pair is maintained its reciprocal is returned.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, on time.Time, rateType domain.RateType) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)
	day := domain.DateOnly(on)

	direct, err := r.latest(ctx, from, to, day, rateType)
	if err == nil {
		rate := mapping.ToDomainExchangeRate(*direct)
		return &rate, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	inverse, err := r.latest(ctx, to, from, day, rateType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exchange rate %s/%s on %s: %w", from, to, day.Format(time.DateOnly), apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !inverse.Rate.IsPositive() {
		return nil, fmt.Errorf("exchange rate %s has non-positive value: %w", inverse.ExchangeRateID, apperrors.ErrValidation)
	}
	rate := mapping.ToDomainExchangeRate(*inverse)
	rate.FromCurrency, rate.ToCurrency = from, to
	rate.Rate = decimal.NewFromInt(1).DivRound(inverse.Rate, inverseRatePrecision)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) latest(ctx context.Context, from, to string, day time.Time, rateType domain.RateType) (*models.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, rate_type
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
			AND rate_type = $3 AND date_effective <= $4
		ORDER BY date_effective DESC
		LIMIT 1`
	rows, err := r.db().Query(ctx, query, from, to, string(rateType), day)
	if err != nil {
		return nil, fmt.Errorf("querying exchange rate %s/%s: %w", from, to, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ExchangeRate])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning exchange rate %s/%s: %w", from, to, err)
	}
	return &m, nil
}
