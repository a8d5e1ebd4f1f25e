package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodReader = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, name, start_date, end_date, status`

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	rows, err := r.db().Query(ctx, `SELECT `+periodColumns+` FROM fiscal_periods WHERE period_id = $1`, periodID)
	if err != nil {
		return nil, fmt.Errorf("querying fiscal period %s: %w", periodID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("fiscal period %s: %w", periodID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning fiscal period %s: %w", periodID, err)
	}
	p := mapping.ToDomainFiscalPeriod(m)
	return &p, nil
}

// FindPeriodsByDate returns every period containing the date, earliest start first.
func (r *PgxPeriodRepository) FindPeriodsByDate(ctx context.Context, date time.Time) ([]domain.FiscalPeriod, error) {
	rows, err := r.db().Query(ctx, `SELECT `+periodColumns+` FROM fiscal_periods
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY start_date`, domain.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("querying fiscal periods: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		return nil, fmt.Errorf("scanning fiscal periods: %w", err)
	}
	out := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainFiscalPeriod(m)
	}
	return out, nil
}
