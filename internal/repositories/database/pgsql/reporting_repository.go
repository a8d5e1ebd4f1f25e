package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetAccountActivity sums the debit and credit columns per account for entries dated in
// [from, to]. Reversed entries and their reversals both count, so they net to zero.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, from, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			l.account_id,
			COALESCE(SUM(l.debit), 0) AS debit,
			COALESCE(SUM(l.credit), 0) AS credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date BETWEEN $1 AND $2
			AND e.status IN ('POSTED', 'REVERSED')
		GROUP BY l.account_id
		ORDER BY l.account_id
	`

	rows, err := r.db().Query(ctx, query, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountActivity])
	if err != nil {
		return nil, fmt.Errorf("error scanning account activity: %w", err)
	}
	return mapping.ToDomainAccountActivity(ms), nil
}
