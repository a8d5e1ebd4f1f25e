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

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, number, direction, party_id, currency_code, payment_date,
	total_amount, bank_account_code, period_id, gl_journal_id, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const allocationColumns = `allocation_id, payment_id, invoice_id, amount, invoice_currency,
	exchange_rate, settled_amount, base_amount, carrying_amount, fx_difference`

// FindPaymentByID retrieves a payment with its allocations.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findPayment(ctx, paymentID, "")
}

// FindPaymentByIDForUpdate locks the payment row until the surrounding transaction ends.
func (r *PgxPaymentRepository) FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findPayment(ctx, paymentID, " FOR UPDATE")
}

func (r *PgxPaymentRepository) findPayment(ctx context.Context, paymentID, lock string) (*domain.Payment, error) {
	rows, err := r.db().Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`+lock, paymentID)
	if err != nil {
		return nil, fmt.Errorf("querying payment %s: %w", paymentID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Payment])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning payment %s: %w", paymentID, err)
	}

	rows, err = r.db().Query(ctx, `SELECT `+allocationColumns+` FROM payment_allocations
		WHERE payment_id = $1 ORDER BY allocation_id`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("querying allocations of payment %s: %w", paymentID, err)
	}
	allocations, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentAllocation])
	if err != nil {
		return nil, fmt.Errorf("scanning allocations of payment %s: %w", paymentID, err)
	}
	p := mapping.ToDomainPayment(m, allocations)
	return &p, nil
}

// SaveAllocationSnapshots stores rate and amount snapshots of the given allocations.
func (r *PgxPaymentRepository) SaveAllocationSnapshots(ctx context.Context, allocations []domain.PaymentAllocation) error {
	batch := &pgx.Batch{}
	for _, a := range allocations {
		m := mapping.ToModelPaymentAllocation(a)
		batch.Queue(`
			UPDATE payment_allocations
			SET invoice_currency = $2, exchange_rate = $3, settled_amount = $4,
				base_amount = $5, carrying_amount = $6, fx_difference = $7
			WHERE allocation_id = $1`,
			m.AllocationID, m.InvoiceCurrency, m.ExchangeRate, m.SettledAmount,
			m.BaseAmount, m.CarryingAmount, m.FxDifference)
	}
	br := r.db().SendBatch(ctx, batch)
	defer br.Close()
	for _, a := range allocations {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("saving snapshot of allocation %s: %w", a.AllocationID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("allocation %s: %w", a.AllocationID, apperrors.ErrNotFound)
		}
	}
	return nil
}

// MarkPaymentPosted links the payment to its journal entry.
func (r *PgxPaymentRepository) MarkPaymentPosted(ctx context.Context, paymentID, journalID, actor string, at time.Time) error {
	tag, err := r.db().Exec(ctx, `
		UPDATE payments
		SET gl_journal_id = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE payment_id = $1 AND gl_journal_id IS NULL`,
		paymentID, journalID, at, actor)
	if err != nil {
		return fmt.Errorf("marking payment %s posted: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		p, err := r.findPayment(ctx, paymentID, "")
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyPosted, p.Number)
	}
	return nil
}

// ClearPaymentPosting removes the journal link after the entry has been reversed.
func (r *PgxPaymentRepository) ClearPaymentPosting(ctx context.Context, paymentID, actor string, at time.Time) error {
	tag, err := r.db().Exec(ctx, `
		UPDATE payments
		SET gl_journal_id = NULL, posted_at = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1`,
		paymentID, at, actor)
	if err != nil {
		return fmt.Errorf("clearing posting of payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	return nil
}
