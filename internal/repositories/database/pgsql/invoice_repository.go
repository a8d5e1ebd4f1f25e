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
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, number, kind, party_id, currency_code, invoice_date, due_date,
	period_id, status, payment_status, subtotal, tax_total, total, exchange_rate, base_total,
	gl_journal_id, posted_at, paid_at, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, line_no, description, quantity, unit_price,
	tax_rate, tax_code, account_code, line_subtotal, line_tax`

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceID, "")
}

// FindInvoiceByIDForUpdate locks the invoice row until the surrounding transaction ends.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceID, " FOR UPDATE")
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, invoiceID, lock string) (*domain.Invoice, error) {
	rows, err := r.db().Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1`+lock, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("querying invoice %s: %w", invoiceID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning invoice %s: %w", invoiceID, err)
	}

	lines, err := r.findLines(ctx, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(m, lines[invoiceID])
	return &inv, nil
}

// findLines loads the lines of several invoices, grouped by invoice ID in line order.
func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceIDs []string) (map[string][]models.InvoiceLine, error) {
	rows, err := r.db().Query(ctx, `SELECT `+invoiceLineColumns+` FROM invoice_lines
		WHERE invoice_id = ANY($1) ORDER BY invoice_id, line_no`, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("querying invoice lines: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InvoiceLine])
	if err != nil {
		return nil, fmt.Errorf("scanning invoice lines: %w", err)
	}
	out := make(map[string][]models.InvoiceLine, len(invoiceIDs))
	for _, m := range ms {
		out[m.InvoiceID] = append(out[m.InvoiceID], m)
	}
	return out, nil
}

// ListOpenInvoices returns posted invoices of the kind that are not fully paid, oldest first.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, kind domain.InvoiceKind, asOf time.Time) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE kind = $1
			AND status = 'POSTED'
			AND gl_journal_id IS NOT NULL
			AND payment_status <> 'PAID'
			AND invoice_date <= $2
		ORDER BY invoice_date, number`
	rows, err := r.db().Query(ctx, query, string(kind), domain.DateOnly(asOf))
	if err != nil {
		return nil, fmt.Errorf("querying open %s invoices: %w", kind, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, fmt.Errorf("scanning open %s invoices: %w", kind, err)
	}
	if len(ms) == 0 {
		return []domain.Invoice{}, nil
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.InvoiceID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainInvoice(m, lines[m.InvoiceID])
	}
	return out, nil
}

// FindSettlements sums allocations of posted payments per invoice.
func (r *PgxInvoiceRepository) FindSettlements(ctx context.Context, invoiceIDs []string) (map[string]domain.Settlement, error) {
	if len(invoiceIDs) == 0 {
		return map[string]domain.Settlement{}, nil
	}
	query := `
		SELECT a.invoice_id,
			COALESCE(SUM(a.settled_amount), 0) AS settled,
			COALESCE(SUM(a.carrying_amount), 0) AS carrying
		FROM payment_allocations a
		JOIN payments p ON p.payment_id = a.payment_id
		WHERE p.gl_journal_id IS NOT NULL AND a.invoice_id = ANY($1)
		GROUP BY a.invoice_id`
	rows, err := r.db().Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("querying settlements: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Settlement])
	if err != nil {
		return nil, fmt.Errorf("scanning settlements: %w", err)
	}
	return mapping.ToDomainSettlements(ms), nil
}

// MarkInvoicePosted freezes totals and line amounts and links the journal entry.
func (r *PgxInvoiceRepository) MarkInvoicePosted(ctx context.Context, invoice domain.Invoice, actor string) error {
	m := mapping.ToModelInvoice(invoice)
	at := time.Now().UTC()
	if m.PostedAt != nil {
		at = *m.PostedAt
	}
	tag, err := r.db().Exec(ctx, `
		UPDATE invoices
		SET status = $2, payment_status = $3, subtotal = $4, tax_total = $5, total = $6,
			exchange_rate = $7, base_total = $8, gl_journal_id = $9, posted_at = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1 AND gl_journal_id IS NULL`,
		m.InvoiceID, m.Status, m.PaymentStatus, m.Subtotal, m.TaxTotal, m.Total,
		m.ExchangeRate, m.BaseTotal, m.GLJournalID, m.PostedAt, at, actor)
	if err != nil {
		return fmt.Errorf("marking invoice %s posted: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.findInvoice(ctx, m.InvoiceID, ""); err != nil {
			return err
		}
		return fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyPosted, m.Number)
	}

	batch := &pgx.Batch{}
	for _, line := range invoice.Lines {
		batch.Queue(`UPDATE invoice_lines SET line_subtotal = $2, line_tax = $3 WHERE line_id = $1`,
			line.LineID, line.LineSubtotal, line.LineTax)
	}
	br := r.db().SendBatch(ctx, batch)
	for range invoice.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("freezing lines of invoice %s: %w", m.InvoiceID, err)
		}
	}
	return br.Close()
}

// ClearInvoicePosting returns a reversed invoice to draft. The frozen rate is kept for audit.
func (r *PgxInvoiceRepository) ClearInvoicePosting(ctx context.Context, invoiceID, actor string, at time.Time) error {
	return r.update(ctx, invoiceID, `
		UPDATE invoices
		SET gl_journal_id = NULL, posted_at = NULL, base_total = $2, status = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1`,
		invoiceID, decimal.Zero, string(domain.InvoiceDraft), at, actor)
}

// UpdateInvoicePaymentStatus stores a recomputed payment status.
func (r *PgxInvoiceRepository) UpdateInvoicePaymentStatus(ctx context.Context, invoiceID string, status domain.PaymentStatus, paidAt *time.Time, actor string, at time.Time) error {
	return r.update(ctx, invoiceID, `
		UPDATE invoices
		SET payment_status = $2, paid_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1`,
		invoiceID, string(status), paidAt, at, actor)
}

func (r *PgxInvoiceRepository) update(ctx context.Context, invoiceID, query string, args ...any) error {
	tag, err := r.db().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}
