package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (r *repo) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	var (
		inv domain.Invoice
		ok  bool
	)
	r.read(func(st *state) {
		inv, ok = st.invoices[invoiceID]
		inv = cloneInvoice(inv)
	})
	if !ok {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return &inv, nil
}

func (r *repo) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, invoiceID)
}

func (r *repo) ListOpenInvoices(_ context.Context, kind domain.InvoiceKind, asOf time.Time) ([]domain.Invoice, error) {
	asOf = domain.DateOnly(asOf)
	var out []domain.Invoice
	r.read(func(st *state) {
		for _, inv := range st.invoices {
			if inv.Kind != kind || inv.Status != domain.InvoicePosted || !inv.IsPosted() {
				continue
			}
			if inv.PaymentStatus == domain.Paid || domain.DateOnly(inv.InvoiceDate).After(asOf) {
				continue
			}
			out = append(out, cloneInvoice(inv))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].InvoiceDate.Before(out[j].InvoiceDate)
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (r *repo) FindSettlements(_ context.Context, invoiceIDs []string) (map[string]domain.Settlement, error) {
	wanted := make(map[string]struct{}, len(invoiceIDs))
	for _, id := range invoiceIDs {
		wanted[id] = struct{}{}
	}
	out := map[string]domain.Settlement{}
	r.read(func(st *state) {
		for _, p := range st.payments {
			if !p.IsPosted() {
				continue
			}
			for _, a := range p.Allocations {
				if _, ok := wanted[a.InvoiceID]; !ok {
					continue
				}
				s := out[a.InvoiceID]
				s.Settled = s.Settled.Add(a.SettledAmount)
				s.Carrying = s.Carrying.Add(a.CarryingAmount)
				out[a.InvoiceID] = s
			}
		}
	})
	return out, nil
}

func (r *repo) MarkInvoicePosted(_ context.Context, invoice domain.Invoice, actor string) error {
	return r.write(func(st *state) error {
		stored, ok := st.invoices[invoice.InvoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrNotFound)
		}
		if stored.IsPosted() {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyPosted, stored.Number)
		}
		stored.Lines = append([]domain.InvoiceLine(nil), invoice.Lines...)
		stored.Subtotal, stored.TaxTotal, stored.Total = invoice.Subtotal, invoice.TaxTotal, invoice.Total
		stored.ExchangeRate, stored.BaseTotal = invoice.ExchangeRate, invoice.BaseTotal
		stored.GLJournalID, stored.PostedAt = invoice.GLJournalID, invoice.PostedAt
		stored.Status, stored.PaymentStatus = invoice.Status, invoice.PaymentStatus
		if invoice.PostedAt != nil {
			stored.LastUpdatedAt = *invoice.PostedAt
		}
		stored.LastUpdatedBy = actor
		st.invoices[invoice.InvoiceID] = stored
		return nil
	})
}

func (r *repo) ClearInvoicePosting(_ context.Context, invoiceID, actor string, at time.Time) error {
	return r.write(func(st *state) error {
		inv, ok := st.invoices[invoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		inv.GLJournalID, inv.PostedAt = nil, nil
		inv.BaseTotal = decimal.Zero
		inv.Status = domain.InvoiceDraft
		inv.LastUpdatedAt, inv.LastUpdatedBy = at, actor
		st.invoices[invoiceID] = inv
		return nil
	})
}

func (r *repo) UpdateInvoicePaymentStatus(_ context.Context, invoiceID string, status domain.PaymentStatus, paidAt *time.Time, actor string, at time.Time) error {
	return r.write(func(st *state) error {
		inv, ok := st.invoices[invoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		inv.PaymentStatus, inv.PaidAt = status, paidAt
		inv.LastUpdatedAt, inv.LastUpdatedBy = at, actor
		st.invoices[invoiceID] = inv
		return nil
	})
}

func (r *repo) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	var (
		p  domain.Payment
		ok bool
	)
	r.read(func(st *state) {
		p, ok = st.payments[paymentID]
		p = clonePayment(p)
	})
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (r *repo) FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.FindPaymentByID(ctx, paymentID)
}

func (r *repo) SaveAllocationSnapshots(_ context.Context, allocations []domain.PaymentAllocation) error {
	return r.write(func(st *state) error {
		for _, a := range allocations {
			p, ok := st.payments[a.PaymentID]
			if !ok {
				return fmt.Errorf("payment %s: %w", a.PaymentID, apperrors.ErrNotFound)
			}
			found := false
			for i := range p.Allocations {
				if p.Allocations[i].AllocationID == a.AllocationID {
					p.Allocations[i] = a
					found = true
				}
			}
			if !found {
				return fmt.Errorf("allocation %s: %w", a.AllocationID, apperrors.ErrNotFound)
			}
			st.payments[a.PaymentID] = p
		}
		return nil
	})
}

func (r *repo) MarkPaymentPosted(_ context.Context, paymentID, journalID, actor string, at time.Time) error {
	return r.write(func(st *state) error {
		p, ok := st.payments[paymentID]
		if !ok {
			return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
		}
		if p.IsPosted() {
			return fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyPosted, p.Number)
		}
		p.GLJournalID, p.PostedAt = &journalID, &at
		p.LastUpdatedAt, p.LastUpdatedBy = at, actor
		st.payments[paymentID] = p
		return nil
	})
}

func (r *repo) ClearPaymentPosting(_ context.Context, paymentID, actor string, at time.Time) error {
	return r.write(func(st *state) error {
		p, ok := st.payments[paymentID]
		if !ok {
			return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
		}
		p.GLJournalID, p.PostedAt = nil, nil
		p.LastUpdatedAt, p.LastUpdatedBy = at, actor
		st.payments[paymentID] = p
		return nil
	})
}
