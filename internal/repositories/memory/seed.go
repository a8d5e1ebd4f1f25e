package memory

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/google/uuid"
)

// Seeding helpers write straight into the committed state. Missing IDs are generated.

func (s *Store) AddAccount(a domain.Account) domain.Account {
	if a.AccountID == "" {
		a.AccountID = uuid.NewString()
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.committed.accounts[a.AccountID] = a
	return a
}

func (s *Store) AddInvoice(inv domain.Invoice) domain.Invoice {
	if inv.InvoiceID == "" {
		inv.InvoiceID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = domain.Unpaid
	}
	for i := range inv.Lines {
		if inv.Lines[i].LineID == "" {
			inv.Lines[i].LineID = uuid.NewString()
		}
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.committed.invoices[inv.InvoiceID] = cloneInvoice(inv)
	return inv
}

func (s *Store) AddPayment(p domain.Payment) domain.Payment {
	if p.PaymentID == "" {
		p.PaymentID = uuid.NewString()
	}
	for i := range p.Allocations {
		if p.Allocations[i].AllocationID == "" {
			p.Allocations[i].AllocationID = uuid.NewString()
		}
		p.Allocations[i].PaymentID = p.PaymentID
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.committed.payments[p.PaymentID] = clonePayment(p)
	return p
}

func (s *Store) AddRate(r domain.ExchangeRate) domain.ExchangeRate {
	if r.ExchangeRateID == "" {
		r.ExchangeRateID = uuid.NewString()
	}
	if r.RateType == "" {
		r.RateType = domain.RateSpot
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.committed.rates = append(s.committed.rates, r)
	return r
}

func (s *Store) AddPeriod(p domain.FiscalPeriod) domain.FiscalPeriod {
	if p.PeriodID == "" {
		p.PeriodID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.PeriodOpen
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.committed.periods[p.PeriodID] = p
	return p
}

// Entries returns every committed journal entry.
func (s *Store) Entries() []domain.JournalEntry {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.JournalEntry, 0, len(s.committed.journals))
	for _, e := range s.committed.journals {
		out = append(out, cloneEntry(e))
	}
	return out
}
