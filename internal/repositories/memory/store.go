// Package memory is an in-process implementation of the repository ports. Units of work run
// against a private copy of the state that replaces the committed state only when the work
// succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
)

type state struct {
	accounts map[string]domain.Account
	journals map[string]domain.JournalEntry
	invoices map[string]domain.Invoice
	payments map[string]domain.Payment
	rates    []domain.ExchangeRate
	periods  map[string]domain.FiscalPeriod
}

func newState() *state {
	return &state{
		accounts: map[string]domain.Account{},
		journals: map[string]domain.JournalEntry{},
		invoices: map[string]domain.Invoice{},
		payments: map[string]domain.Payment{},
		periods:  map[string]domain.FiscalPeriod{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.journals {
		c.journals[k] = cloneEntry(v)
	}
	for k, v := range s.invoices {
		c.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	c.rates = append([]domain.ExchangeRate(nil), s.rates...)
	for k, v := range s.periods {
		c.periods[k] = v
	}
	return c
}

// Store holds the committed state.
type Store struct {
	txMu      sync.Mutex   // serializes units of work
	stateMu   sync.RWMutex // guards committed
	committed *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{committed: newState()}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	r := s.repo()
	return portsrepo.RepositoryProvider{
		AccountRepo:      r,
		JournalRepo:      r,
		InvoiceRepo:      r,
		PaymentRepo:      r,
		ExchangeRateRepo: r,
		PeriodRepo:       r,
		ReportingRepo:    r,
		TxManager:        s,
	}
}

// WithinTx runs fn against a copy of the state and commits the copy when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.stateMu.RLock()
	work := s.committed.clone()
	s.stateMu.RUnlock()

	r := &repo{store: s, tx: work}
	if err := fn(ctx, portsrepo.TxRepositories{Journals: r, Invoices: r, Payments: r}); err != nil {
		return err
	}

	s.stateMu.Lock()
	s.committed = work
	s.stateMu.Unlock()
	return nil
}

var _ portsrepo.TransactionManager = (*Store)(nil)

func (s *Store) repo() *repo {
	return &repo{store: s}
}

// repo reads and writes either the committed state or, inside a unit of work, its private copy.
type repo struct {
	store *Store
	tx    *state
}

func (r *repo) read(fn func(st *state)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	r.store.stateMu.RLock()
	defer r.store.stateMu.RUnlock()
	fn(r.store.committed)
}

func (r *repo) write(fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.stateMu.Lock()
	defer r.store.stateMu.Unlock()
	return fn(r.store.committed)
}

var (
	_ portsrepo.AccountRepositoryFacade = (*repo)(nil)
	_ portsrepo.JournalRepositoryFacade = (*repo)(nil)
	_ portsrepo.InvoiceRepositoryFacade = (*repo)(nil)
	_ portsrepo.PaymentRepositoryFacade = (*repo)(nil)
	_ portsrepo.ExchangeRateReader      = (*repo)(nil)
	_ portsrepo.PeriodReader            = (*repo)(nil)
	_ portsrepo.ReportingRepository     = (*repo)(nil)
)

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalLine(nil), e.Lines...)
	return e
}

func cloneInvoice(i domain.Invoice) domain.Invoice {
	i.Lines = append([]domain.InvoiceLine(nil), i.Lines...)
	return i
}

func clonePayment(p domain.Payment) domain.Payment {
	p.Allocations = append([]domain.PaymentAllocation(nil), p.Allocations...)
	return p
}
