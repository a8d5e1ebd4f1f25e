package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

// lostRaceTx runs units of work against a stale store whose journal refuses every save the way
// the source-document unique index does when another worker committed first.
type lostRaceTx struct {
	stale *memory.Store
}

func (m lostRaceTx) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	return m.stale.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		tx.Journals = claimedJournals{JournalRepositoryFacade: tx.Journals}
		return fn(ctx, tx)
	})
}

type claimedJournals struct {
	portsrepo.JournalRepositoryFacade
}

func (claimedJournals) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	return fmt.Errorf("%w: source document of entry %s already has an entry", apperrors.ErrAlreadyPosted, entry.EntryID)
}

type PostingRaceSuite struct {
	ledgerSuite
}

func TestPostingRaceSuite(t *testing.T) {
	suite.Run(t, new(PostingRaceSuite))
}

type postOutcome struct {
	entryID string
	created bool
	err     error
}

func runConcurrently(n int, fn func() postOutcome) []postOutcome {
	out := make([]postOutcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = fn()
		}(i)
	}
	wg.Wait()
	return out
}

func (s *PostingRaceSuite) assertSingleWinner(outcomes []postOutcome) {
	created := 0
	ids := map[string]struct{}{}
	for _, o := range outcomes {
		s.Require().NoError(o.err)
		if o.created {
			created++
		}
		ids[o.entryID] = struct{}{}
	}
	s.Equal(1, created, "exactly one call creates the entry")
	s.Len(ids, 1, "every call returns the same entry")
}

func (s *PostingRaceSuite) TestConcurrentInvoicePosting() {
	inv := s.addARInvoice("INV-RACE", "AED", "2024-05-02", line("1", "100", "5", "VAT5"))

	outcomes := runConcurrently(8, func() postOutcome {
		entry, created, err := s.invoices.PostInvoiceToGL(s.ctx, inv.InvoiceID, testActor)
		if err != nil {
			return postOutcome{err: err}
		}
		return postOutcome{entryID: entry.EntryID, created: created}
	})

	s.assertSingleWinner(outcomes)
	s.Len(s.store.Entries(), 1)
}

func (s *PostingRaceSuite) TestConcurrentPaymentPosting() {
	inv := s.addARInvoice("INV-RACE", "EUR", "2024-03-15", line("1", "1000", "0", ""))
	s.postInvoice(inv)
	p := s.addPayment("RCPT-RACE", domain.Receipt, "AED", "2024-04-10", "4100", alloc(inv.InvoiceID, "4100"))

	outcomes := runConcurrently(8, func() postOutcome {
		res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)
		if err != nil {
			return postOutcome{err: err}
		}
		return postOutcome{entryID: res.Entry.EntryID, created: res.Created}
	})

	s.assertSingleWinner(outcomes)
	s.Len(s.store.Entries(), 2)
	s.Equal(domain.Paid, s.invoice(inv.InvoiceID).PaymentStatus)
}

func (s *PostingRaceSuite) TestInvoiceLostRaceReturnsWinningEntry() {
	inv := s.addARInvoice("INV-LATE", "AED", "2024-05-02", line("1", "100", "0", ""))
	stale := memory.NewStore()
	stale.AddInvoice(inv)
	winner := s.postInvoice(inv)

	repos := s.repos
	repos.TxManager = lostRaceTx{stale: stale}
	poster := services.NewInvoicePostingService(repos, s.gate, s.fx, s.chart)

	entry, created, err := poster.PostInvoiceToGL(s.ctx, inv.InvoiceID, testActor)

	s.Require().NoError(err)
	s.False(created)
	s.Equal(winner.EntryID, entry.EntryID)
	s.Len(s.store.Entries(), 1)
}

func (s *PostingRaceSuite) TestPaymentLostRaceReturnsWinningEntry() {
	inv := s.addARInvoice("INV-LATE", "AED", "2024-05-02", line("1", "100", "0", ""))
	s.postInvoice(inv)
	p := s.addPayment("RCPT-LATE", domain.Receipt, "AED", "2024-05-03", "100", alloc(inv.InvoiceID, "100"))
	stale := memory.NewStore()
	stale.AddInvoice(*s.invoice(inv.InvoiceID))
	stale.AddPayment(p)

	winner, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)
	s.Require().NoError(err)

	repos := s.repos
	repos.TxManager = lostRaceTx{stale: stale}
	poster := services.NewPaymentPostingService(repos, s.gate, s.fx, s.chart)

	res, err := poster.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	s.False(res.Created)
	s.Empty(res.InvoicesClosed)
	s.Equal(winner.Entry.EntryID, res.Entry.EntryID)
	s.Len(s.store.Entries(), 2)
}

func (s *PostingRaceSuite) TestLostRaceWithoutWinnerIsConflict() {
	inv := s.addARInvoice("INV-GHOST", "AED", "2024-05-02", line("1", "100", "0", ""))
	stale := memory.NewStore()
	stale.AddInvoice(inv)

	repos := s.repos
	repos.TxManager = lostRaceTx{stale: stale}
	poster := services.NewInvoicePostingService(repos, s.gate, s.fx, s.chart)

	_, _, err := poster.PostInvoiceToGL(s.ctx, inv.InvoiceID, testActor)

	s.ErrorIs(err, apperrors.ErrConflict)
}
