package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type invoicePostingService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceReader
	journalRepo portsrepo.JournalReader
	txManager   portsrepo.TransactionManager
	periodGate  portssvc.PeriodGateSvc
	fx          portssvc.ExchangeRateSvc
	chart       *ChartOfAccounts
	approver    portssvc.PostingApprover
	writer      *entryWriter
}

// InvoicePostingOption is a functional option for configuring the invoice poster
type InvoicePostingOption func(*invoicePostingService)

// WithInvoiceApprover consults the approval workflow before posting.
func WithInvoiceApprover(approver portssvc.PostingApprover) InvoicePostingOption {
	return func(s *invoicePostingService) {
		s.approver = approver
	}
}

// WithInvoiceClock overrides the clock used for posted_at stamps.
func WithInvoiceClock(clock func() time.Time) InvoicePostingOption {
	return func(s *invoicePostingService) {
		s.clock = clock
	}
}

// NewInvoicePostingService creates the invoice poster.
func NewInvoicePostingService(
	repos portsrepo.RepositoryProvider,
	periodGate portssvc.PeriodGateSvc,
	fx portssvc.ExchangeRateSvc,
	chart *ChartOfAccounts,
	options ...InvoicePostingOption,
) portssvc.InvoicePosterSvc {
	svc := &invoicePostingService{
		invoiceRepo: repos.InvoiceRepo,
		journalRepo: repos.JournalRepo,
		txManager:   repos.TxManager,
		periodGate:  periodGate,
		fx:          fx,
		chart:       chart,
		writer:      newEntryWriter(repos.AccountRepo),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoicePosterSvc = (*invoicePostingService)(nil)

// PostInvoiceToGL posts the invoice once. Calling it again returns the linked entry with
// created = false.
func (s *invoicePostingService) PostInvoiceToGL(ctx context.Context, invoiceID string, actor string) (*domain.JournalEntry, bool, error) {
	if err := requireActor(actor); err != nil {
		return nil, false, err
	}

	var (
		entry   *domain.JournalEntry
		created bool
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
		}
		if inv.IsPosted() {
			entry, err = tx.Journals.FindEntryByID(ctx, *inv.GLJournalID)
			if err != nil {
				return fmt.Errorf("failed to load posted entry of invoice %s: %w", inv.Number, err)
			}
			return nil
		}

		entry, err = s.post(ctx, tx, inv, actor)
		if err != nil {
			return err
		}
		created = true
		return nil
	})

	if errors.Is(err, apperrors.ErrAlreadyPosted) {
		// Another unit of work claimed the invoice between our read and our write.
		entry, err = s.existingEntry(ctx, invoiceID)
		created = false
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to post invoice", slog.String("invoice_id", invoiceID), slog.String("actor", actor))
		return nil, false, err
	}

	s.LogInfo(ctx, "Invoice posted to general ledger",
		slog.String("invoice_id", invoiceID),
		slog.String("journal_id", entry.EntryID),
		slog.Bool("created", created),
		slog.String("actor", actor))
	return entry, created, nil
}

func (s *invoicePostingService) existingEntry(ctx context.Context, invoiceID string) (*domain.JournalEntry, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.IsPosted() {
		return nil, fmt.Errorf("%w: invoice %s lost its posting claim", apperrors.ErrConflict, inv.Number)
	}
	return s.journalRepo.FindEntryByID(ctx, *inv.GLJournalID)
}

func (s *invoicePostingService) post(ctx context.Context, tx portsrepo.TxRepositories, inv *domain.Invoice, actor string) (*domain.JournalEntry, error) {
	if inv.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrValidation, inv.Number)
	}
	if inv.Kind != domain.InvoiceAR && inv.Kind != domain.InvoiceAP {
		return nil, fmt.Errorf("%w: invoice %s has unknown kind %q", apperrors.ErrValidation, inv.Number, inv.Kind)
	}
	if _, err := s.periodGate.ValidateTransactionDate(ctx, inv.InvoiceDate, inv.PeriodID); err != nil {
		return nil, err
	}

	ComputeInvoiceTotals(inv)

	if err := checkApproval(ctx, s.approver, domain.ApprovalRequest{
		DocumentType: domain.DocumentInvoice,
		DocumentID:   inv.InvoiceID,
		Number:       inv.Number,
		Amount:       inv.Total,
		CurrencyCode: inv.CurrencyCode,
		Actor:        actor,
	}); err != nil {
		return nil, err
	}

	base := s.fx.GetBaseCurrency(ctx)
	rate := inv.ExchangeRate
	if !rate.IsPositive() {
		var err error
		rate, err = s.fx.GetExchangeRate(ctx, inv.CurrencyCode, base, inv.InvoiceDate, domain.RateSpot)
		if err != nil {
			return nil, err
		}
	}

	lines, control, err := s.buildLines(ctx, inv, rate, base)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entry, err := s.writer.post(ctx, tx, domain.EntryDraft{
		EntryDate:       inv.InvoiceDate,
		CurrencyCode:    base,
		Memo:            fmt.Sprintf("%s invoice %s", inv.Kind, inv.Number),
		SourceInvoiceID: &inv.InvoiceID,
		Lines:           lines,
	}, actor, now)
	if err != nil {
		return nil, err
	}

	inv.ExchangeRate = rate
	inv.BaseTotal = control
	inv.GLJournalID = &entry.EntryID
	inv.PostedAt = &now
	inv.Status = domain.InvoicePosted
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = domain.Unpaid
	}
	if err := tx.Invoices.MarkInvoicePosted(ctx, *inv, actor); err != nil {
		return nil, err
	}
	return entry, nil
}

// buildLines converts the invoice into base-currency lines. Revenue/expense and tax amounts are
// grouped per account and converted per group; the control line takes their sum so the entry
// balances by construction.
func (s *invoicePostingService) buildLines(ctx context.Context, inv *domain.Invoice, rate decimal.Decimal, base string) ([]domain.LineDraft, decimal.Decimal, error) {
	ar := inv.Kind == domain.InvoiceAR
	lineRole, taxRole, controlRole := domain.RoleExpense, domain.RoleTaxReceivable, domain.RoleAPControl
	if ar {
		lineRole, taxRole, controlRole = domain.RoleRevenue, domain.RoleTaxPayable, domain.RoleARControl
	}

	type group struct {
		account domain.Account
		amount  decimal.Decimal
	}
	var order []string
	groups := make(map[string]*group)
	add := func(acc domain.Account, amount decimal.Decimal) {
		g, ok := groups[acc.AccountID]
		if !ok {
			g = &group{account: acc, amount: decimal.Zero}
			groups[acc.AccountID] = g
			order = append(order, acc.AccountID)
		}
		g.amount = g.amount.Add(amount)
	}

	for _, l := range inv.Lines {
		acc := s.chart.Account(lineRole)
		if l.AccountCode != "" {
			explicit, err := s.chart.AccountByCode(ctx, l.AccountCode)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("invoice %s line %q: %w", inv.Number, l.Description, err)
			}
			acc = *explicit
		}
		add(acc, l.LineSubtotal)
		if !l.LineTax.IsZero() {
			add(s.chart.TaxAccount(l.TaxCode, taxRole), l.LineTax)
		}
	}

	memo := "Invoice " + inv.Number
	var lines []domain.LineDraft
	control := decimal.Zero
	for _, id := range order {
		g := groups[id]
		amount := accounting.Convert(g.amount, rate, base)
		control = control.Add(amount)
		// AR credits revenue and tax, AP debits expense and tax.
		lines = sideLine(lines, g.account.AccountID, amount, !ar, memo)
	}
	if len(lines) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: invoice %s has no postable amount", apperrors.ErrValidation, inv.Number)
	}
	lines = append(sideLine(nil, s.chart.Account(controlRole).AccountID, control, ar, memo), lines...)
	return lines, control, nil
}

// ComputeInvoiceTotals recomputes line and document totals with per-line rounding.
func ComputeInvoiceTotals(inv *domain.Invoice) {
	subtotal, tax := decimal.Zero, decimal.Zero
	for i := range inv.Lines {
		l := &inv.Lines[i]
		l.LineSubtotal, l.LineTax = accounting.LineAmounts(l.Quantity, l.UnitPrice, l.TaxRate, inv.CurrencyCode)
		subtotal = subtotal.Add(l.LineSubtotal)
		tax = tax.Add(l.LineTax)
	}
	inv.Subtotal = subtotal
	inv.TaxTotal = tax
	inv.Total = subtotal.Add(tax)
}

func checkApproval(ctx context.Context, approver portssvc.PostingApprover, req domain.ApprovalRequest) error {
	if approver == nil {
		return nil
	}
	ok, err := approver.MayPost(ctx, req)
	if err != nil {
		return fmt.Errorf("approval check for %s %s failed: %w", req.DocumentType, req.Number, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotApproved, req.DocumentType, req.Number)
	}
	return nil
}
