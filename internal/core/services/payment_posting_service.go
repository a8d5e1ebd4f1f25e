package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type paymentPostingService struct {
	BaseService
	paymentRepo portsrepo.PaymentReader
	journalRepo portsrepo.JournalReader
	txManager   portsrepo.TransactionManager
	periodGate  portssvc.PeriodGateSvc
	fx          portssvc.ExchangeRateSvc
	chart       *ChartOfAccounts
	approver    portssvc.PostingApprover
	writer      *entryWriter
}

// PaymentPostingOption is a functional option for configuring the payment poster
type PaymentPostingOption func(*paymentPostingService)

// WithPaymentApprover consults the approval workflow before posting.
func WithPaymentApprover(approver portssvc.PostingApprover) PaymentPostingOption {
	return func(s *paymentPostingService) {
		s.approver = approver
	}
}

// WithPaymentClock overrides the clock used for posted_at and paid_at stamps.
func WithPaymentClock(clock func() time.Time) PaymentPostingOption {
	return func(s *paymentPostingService) {
		s.clock = clock
	}
}

// NewPaymentPostingService creates the payment poster.
func NewPaymentPostingService(
	repos portsrepo.RepositoryProvider,
	periodGate portssvc.PeriodGateSvc,
	fx portssvc.ExchangeRateSvc,
	chart *ChartOfAccounts,
	options ...PaymentPostingOption,
) portssvc.PaymentPosterSvc {
	svc := &paymentPostingService{
		paymentRepo: repos.PaymentRepo,
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

var _ portssvc.PaymentPosterSvc = (*paymentPostingService)(nil)

// PostPaymentToGL posts the payment once, snapshots allocation rates, recognizes realized FX and
// recomputes the payment status of every allocated invoice.
func (s *paymentPostingService) PostPaymentToGL(ctx context.Context, paymentID string, actor string) (*domain.PaymentPostingResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	result := &domain.PaymentPostingResult{InvoicesClosed: []string{}}
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		payment, err := tx.Payments.FindPaymentByIDForUpdate(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("failed to load payment %s: %w", paymentID, err)
		}
		if payment.IsPosted() {
			result.Entry, err = tx.Journals.FindEntryByID(ctx, *payment.GLJournalID)
			if err != nil {
				return fmt.Errorf("failed to load posted entry of payment %s: %w", payment.Number, err)
			}
			return nil
		}

		entry, closed, err := s.post(ctx, tx, payment, actor)
		if err != nil {
			return err
		}
		result.Entry, result.Created, result.InvoicesClosed = entry, true, closed
		return nil
	})

	if errors.Is(err, apperrors.ErrAlreadyPosted) {
		result = &domain.PaymentPostingResult{InvoicesClosed: []string{}}
		result.Entry, err = s.existingEntry(ctx, paymentID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to post payment", slog.String("payment_id", paymentID), slog.String("actor", actor))
		return nil, err
	}

	s.LogInfo(ctx, "Payment posted to general ledger",
		slog.String("payment_id", paymentID),
		slog.String("journal_id", result.Entry.EntryID),
		slog.Bool("created", result.Created),
		slog.Int("invoices_closed", len(result.InvoicesClosed)),
		slog.String("actor", actor))
	return result, nil
}

func (s *paymentPostingService) existingEntry(ctx context.Context, paymentID string) (*domain.JournalEntry, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPosted() {
		return nil, fmt.Errorf("%w: payment %s lost its posting claim", apperrors.ErrConflict, payment.Number)
	}
	return s.journalRepo.FindEntryByID(ctx, *payment.GLJournalID)
}

func (s *paymentPostingService) validate(payment *domain.Payment) error {
	if payment.Direction != domain.Receipt && payment.Direction != domain.Disbursement {
		return fmt.Errorf("%w: payment %s has unknown direction %q", apperrors.ErrValidation, payment.Number, payment.Direction)
	}
	if !payment.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: payment %s total must be positive", apperrors.ErrValidation, payment.Number)
	}
	for _, a := range payment.Allocations {
		if !a.Amount.IsPositive() {
			return fmt.Errorf("%w: allocation to invoice %s must be positive", apperrors.ErrValidation, a.InvoiceID)
		}
	}
	if allocated := payment.AllocatedTotal(); allocated.GreaterThan(payment.TotalAmount) {
		return fmt.Errorf("%w: payment %s allocates %s of %s", apperrors.ErrValidation, payment.Number, allocated, payment.TotalAmount)
	}
	return nil
}

func (s *paymentPostingService) post(ctx context.Context, tx portsrepo.TxRepositories, payment *domain.Payment, actor string) (*domain.JournalEntry, []string, error) {
	if err := s.validate(payment); err != nil {
		return nil, nil, err
	}
	if _, err := s.periodGate.ValidateTransactionDate(ctx, payment.PaymentDate, payment.PeriodID); err != nil {
		return nil, nil, err
	}
	if err := checkApproval(ctx, s.approver, domain.ApprovalRequest{
		DocumentType: domain.DocumentPayment,
		DocumentID:   payment.PaymentID,
		Number:       payment.Number,
		Amount:       payment.TotalAmount,
		CurrencyCode: payment.CurrencyCode,
		Actor:        actor,
	}); err != nil {
		return nil, nil, err
	}

	base := s.fx.GetBaseCurrency(ctx)
	payRate, err := s.fx.GetExchangeRate(ctx, payment.CurrencyCode, base, payment.PaymentDate, domain.RateSpot)
	if err != nil {
		return nil, nil, err
	}

	bank := s.chart.Account(domain.RoleBank)
	if payment.BankAccountCode != "" {
		acc, err := s.chart.AccountByCode(ctx, payment.BankAccountCode)
		if err != nil {
			return nil, nil, fmt.Errorf("payment %s bank account: %w", payment.Number, err)
		}
		bank = *acc
	}

	invoiceIDs := make([]string, 0, len(payment.Allocations))
	for _, a := range payment.Allocations {
		invoiceIDs = append(invoiceIDs, a.InvoiceID)
	}
	invoiceIDs = uniqueStrings(invoiceIDs)
	// Lock in a stable order so concurrent payments touching the same invoices cannot deadlock.
	sort.Strings(invoiceIDs)

	invoices := make(map[string]*domain.Invoice, len(invoiceIDs))
	for _, id := range invoiceIDs {
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load allocated invoice %s: %w", id, err)
		}
		if err := checkAllocatable(payment, inv); err != nil {
			return nil, nil, err
		}
		invoices[id] = inv
	}

	settled, err := tx.Invoices.FindSettlements(ctx, invoiceIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoice settlements: %w", err)
	}

	for i := range payment.Allocations {
		a := &payment.Allocations[i]
		inv := invoices[a.InvoiceID]
		if err := s.settle(ctx, payment, inv, a, payRate, base, settled); err != nil {
			return nil, nil, err
		}
	}

	lines := s.buildLines(payment, invoices, bank, payRate, base)
	now := s.Now()
	entry, err := s.writer.post(ctx, tx, domain.EntryDraft{
		EntryDate:       payment.PaymentDate,
		CurrencyCode:    base,
		Memo:            fmt.Sprintf("%s %s", directionLabel(payment.Direction), payment.Number),
		SourcePaymentID: &payment.PaymentID,
		Lines:           lines,
	}, actor, now)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Payments.SaveAllocationSnapshots(ctx, payment.Allocations); err != nil {
		return nil, nil, fmt.Errorf("failed to save allocation snapshots: %w", err)
	}
	if err := tx.Payments.MarkPaymentPosted(ctx, payment.PaymentID, entry.EntryID, actor, now); err != nil {
		return nil, nil, err
	}

	closed, err := refreshPaymentStatuses(ctx, tx, invoiceIDs, actor, now)
	if err != nil {
		return nil, nil, err
	}
	return entry, closed, nil
}

func checkAllocatable(payment *domain.Payment, inv *domain.Invoice) error {
	switch {
	case inv.Status == domain.InvoiceCancelled:
		return fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrValidation, inv.Number)
	case !inv.IsPosted():
		return fmt.Errorf("%w: invoice %s is not posted", apperrors.ErrValidation, inv.Number)
	case inv.Kind != payment.Direction.InvoiceKind():
		return fmt.Errorf("%w: %s %s cannot settle %s invoice %s", apperrors.ErrValidation, payment.Direction, payment.Number, inv.Kind, inv.Number)
	}
	return nil
}

// settle fills the allocation's snapshots. The allocation that clears an invoice relieves
// whatever base amount is still carried for it, so the control account nets to zero.
func (s *paymentPostingService) settle(
	ctx context.Context,
	payment *domain.Payment,
	inv *domain.Invoice,
	a *domain.PaymentAllocation,
	payRate decimal.Decimal,
	base string,
	settled map[string]domain.Settlement,
) error {
	if a.InvoiceCurrency == "" {
		a.InvoiceCurrency = inv.CurrencyCode
	}
	if !a.HasRateSnapshot() {
		rate, err := s.fx.GetExchangeRate(ctx, inv.CurrencyCode, payment.CurrencyCode, payment.PaymentDate, domain.RateSpot)
		if err != nil {
			return err
		}
		a.ExchangeRate = rate
	}

	prev := settled[inv.InvoiceID]
	outstanding := inv.Total.Sub(prev.Settled)

	amount := accounting.Round(a.Amount.Div(a.ExchangeRate), inv.CurrencyCode)
	if amount.GreaterThan(outstanding) {
		// Chained rounding may overshoot by one minor unit; anything more is an over-allocation.
		if amount.Sub(outstanding).GreaterThan(accounting.MinorUnit(inv.CurrencyCode)) {
			return fmt.Errorf("%w: allocation of %s %s exceeds the %s %s outstanding on invoice %s",
				apperrors.ErrValidation, amount, inv.CurrencyCode, outstanding, inv.CurrencyCode, inv.Number)
		}
		amount = outstanding
	}

	carrying := accounting.Convert(amount, inv.ExchangeRate, base)
	if amount.Equal(outstanding) {
		carrying = inv.BaseTotal.Sub(prev.Carrying)
	}

	a.SettledAmount = amount
	a.BaseAmount = accounting.Convert(a.Amount, payRate, base)
	a.CarryingAmount = carrying
	a.FxDifference = a.BaseAmount.Sub(carrying)

	settled[inv.InvoiceID] = domain.Settlement{
		Settled:  prev.Settled.Add(amount),
		Carrying: prev.Carrying.Add(carrying),
	}
	return nil
}

// buildLines lays out bank, control, unallocated and FX lines in base currency. Realized gains
// and losses are summed per allocation onto separate lines. The residual from chained rounding
// is folded into whichever FX line exists.
func (s *paymentPostingService) buildLines(payment *domain.Payment, invoices map[string]*domain.Invoice, bank domain.Account, payRate decimal.Decimal, base string) []domain.LineDraft {
	receipt := payment.Direction == domain.Receipt
	controlRole, unallocatedRole := domain.RoleAPControl, domain.RoleUnallocatedPayments
	if receipt {
		controlRole, unallocatedRole = domain.RoleARControl, domain.RoleUnallocatedReceipts
	}
	control := s.chart.Account(controlRole)

	bankAmount := accounting.Convert(payment.TotalAmount, payRate, base)
	lines := sideLine(nil, bank.AccountID, bankAmount, receipt, payment.Number)

	collected, gain, loss := decimal.Zero, decimal.Zero, decimal.Zero
	for _, a := range payment.Allocations {
		lines = sideLine(lines, control.AccountID, a.CarryingAmount, !receipt, "Settles invoice "+invoices[a.InvoiceID].Number)
		collected = collected.Add(a.BaseAmount)
		g, l := fxSplit(a.FxDifference, receipt)
		gain, loss = gain.Add(g), loss.Add(l)
	}

	unallocated := decimal.Zero
	if rest := payment.TotalAmount.Sub(payment.AllocatedTotal()); rest.IsPositive() {
		unallocated = accounting.Convert(rest, payRate, base)
		lines = sideLine(lines, s.chart.Account(unallocatedRole).AccountID, unallocated, !receipt, "Unallocated "+payment.Number)
	}

	rounding := bankAmount.Sub(collected).Sub(unallocated)
	if !receipt {
		rounding = rounding.Neg()
	}
	switch {
	case rounding.IsZero():
	case !gain.IsZero():
		gain = gain.Add(rounding)
	case !loss.IsZero():
		loss = loss.Sub(rounding)
	default:
		gain, loss = fxSplit(rounding, true)
	}

	// Gains are always credits and losses always debits, whichever way the cash moved.
	lines = sideLine(lines, s.chart.Account(domain.RoleFXGain).AccountID, gain, false, "Realized FX gain "+payment.Number)
	lines = sideLine(lines, s.chart.Account(domain.RoleFXLoss).AccountID, loss, true, "Realized FX loss "+payment.Number)
	return lines
}

// fxSplit turns an allocation's base difference into a gain or a loss. For receipts more cash
// than carried is a gain; for disbursements it is a loss.
func fxSplit(diff decimal.Decimal, receipt bool) (gain, loss decimal.Decimal) {
	if !receipt {
		diff = diff.Neg()
	}
	if diff.IsPositive() {
		return diff, decimal.Zero
	}
	return decimal.Zero, diff.Neg()
}

func directionLabel(d domain.PaymentDirection) string {
	if d == domain.Disbursement {
		return "Disbursement"
	}
	return "Receipt"
}

// refreshPaymentStatuses recomputes payment status from total minus posted settlements and
// returns the numbers of invoices that became PAID.
func refreshPaymentStatuses(ctx context.Context, tx portsrepo.TxRepositories, invoiceIDs []string, actor string, now time.Time) ([]string, error) {
	settled, err := tx.Invoices.FindSettlements(ctx, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice settlements: %w", err)
	}

	closed := []string{}
	for _, id := range invoiceIDs {
		inv, err := tx.Invoices.FindInvoiceByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reload invoice %s: %w", id, err)
		}

		paid := decimal.Zero
		if st, ok := settled[id]; ok {
			paid = st.Settled
		}
		status := domain.Unpaid
		switch {
		case !inv.Total.Sub(paid).IsPositive():
			status = domain.Paid
		case paid.IsPositive():
			status = domain.PartiallyPaid
		}

		paidAt := inv.PaidAt
		if status == domain.Paid && paidAt == nil {
			paidAt = &now
		}
		if status != domain.Paid {
			paidAt = nil
		}

		if status == inv.PaymentStatus && samePaidAt(paidAt, inv.PaidAt) {
			continue
		}
		if err := tx.Invoices.UpdateInvoicePaymentStatus(ctx, id, status, paidAt, actor, now); err != nil {
			return nil, fmt.Errorf("failed to update payment status of invoice %s: %w", inv.Number, err)
		}
		if status == domain.Paid && inv.PaymentStatus != domain.Paid {
			closed = append(closed, inv.Number)
		}
	}
	return closed, nil
}

func samePaidAt(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
