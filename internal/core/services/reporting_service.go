package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/SscSPs/settlement_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo  portsrepo.ReportingRepository
	accountRepo    portsrepo.AccountReader
	invoiceRepo    portsrepo.InvoiceReader
	fx             portssvc.ExchangeRateSvc
	defaultBuckets []int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithDefaultAgingBuckets sets the bucket widths used when a caller supplies none.
func WithDefaultAgingBuckets(widths []int) ReportingServiceOption {
	return func(s *reportingService) {
		if len(widths) > 0 {
			s.defaultBuckets = widths
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, fx portssvc.ExchangeRateSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo:  repos.ReportingRepo,
		accountRepo:    repos.AccountRepo,
		invoiceRepo:    repos.InvoiceRepo,
		fx:             fx,
		defaultBuckets: utils.DefaultAgingBuckets,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// BuildTrialBalance returns one row per account with activity in range, in account-code order.
// Lines pointing at an account that cannot be loaded yield an unavailable row.
func (s *reportingService) BuildTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date_to %s is before date_from %s", apperrors.ErrValidation,
			to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to get account activity")
		return nil, fmt.Errorf("failed to get trial balance data: %w", err)
	}

	ids := make([]string, 0, len(activity))
	for _, a := range activity {
		ids = append(ids, a.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogWarn(ctx, "Accounts unavailable for trial balance", slog.String("error", err.Error()))
		accounts = map[string]domain.Account{}
	}

	base := s.fx.GetBaseCurrency(ctx)
	tb := &domain.TrialBalance{
		DateFrom:     from,
		DateTo:       to,
		CurrencyCode: base,
		Rows:         make([]domain.TrialBalanceRow, 0, len(activity)),
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	for _, a := range activity {
		if a.Debit.IsZero() && a.Credit.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID: a.AccountID,
			Debit:     a.Debit,
			Credit:    a.Credit,
			Net:       a.Debit.Sub(a.Credit),
			Status:    domain.RowUnavailable,
		}
		if acc, ok := accounts[a.AccountID]; ok {
			row.AccountCode = acc.Code
			row.AccountName = acc.Name
			row.AccountType = acc.AccountType
			if net, err := accounting.NaturalBalance(a.Debit, a.Credit, acc.AccountType); err == nil {
				row.Net = net
				row.Status = domain.RowOK
			}
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(a.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(a.Credit)
	}

	sort.SliceStable(tb.Rows, func(i, j int) bool {
		ri, rj := tb.Rows[i], tb.Rows[j]
		if (ri.Status == domain.RowOK) != (rj.Status == domain.RowOK) {
			return ri.Status == domain.RowOK
		}
		if ri.AccountCode != rj.AccountCode {
			return ri.AccountCode < rj.AccountCode
		}
		return ri.AccountID < rj.AccountID
	})

	s.LogDebug(ctx, "Trial balance built", slog.Int("rows", len(tb.Rows)))
	return tb, nil
}

func (s *reportingService) BuildARAging(ctx context.Context, asOf time.Time, bucketWidths []int, reportingCurrency string) (*domain.AgingReport, error) {
	return s.buildAging(ctx, domain.InvoiceAR, asOf, bucketWidths, reportingCurrency)
}

func (s *reportingService) BuildAPAging(ctx context.Context, asOf time.Time, bucketWidths []int, reportingCurrency string) (*domain.AgingReport, error) {
	return s.buildAging(ctx, domain.InvoiceAP, asOf, bucketWidths, reportingCurrency)
}

func (s *reportingService) buildAging(ctx context.Context, kind domain.InvoiceKind, asOf time.Time, widths []int, reportingCurrency string) (*domain.AgingReport, error) {
	if len(widths) == 0 {
		widths = s.defaultBuckets
	}
	for _, w := range widths {
		if w <= 0 {
			return nil, fmt.Errorf("%w: bucket widths must be positive", apperrors.ErrValidation)
		}
	}
	asOf = domain.DateOnly(asOf)
	base := s.fx.GetBaseCurrency(ctx)
	reportingCurrency = strings.ToUpper(strings.TrimSpace(reportingCurrency))
	if reportingCurrency == "" {
		reportingCurrency = base
	}

	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, kind, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open invoices", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.InvoiceID)
	}
	settled, err := s.invoiceRepo.FindSettlements(ctx, ids)
	settlementsOK := err == nil
	if err != nil {
		s.LogWarn(ctx, "Settlements unavailable for aging", slog.String("error", err.Error()))
	}

	labels := AgingBucketLabels(widths)
	conv := &agingConverter{svc: s, ctx: ctx, base: base, reporting: reportingCurrency, asOf: asOf}

	report := &domain.AgingReport{
		Kind:              kind,
		AsOf:              asOf,
		ReportingCurrency: reportingCurrency,
		Rows:              make([]domain.AgingRow, 0, len(invoices)),
		GrandTotal:        decimal.Zero,
	}
	for _, inv := range invoices {
		paid := decimal.Zero
		status := domain.RowOK
		if !settlementsOK {
			status = domain.RowUnavailable
		} else if st, ok := settled[inv.InvoiceID]; ok {
			paid = st.Settled
		}
		days := int(asOf.Sub(domain.DateOnly(inv.DueDate)).Hours() / 24)
		balance := inv.Total.Sub(paid)

		row := domain.AgingRow{
			InvoiceID:         inv.InvoiceID,
			InvoiceNumber:     inv.Number,
			PartyID:           inv.PartyID,
			InvoiceDate:       domain.DateOnly(inv.InvoiceDate),
			DueDate:           domain.DateOnly(inv.DueDate),
			DaysOverdue:       days,
			Bucket:            bucketFor(days, widths, labels),
			CurrencyCode:      inv.CurrencyCode,
			Total:             inv.Total,
			PaidAmount:        paid,
			Balance:           balance,
			ReportingCurrency: reportingCurrency,
			Status:            status,
		}
		if status == domain.RowOK {
			row.ReportingBalance = conv.convert(inv, balance)
			if row.ReportingBalance == nil {
				row.Status = domain.RowUnavailable
			}
		}
		report.Rows = append(report.Rows, row)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].InvoiceDate.Before(report.Rows[j].InvoiceDate)
	})

	summaries := make(map[string]*domain.AgingBucketSummary, len(labels))
	report.Buckets = make([]domain.AgingBucketSummary, len(labels))
	for i, l := range labels {
		report.Buckets[i] = domain.AgingBucketSummary{Label: l, Amount: decimal.Zero}
		summaries[l] = &report.Buckets[i]
	}
	for _, row := range report.Rows {
		sum := summaries[row.Bucket]
		sum.Count++
		if row.ReportingBalance == nil {
			report.UnavailableCount++
			continue
		}
		sum.Amount = sum.Amount.Add(*row.ReportingBalance)
		report.GrandTotal = report.GrandTotal.Add(*row.ReportingBalance)
	}

	s.LogDebug(ctx, "Aging report built",
		slog.String("kind", string(kind)),
		slog.Int("rows", len(report.Rows)),
		slog.Int("unavailable", report.UnavailableCount))
	return report, nil
}

// agingConverter turns invoice balances into the reporting currency. Invoices convert to base at
// their own posting-time rate; base converts to any other reporting currency at as_of.
type agingConverter struct {
	svc       *reportingService
	ctx       context.Context
	base      string
	reporting string
	asOf      time.Time

	resolved bool
	rate     *decimal.Decimal
}

func (c *agingConverter) convert(inv domain.Invoice, balance decimal.Decimal) *decimal.Decimal {
	if inv.CurrencyCode == c.reporting {
		return &balance
	}

	inBase := balance
	if inv.CurrencyCode != c.base {
		if !inv.ExchangeRate.IsPositive() {
			return nil
		}
		inBase = accounting.Convert(balance, inv.ExchangeRate, c.base)
	}
	if c.reporting == c.base {
		return &inBase
	}

	if !c.resolved {
		c.resolved = true
		rate, err := c.svc.fx.GetExchangeRate(c.ctx, c.base, c.reporting, c.asOf, domain.RateSpot)
		if err != nil {
			c.svc.LogWarn(c.ctx, "Reporting currency rate unavailable",
				slog.String("from", c.base), slog.String("to", c.reporting), slog.String("error", err.Error()))
		} else {
			c.rate = &rate
		}
	}
	if c.rate == nil {
		return nil
	}
	converted := accounting.Convert(inBase, *c.rate, c.reporting)
	return &converted
}

// AgingBucketLabels names the buckets for the given widths: "Current", one range label per
// width, then the open-ended tail. 30/30/30 gives Current, 1-30, 31-60, 61-90, >90.
func AgingBucketLabels(widths []int) []string {
	labels := make([]string, 0, len(widths)+2)
	labels = append(labels, domain.BucketCurrent)
	lo := 1
	for _, w := range widths {
		hi := lo + w - 1
		labels = append(labels, strconv.Itoa(lo)+"-"+strconv.Itoa(hi))
		lo = hi + 1
	}
	return append(labels, ">"+strconv.Itoa(lo-1))
}

func bucketFor(daysOverdue int, widths []int, labels []string) string {
	if daysOverdue <= 0 {
		return labels[0]
	}
	boundary := 0
	for i, w := range widths {
		boundary += w
		if daysOverdue <= boundary {
			return labels[i+1]
		}
	}
	return labels[len(labels)-1]
}
