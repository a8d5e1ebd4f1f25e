package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
	"github.com/SscSPs/settlement_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testActor = "clerk-1"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Mock PostingApprover ---
type MockApprover struct {
	mock.Mock
}

var _ portssvc.PostingApprover = (*MockApprover)(nil)

func (m *MockApprover) MayPost(ctx context.Context, req domain.ApprovalRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

// ledgerSuite wires the real services over the in-memory store with an AED base currency,
// an open 2024 period and a closed 2023 period.
type ledgerSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	repos    portsrepo.RepositoryProvider
	chart    *services.ChartOfAccounts
	fx       portssvc.ExchangeRateSvc
	gate     portssvc.PeriodGateSvc
	journals portssvc.JournalSvcFacade
	invoices portssvc.InvoicePosterSvc
	payments portssvc.PaymentPosterSvc
	reports  portssvc.ReportingService
	now      time.Time
	accounts map[string]domain.Account // by code
	closed   domain.FiscalPeriod
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.repos = memory.NewRepositoryProvider(s.store)
	s.now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	s.accounts = map[string]domain.Account{}

	for _, a := range []struct {
		code, name string
		typ        domain.AccountType
	}{
		{"1000", "Bank", domain.Asset},
		{"1100", "Accounts Receivable", domain.Asset},
		{"1200", "Input VAT", domain.Asset},
		{"1300", "Supplier Prepayments", domain.Asset},
		{"2100", "Accounts Payable", domain.Liability},
		{"2200", "Output Tax", domain.Liability},
		{"2201", "Output VAT 5%", domain.Liability},
		{"2300", "Customer Prepayments", domain.Liability},
		{"3000", "Owner Equity", domain.Equity},
		{"4000", "Sales", domain.Income},
		{"4900", "Realized FX Gain", domain.Income},
		{"6000", "Purchases", domain.Expense},
		{"6900", "Realized FX Loss", domain.Expense},
	} {
		s.accounts[a.code] = s.store.AddAccount(domain.Account{Code: a.code, Name: a.name, AccountType: a.typ, IsActive: true})
	}

	s.store.AddPeriod(domain.FiscalPeriod{Name: "FY2024", StartDate: day("2024-01-01"), EndDate: day("2024-12-31")})
	s.closed = s.store.AddPeriod(domain.FiscalPeriod{Name: "FY2023", StartDate: day("2023-01-01"), EndDate: day("2023-12-31"), Status: domain.PeriodClosed})

	s.store.AddRate(domain.ExchangeRate{FromCurrency: "EUR", ToCurrency: "AED", Rate: d("4.0"), DateEffective: day("2024-03-01")})
	s.store.AddRate(domain.ExchangeRate{FromCurrency: "EUR", ToCurrency: "AED", Rate: d("4.1"), DateEffective: day("2024-04-01")})

	mapping := config.RoleMapping{
		Roles: map[domain.AccountRole]string{
			domain.RoleBank:                "1000",
			domain.RoleARControl:           "1100",
			domain.RoleTaxReceivable:       "1200",
			domain.RoleUnallocatedPayments: "1300",
			domain.RoleAPControl:           "2100",
			domain.RoleTaxPayable:          "2200",
			domain.RoleUnallocatedReceipts: "2300",
			domain.RoleRevenue:             "4000",
			domain.RoleFXGain:              "4900",
			domain.RoleExpense:             "6000",
			domain.RoleFXLoss:              "6900",
		},
		TaxAccounts: map[string]string{"VAT5": "2201"},
	}

	var err error
	s.chart, err = services.NewChartOfAccounts(s.ctx, s.repos.AccountRepo, mapping)
	require.NoError(s.T(), err)
	s.fx, err = services.NewExchangeRateService(s.repos.ExchangeRateRepo, "AED")
	require.NoError(s.T(), err)

	clock := func() time.Time { return s.now }
	s.gate = services.NewPeriodService(s.repos.PeriodRepo)
	s.journals = services.NewJournalService(s.repos.AccountRepo, s.repos.JournalRepo, s.repos.TxManager, s.gate, services.WithJournalClock(clock))
	s.invoices = services.NewInvoicePostingService(s.repos, s.gate, s.fx, s.chart, services.WithInvoiceClock(clock))
	s.payments = services.NewPaymentPostingService(s.repos, s.gate, s.fx, s.chart, services.WithPaymentClock(clock))
	s.reports = services.NewReportingService(s.repos, s.fx)
}

func (s *ledgerSuite) account(code string) string {
	return s.accounts[code].AccountID
}

func (s *ledgerSuite) addARInvoice(number, currency, date string, lines ...domain.InvoiceLine) domain.Invoice {
	return s.store.AddInvoice(domain.Invoice{
		Number:       number,
		Kind:         domain.InvoiceAR,
		PartyID:      "cust-1",
		CurrencyCode: currency,
		InvoiceDate:  day(date),
		DueDate:      day(date).AddDate(0, 0, 30),
		Lines:        lines,
	})
}

func (s *ledgerSuite) addAPInvoice(number, currency, date string, lines ...domain.InvoiceLine) domain.Invoice {
	inv := s.addARInvoice(number, currency, date, lines...)
	inv.Kind = domain.InvoiceAP
	inv.PartyID = "supp-1"
	return s.store.AddInvoice(inv)
}

func line(qty, price, taxRate, taxCode string) domain.InvoiceLine {
	return domain.InvoiceLine{
		Description: "item",
		Quantity:    d(qty),
		UnitPrice:   d(price),
		TaxRate:     d(taxRate),
		TaxCode:     taxCode,
	}
}

func (s *ledgerSuite) addPayment(number string, dir domain.PaymentDirection, currency, date, total string, allocations ...domain.PaymentAllocation) domain.Payment {
	return s.store.AddPayment(domain.Payment{
		Number:       number,
		Direction:    dir,
		PartyID:      "cust-1",
		CurrencyCode: currency,
		PaymentDate:  day(date),
		TotalAmount:  d(total),
		Allocations:  allocations,
	})
}

func alloc(invoiceID, amount string) domain.PaymentAllocation {
	return domain.PaymentAllocation{InvoiceID: invoiceID, Amount: d(amount)}
}

func (s *ledgerSuite) postInvoice(inv domain.Invoice) *domain.JournalEntry {
	entry, created, err := s.invoices.PostInvoiceToGL(s.ctx, inv.InvoiceID, testActor)
	require.NoError(s.T(), err)
	require.True(s.T(), created)
	return entry
}

// lineFor returns the single line of entry booked to the account with code.
func (s *ledgerSuite) lineFor(entry *domain.JournalEntry, code string) domain.JournalLine {
	var found []domain.JournalLine
	for _, l := range entry.Lines {
		if l.AccountCode == code {
			found = append(found, l)
		}
	}
	require.Len(s.T(), found, 1, "lines for account %s", code)
	return found[0]
}

func (s *ledgerSuite) assertDebit(entry *domain.JournalEntry, code, amount string) {
	l := s.lineFor(entry, code)
	s.True(d(amount).Equal(l.Debit), "debit on %s: want %s, got %s", code, amount, l.Debit)
	s.True(l.Credit.IsZero(), "credit on %s should be zero, got %s", code, l.Credit)
}

func (s *ledgerSuite) assertCredit(entry *domain.JournalEntry, code, amount string) {
	l := s.lineFor(entry, code)
	s.True(d(amount).Equal(l.Credit), "credit on %s: want %s, got %s", code, amount, l.Credit)
	s.True(l.Debit.IsZero(), "debit on %s should be zero, got %s", code, l.Debit)
}

func (s *ledgerSuite) assertBalanced(entry *domain.JournalEntry) {
	debits, credits := entry.Totals()
	s.True(debits.Equal(credits), "entry %s: debits %s, credits %s", entry.EntryID, debits, credits)
}

func (s *ledgerSuite) invoice(id string) *domain.Invoice {
	inv, err := s.repos.InvoiceRepo.FindInvoiceByID(s.ctx, id)
	require.NoError(s.T(), err)
	return inv
}
