package services_test

import (
	"testing"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentPostingSuite struct {
	ledgerSuite
	eurInvoice domain.Invoice
}

func TestPaymentPostingSuite(t *testing.T) {
	suite.Run(t, new(PaymentPostingSuite))
}

func (s *PaymentPostingSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.eurInvoice = s.addARInvoice("INV-EUR", "EUR", "2024-03-15", line("1", "1000", "0", ""))
	s.postInvoice(s.eurInvoice)
}

func (s *PaymentPostingSuite) controlActivity(code string) (debit, credit decimal.Decimal) {
	activity, err := s.repos.ReportingRepo.GetAccountActivity(s.ctx, day("2024-01-01"), day("2024-12-31"))
	s.Require().NoError(err)
	for _, a := range activity {
		if a.AccountID == s.account(code) {
			return a.Debit, a.Credit
		}
	}
	return decimal.Zero, decimal.Zero
}

func (s *PaymentPostingSuite) TestReceipt_RealizedGainClosesInvoice() {
	p := s.addPayment("RCPT-1", domain.Receipt, "AED", "2024-04-10", "4100", alloc(s.eurInvoice.InvoiceID, "4100"))

	res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	s.True(res.Created)
	s.Equal([]string{"INV-EUR"}, res.InvoicesClosed)
	entry := res.Entry
	s.Require().Len(entry.Lines, 3)
	s.assertDebit(entry, "1000", "4100.00")
	s.assertCredit(entry, "1100", "4000.00")
	s.assertCredit(entry, "4900", "100.00")
	s.assertBalanced(entry)

	stored, err := s.repos.PaymentRepo.FindPaymentByID(s.ctx, p.PaymentID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.GLJournalID)
	s.Equal(entry.EntryID, *stored.GLJournalID)
	a := stored.Allocations[0]
	s.True(d("4.1").Equal(a.ExchangeRate), "allocation rate %s", a.ExchangeRate)
	s.Equal("EUR", a.InvoiceCurrency)
	s.True(d("1000").Equal(a.SettledAmount))
	s.True(d("4100").Equal(a.BaseAmount))
	s.True(d("4000").Equal(a.CarryingAmount))
	s.True(d("100").Equal(a.FxDifference))

	inv := s.invoice(s.eurInvoice.InvoiceID)
	s.Equal(domain.Paid, inv.PaymentStatus)
	s.Require().NotNil(inv.PaidAt)

	debit, credit := s.controlActivity("1100")
	s.True(debit.Equal(credit), "AR control should net to zero: %s vs %s", debit, credit)
}

func (s *PaymentPostingSuite) TestReceipt_ForeignPaymentCurrency() {
	p := s.addPayment("RCPT-EUR", domain.Receipt, "EUR", "2024-04-10", "1000", alloc(s.eurInvoice.InvoiceID, "1000"))

	res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	s.assertDebit(res.Entry, "1000", "4100.00")
	s.assertCredit(res.Entry, "1100", "4000.00")
	s.assertCredit(res.Entry, "4900", "100.00")
	s.Equal(domain.Paid, s.invoice(s.eurInvoice.InvoiceID).PaymentStatus)
}

func (s *PaymentPostingSuite) TestReceipt_PartialThenFinal() {
	first := s.addPayment("RCPT-A", domain.Receipt, "AED", "2024-04-10", "2050", alloc(s.eurInvoice.InvoiceID, "2050"))
	second := s.addPayment("RCPT-B", domain.Receipt, "AED", "2024-04-20", "2050", alloc(s.eurInvoice.InvoiceID, "2050"))

	res, err := s.payments.PostPaymentToGL(s.ctx, first.PaymentID, testActor)
	s.Require().NoError(err)
	s.Empty(res.InvoicesClosed)
	s.assertCredit(res.Entry, "1100", "2000.00")
	s.assertCredit(res.Entry, "4900", "50.00")
	s.Equal(domain.PartiallyPaid, s.invoice(s.eurInvoice.InvoiceID).PaymentStatus)

	res, err = s.payments.PostPaymentToGL(s.ctx, second.PaymentID, testActor)
	s.Require().NoError(err)
	s.Equal([]string{"INV-EUR"}, res.InvoicesClosed)
	s.assertCredit(res.Entry, "1100", "2000.00")
	s.Equal(domain.Paid, s.invoice(s.eurInvoice.InvoiceID).PaymentStatus)

	debit, credit := s.controlActivity("1100")
	s.True(debit.Equal(credit), "AR control should net to zero: %s vs %s", debit, credit)
}

func (s *PaymentPostingSuite) TestReceipt_UnallocatedRemainder() {
	inv := s.addARInvoice("INV-AED", "AED", "2024-05-02", line("1", "100", "5", "VAT5"))
	s.postInvoice(inv)
	p := s.addPayment("RCPT-2", domain.Receipt, "AED", "2024-05-05", "200", alloc(inv.InvoiceID, "105"))

	res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	s.Require().Len(res.Entry.Lines, 3)
	s.assertDebit(res.Entry, "1000", "200.00")
	s.assertCredit(res.Entry, "1100", "105.00")
	s.assertCredit(res.Entry, "2300", "95.00")
	s.Equal(domain.Paid, s.invoice(inv.InvoiceID).PaymentStatus)
}

func (s *PaymentPostingSuite) TestDisbursement_RealizedLoss() {
	bill := s.addAPInvoice("BILL-EUR", "EUR", "2024-03-15", line("1", "1000", "0", ""))
	s.postInvoice(bill)
	p := s.addPayment("PAY-1", domain.Disbursement, "AED", "2024-04-10", "4100", alloc(bill.InvoiceID, "4100"))

	res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	s.assertCredit(res.Entry, "1000", "4100.00")
	s.assertDebit(res.Entry, "2100", "4000.00")
	s.assertDebit(res.Entry, "6900", "100.00")
	s.assertBalanced(res.Entry)
	s.Equal(domain.Paid, s.invoice(bill.InvoiceID).PaymentStatus)
}

// usdInvoice posts a 1000 USD document booked at 3.60 that settles at 3.50 in April.
func (s *PaymentPostingSuite) usdInvoice(kind domain.InvoiceKind, number string) domain.Invoice {
	s.store.AddRate(domain.ExchangeRate{FromCurrency: "USD", ToCurrency: "AED", Rate: d("3.60"), DateEffective: day("2024-03-01")})
	s.store.AddRate(domain.ExchangeRate{FromCurrency: "USD", ToCurrency: "AED", Rate: d("3.50"), DateEffective: day("2024-04-01")})
	add := s.addARInvoice
	if kind == domain.InvoiceAP {
		add = s.addAPInvoice
	}
	inv := add(number, "USD", "2024-03-15", line("1", "1000", "0", ""))
	s.postInvoice(inv)
	return inv
}

// fxLines returns the total debit and credit booked to code across every line of entry.
func fxLines(entry *domain.JournalEntry, code string) (debit, credit decimal.Decimal, n int) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range entry.Lines {
		if l.AccountCode == code {
			debit, credit, n = debit.Add(l.Debit), credit.Add(l.Credit), n+1
		}
	}
	return debit, credit, n
}

func (s *PaymentPostingSuite) TestReceipt_GainAndLossPostedGross() {
	usd := s.usdInvoice(domain.InvoiceAR, "INV-USD")
	p := s.addPayment("RCPT-MIX", domain.Receipt, "AED", "2024-04-10", "7600",
		alloc(s.eurInvoice.InvoiceID, "4100"), alloc(usd.InvoiceID, "3500"))

	res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	entry := res.Entry
	s.assertDebit(entry, "1000", "7600.00")
	s.assertCredit(entry, "4900", "100.00")
	s.assertDebit(entry, "6900", "100.00")
	debit, credit, n := fxLines(entry, "1100")
	s.Equal(2, n)
	s.True(debit.IsZero())
	s.True(d("7600").Equal(credit), "AR relieved %s", credit)
	s.assertBalanced(entry)
	s.ElementsMatch([]string{"INV-EUR", "INV-USD"}, res.InvoicesClosed)

	stored, err := s.repos.PaymentRepo.FindPaymentByID(s.ctx, p.PaymentID)
	s.Require().NoError(err)
	diffs := map[string]string{}
	for _, a := range stored.Allocations {
		diffs[a.InvoiceCurrency] = a.FxDifference.String()
	}
	s.Equal(map[string]string{"EUR": "100", "USD": "-100"}, diffs)

	debit, credit = s.controlActivity("1100")
	s.True(debit.Equal(credit), "AR control should net to zero: %s vs %s", debit, credit)
}

func (s *PaymentPostingSuite) TestDisbursement_GainAndLossPostedGross() {
	bill := s.addAPInvoice("BILL-EUR", "EUR", "2024-03-15", line("1", "1000", "0", ""))
	s.postInvoice(bill)
	usd := s.usdInvoice(domain.InvoiceAP, "BILL-USD")
	p := s.addPayment("PAY-MIX", domain.Disbursement, "AED", "2024-04-10", "7600",
		alloc(bill.InvoiceID, "4100"), alloc(usd.InvoiceID, "3500"))

	res, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	entry := res.Entry
	s.assertCredit(entry, "1000", "7600.00")
	s.assertDebit(entry, "6900", "100.00")
	s.assertCredit(entry, "4900", "100.00")
	debit, credit, n := fxLines(entry, "2100")
	s.Equal(2, n)
	s.True(credit.IsZero())
	s.True(d("7600").Equal(debit), "AP relieved %s", debit)
	s.assertBalanced(entry)
}

func (s *PaymentPostingSuite) TestPostPayment_Idempotent() {
	p := s.addPayment("RCPT-3", domain.Receipt, "AED", "2024-04-10", "4100", alloc(s.eurInvoice.InvoiceID, "4100"))

	first, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)
	s.Require().NoError(err)
	again, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.Require().NoError(err)
	s.False(again.Created)
	s.Empty(again.InvoicesClosed)
	s.Equal(first.Entry.EntryID, again.Entry.EntryID)
	s.Len(s.store.Entries(), 2)
}

func (s *PaymentPostingSuite) TestPostPayment_RejectsBadAllocations() {
	draft := s.addARInvoice("INV-DRAFT", "AED", "2024-05-02", line("1", "10", "0", ""))
	bill := s.addAPInvoice("BILL-1", "AED", "2024-05-02", line("1", "10", "0", ""))
	s.postInvoice(bill)

	cases := map[string]domain.Payment{
		"over-allocation":       s.addPayment("R-OVER", domain.Receipt, "AED", "2024-04-10", "5000", alloc(s.eurInvoice.InvoiceID, "5000")),
		"allocations > total":   s.addPayment("R-SUM", domain.Receipt, "AED", "2024-04-10", "100", alloc(s.eurInvoice.InvoiceID, "150")),
		"unposted invoice":      s.addPayment("R-DRAFT", domain.Receipt, "AED", "2024-05-05", "10", alloc(draft.InvoiceID, "10")),
		"wrong invoice kind":    s.addPayment("R-KIND", domain.Receipt, "AED", "2024-05-05", "10", alloc(bill.InvoiceID, "10")),
		"non-positive total":    s.addPayment("R-ZERO", domain.Receipt, "AED", "2024-05-05", "0"),
		"non-positive allocate": s.addPayment("R-NEG", domain.Receipt, "AED", "2024-05-05", "10", alloc(s.eurInvoice.InvoiceID, "-1")),
	}
	before := len(s.store.Entries())

	for name, p := range cases {
		_, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)
		s.ErrorIs(err, apperrors.ErrValidation, name)
	}
	s.Len(s.store.Entries(), before)
	s.Equal(domain.Unpaid, s.invoice(s.eurInvoice.InvoiceID).PaymentStatus)
}

func (s *PaymentPostingSuite) TestPostPayment_ClosedPeriod() {
	p := s.addPayment("RCPT-OLD", domain.Receipt, "AED", "2023-12-30", "100")

	_, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.ErrorIs(err, apperrors.ErrPeriodClosed)
	stored, err := s.repos.PaymentRepo.FindPaymentByID(s.ctx, p.PaymentID)
	s.Require().NoError(err)
	s.False(stored.IsPosted())
}

func (s *PaymentPostingSuite) TestPostPayment_MissingRate() {
	p := s.addPayment("RCPT-USD", domain.Receipt, "USD", "2024-04-10", "100")

	_, err := s.payments.PostPaymentToGL(s.ctx, p.PaymentID, testActor)

	s.ErrorIs(err, apperrors.ErrFxRateUnavailable)
}
