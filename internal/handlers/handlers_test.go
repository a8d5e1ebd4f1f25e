package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/handlers"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, draft domain.EntryDraft, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, draft, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock posting services ---
type MockInvoicePoster struct {
	mock.Mock
}

func (m *MockInvoicePoster) PostInvoiceToGL(ctx context.Context, invoiceID string, actor string) (*domain.JournalEntry, bool, error) {
	args := m.Called(ctx, invoiceID, actor)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Bool(1), args.Error(2)
}

type MockPaymentPoster struct {
	mock.Mock
}

func (m *MockPaymentPoster) PostPaymentToGL(ctx context.Context, paymentID string, actor string) (*domain.PaymentPostingResult, error) {
	args := m.Called(ctx, paymentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPostingResult), args.Error(1)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, from, to string, on time.Time, rateType domain.RateType) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, on, rateType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) GetBaseCurrency(ctx context.Context) string {
	return m.Called(ctx).String(0)
}

// --- Mock PeriodGate ---
type MockPeriodGate struct {
	mock.Mock
}

func (m *MockPeriodGate) ValidateTransactionDate(ctx context.Context, date time.Time, periodID *string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, date, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BuildTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) BuildARAging(ctx context.Context, asOf time.Time, widths []int, currency string) (*domain.AgingReport, error) {
	args := m.Called(ctx, asOf, widths, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}

func (m *MockReportingService) BuildAPAging(ctx context.Context, asOf time.Time, widths []int, currency string) (*domain.AgingReport, error) {
	args := m.Called(ctx, asOf, widths, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	journals    *MockJournalService
	invoices    *MockInvoicePoster
	payments    *MockPaymentPoster
	rates       *MockExchangeRateService
	periods     *MockPeriodGate
	reports     *MockReportingService
	jwtSecret   string
	actor       string
	entryFixture *domain.JournalEntry
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.actor = uuid.NewString()

	suite.journals = new(MockJournalService)
	suite.invoices = new(MockInvoicePoster)
	suite.payments = new(MockPaymentPoster)
	suite.rates = new(MockExchangeRateService)
	suite.periods = new(MockPeriodGate)
	suite.reports = new(MockReportingService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, RateLimit: "1000-M", IsProduction: true}
	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Journal:       suite.journals,
		InvoicePoster: suite.invoices,
		PaymentPoster: suite.payments,
		ExchangeRate:  suite.rates,
		PeriodGate:    suite.periods,
		Reporting:     suite.reports,
	})
	suite.Require().NoError(err)

	invoiceID := "inv-1"
	suite.entryFixture = &domain.JournalEntry{
		EntryID:         "je-1",
		EntryDate:       time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		CurrencyCode:    "AED",
		Status:          domain.Posted,
		Posted:          true,
		SourceInvoiceID: &invoiceID,
		Lines: []domain.JournalLine{
			{LineID: "l1", LineNo: 1, AccountCode: "1100", Debit: decimal.RequireFromString("105"), Credit: decimal.Zero},
			{LineID: "l2", LineNo: 2, AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.RequireFromString("100")},
			{LineID: "l3", LineNo: 3, AccountCode: "2201", Debit: decimal.Zero, Credit: decimal.RequireFromString("5")},
		},
	}
}

// generateTestToken creates a signed JWT for the suite's actor with the given scopes.
func (suite *LedgerHandlerTestSuite) generateTestToken(scopes ...string) string {
	claims := middleware.LedgerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-test",
			Subject:   suite.actor,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Scopes: scopes,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) do(method, url string, body []byte, scopes ...string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(scopes...))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestHealth_NoAuth() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostInvoice_Created() {
	suite.invoices.On("PostInvoiceToGL", mock.Anything, "inv-1", suite.actor).Return(suite.entryFixture, true, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/post", nil, middleware.ScopePost)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostInvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Created)
	suite.Equal("je-1", resp.Entry.EntryID)
	suite.Equal("105.00", resp.Entry.TotalDebit)
	suite.Equal("105.00", resp.Entry.TotalCredit)
	suite.Len(resp.Entry.Lines, 3)
	suite.invoices.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostInvoice_AlreadyPostedReturnsExisting() {
	suite.invoices.On("PostInvoiceToGL", mock.Anything, "inv-1", suite.actor).Return(suite.entryFixture, false, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/post", nil)

	suite.Equal(http.StatusOK, w.Code, "tokens without scopes are full-access")
	var resp dto.PostInvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Created)
}

func (suite *LedgerHandlerTestSuite) TestPostInvoice_ErrorStatuses() {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("invoice inv-1: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("date 2023-12-30: %w", apperrors.ErrPeriodClosed), http.StatusUnprocessableEntity},
		{apperrors.NewValidationError("invoice has no lines"), http.StatusBadRequest},
		{fmt.Errorf("EUR->AED: %w", apperrors.ErrFxRateUnavailable), http.StatusServiceUnavailable},
		{apperrors.ErrNotApproved, http.StatusForbidden},
	}
	for _, tc := range cases {
		suite.invoices.On("PostInvoiceToGL", mock.Anything, "inv-1", suite.actor).Return(nil, false, tc.err).Once()

		w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/post", nil, middleware.ScopePost)

		suite.Equal(tc.status, w.Code, tc.err.Error())
		suite.Contains(suite.errorMessage(w), tc.err.Error())
	}
}

func (suite *LedgerHandlerTestSuite) TestPostInvoice_InternalErrorIsGeneric() {
	suite.invoices.On("PostInvoiceToGL", mock.Anything, "inv-1", suite.actor).
		Return(nil, false, fmt.Errorf("conn reset by peer at 10.0.0.4")).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/post", nil, middleware.ScopePost)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to post invoice", suite.errorMessage(w))
}

func (suite *LedgerHandlerTestSuite) TestPostInvoice_MissingScope() {
	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/post", nil, middleware.ScopeRead)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.invoices.AssertNotCalled(suite.T(), "PostInvoiceToGL", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestPostInvoice_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/post", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostPayment() {
	paymentID := "pay-1"
	entry := &domain.JournalEntry{EntryID: "je-2", CurrencyCode: "AED", Status: domain.Posted, SourcePaymentID: &paymentID}
	suite.payments.On("PostPaymentToGL", mock.Anything, paymentID, suite.actor).
		Return(&domain.PaymentPostingResult{Entry: entry, Created: true, InvoicesClosed: []string{"INV-EUR"}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments/pay-1/post", nil, middleware.ScopePost)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"INV-EUR"}, resp.InvoicesClosed)
	suite.Equal("je-2", resp.Entry.EntryID)
}

func (suite *LedgerHandlerTestSuite) TestPostPayment_AlreadyPosted() {
	entry := &domain.JournalEntry{EntryID: "je-2", CurrencyCode: "AED", Status: domain.Posted}
	suite.payments.On("PostPaymentToGL", mock.Anything, "pay-1", suite.actor).
		Return(&domain.PaymentPostingResult{Entry: entry}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments/pay-1/post", nil, middleware.ScopePost)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Created)
	suite.NotNil(resp.InvoicesClosed)
}

func (suite *LedgerHandlerTestSuite) TestCreateJournal() {
	body := []byte(`{
		"date": "2024-02-01",
		"currencyCode": "aed",
		"memo": "Owner contribution",
		"lines": [
			{"accountID": "acc-bank", "debit": "500"},
			{"accountID": "acc-equity", "credit": "500"}
		]
	}`)
	created := &domain.JournalEntry{EntryID: "je-3", CurrencyCode: "AED", Status: domain.Posted}
	suite.journals.On("CreateEntry", mock.Anything, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.CurrencyCode == "AED" && len(d.Lines) == 2 &&
			d.Lines[0].Debit.Equal(decimal.NewFromInt(500)) &&
			d.EntryDate.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	}), suite.actor).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", body, middleware.ScopePost)

	suite.Equal(http.StatusCreated, w.Code)
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateJournal_InvalidRequest() {
	for name, body := range map[string]string{
		"one line":     `{"date":"2024-02-01","currencyCode":"AED","lines":[{"accountID":"a","debit":"1"}]}`,
		"bad date":     `{"date":"01/02/2024","currencyCode":"AED","lines":[{"accountID":"a","debit":"1"},{"accountID":"b","credit":"1"}]}`,
		"bad currency": `{"date":"2024-02-01","currencyCode":"DIRHAM","lines":[{"accountID":"a","debit":"1"},{"accountID":"b","credit":"1"}]}`,
		"not json":     `{`,
	} {
		w := suite.do(http.MethodPost, "/api/v1/journals", []byte(body), middleware.ScopePost)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.journals.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreateJournal_Unbalanced() {
	body := []byte(`{"date":"2024-02-01","currencyCode":"AED","lines":[{"accountID":"a","debit":"2"},{"accountID":"b","credit":"1"}]}`)
	suite.journals.On("CreateEntry", mock.Anything, mock.Anything, suite.actor).
		Return(nil, fmt.Errorf("debits 2.00 credits 1.00: %w", apperrors.ErrUnbalancedEntry)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", body, middleware.ScopePost)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetJournal() {
	suite.journals.On("GetEntry", mock.Anything, "je-1").Return(suite.entryFixture, nil).Once()
	suite.journals.On("GetEntry", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("journal entry")).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals/je-1", nil, middleware.ScopeRead)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-05-02", resp.EntryDate)
	suite.Require().NotNil(resp.SourceInvoiceID)
	suite.Equal("inv-1", *resp.SourceInvoiceID)

	w = suite.do(http.MethodGet, "/api/v1/journals/missing", nil, middleware.ScopeRead)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestReverseJournal() {
	originalID := "je-1"
	reversal := &domain.JournalEntry{EntryID: "je-9", CurrencyCode: "AED", Status: domain.Posted, ReversalOfID: &originalID}
	suite.journals.On("ReverseEntry", mock.Anything, "je-1", suite.actor).Return(reversal, nil).Once()
	suite.journals.On("ReverseEntry", mock.Anything, "je-1", suite.actor).
		Return(nil, fmt.Errorf("entry je-1: %w", apperrors.ErrAlreadyReversed)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/je-1/reverse", nil, middleware.ScopeReverse)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/journals/je-1/reverse", nil, middleware.ScopeReverse)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/journals/je-1/reverse", nil, middleware.ScopePost)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.journals.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestResolvePeriod() {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	period := &domain.FiscalPeriod{
		PeriodID:  "p-2024-03",
		Name:      "2024-03",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
	suite.periods.On("ValidateTransactionDate", mock.Anything, date, (*string)(nil)).Return(period, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/resolve?date=2024-03-10", nil, middleware.ScopeRead)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PeriodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-31", resp.EndDate)
}

func (suite *LedgerHandlerTestSuite) TestResolvePeriod_ExplicitClosed() {
	suite.periods.On("ValidateTransactionDate", mock.Anything, mock.Anything, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "p-2023-12"
	})).Return(nil, fmt.Errorf("period p-2023-12: %w", apperrors.ErrPeriodClosed)).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/resolve?date=2023-12-30&periodID=p-2023-12", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/periods/resolve", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetExchangeRate() {
	on := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	suite.rates.On("GetExchangeRate", mock.Anything, "EUR", "AED", on, domain.RateAverage).
		Return(decimal.RequireFromString("4.1"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates?from=eur&to=aed&date=2024-04-10&type=AVERAGE", nil, middleware.ScopeRead)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("4.1", resp.Rate)
	suite.Equal("AVERAGE", resp.RateType)
}

func (suite *LedgerHandlerTestSuite) TestGetExchangeRate_Unavailable() {
	suite.rates.On("GetExchangeRate", mock.Anything, "USD", "AED", mock.Anything, domain.RateSpot).
		Return(decimal.Zero, fmt.Errorf("USD->AED: %w", apperrors.ErrFxRateUnavailable)).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates?from=USD&to=AED", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates?from=USD&to=AED&type=BID", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTrialBalance_CSV() {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	suite.reports.On("BuildTrialBalance", mock.Anything, from, to).Return(&domain.TrialBalance{
		DateFrom:     from,
		DateTo:       to,
		CurrencyCode: "AED",
		Rows: []domain.TrialBalanceRow{
			{AccountCode: "1100", AccountName: "Accounts Receivable", AccountType: domain.Asset, Debit: decimal.NewFromInt(105), Credit: decimal.Zero, Net: decimal.NewFromInt(105), Status: domain.RowOK},
		},
		TotalDebit:  decimal.NewFromInt(105),
		TotalCredit: decimal.NewFromInt(105),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?from=2024-01-01&to=2024-12-31&format=csv", nil, middleware.ScopeRead)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	suite.Contains(w.Header().Get("Content-Disposition"), "trial-balance_2024-01-01_2024-12-31.csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	suite.Require().Len(lines, 3)
	suite.Equal("account_code,account_name,account_type,debit,credit,net,status", lines[0])
	suite.Equal("1100,Accounts Receivable,ASSET,105.00,0.00,105.00,ok", lines[1])
}

func (suite *LedgerHandlerTestSuite) TestTrialBalance_InvalidRange() {
	suite.reports.On("BuildTrialBalance", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("from must not be after to")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?from=2024-12-31&to=2024-01-01", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/reports/trial-balance?from=2024-01-01", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestARAging() {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.reports.On("BuildARAging", mock.Anything, asOf, []int{15, 15}, "EUR").Return(&domain.AgingReport{
		Kind:              domain.InvoiceAR,
		AsOf:              asOf,
		ReportingCurrency: "EUR",
		Buckets:           []domain.AgingBucketSummary{{Label: domain.BucketCurrent, Amount: decimal.Zero}},
		GrandTotal:        decimal.Zero,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/ar-aging?asOf=2024-06-30&buckets=15,15&currency=EUR", nil, middleware.ScopeRead)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AgingReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("AR", resp.Kind)
	suite.Equal("0.00", resp.GrandTotal)
}

func (suite *LedgerHandlerTestSuite) TestAPAging_CSVAndBadBuckets() {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.reports.On("BuildAPAging", mock.Anything, asOf, []int(nil), "").Return(&domain.AgingReport{
		Kind:              domain.InvoiceAP,
		AsOf:              asOf,
		ReportingCurrency: "AED",
		GrandTotal:        decimal.Zero,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/ap-aging?asOf=2024-06-30&format=csv", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "ap-aging_2024-06-30.csv")
	suite.True(strings.HasPrefix(w.Body.String(), "invoice_number,party_id"))

	w = suite.do(http.MethodGet, "/api/v1/reports/ap-aging?buckets=30,zero", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reports.AssertNumberOfCalls(suite.T(), "BuildAPAging", 1)
}
