package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual entry. Exactly one of debit and credit is set.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo" binding:"max=255"`
}

// CreateJournalRequest defines the payload for posting a manual journal entry.
type CreateJournalRequest struct {
	Date         string               `json:"date" binding:"required,datetime=2006-01-02" example:"2024-05-02"`
	CurrencyCode string               `json:"currencyCode" binding:"required,len=3,alpha" example:"AED"`
	Memo         string               `json:"memo" binding:"max=500"`
	PeriodID     *string              `json:"periodID,omitempty"`
	Lines        []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDraft converts the request into an entry draft.
func (r CreateJournalRequest) ToDraft() (domain.EntryDraft, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return domain.EntryDraft{}, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}
	draft := domain.EntryDraft{
		EntryDate:    date,
		CurrencyCode: strings.ToUpper(r.CurrencyCode),
		Memo:         r.Memo,
		PeriodID:     r.PeriodID,
		Lines:        make([]domain.LineDraft, len(r.Lines)),
	}
	for i, l := range r.Lines {
		draft.Lines[i] = domain.LineDraft{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Memo: l.Memo}
	}
	return draft, nil
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string `json:"lineID"`
	LineNo      int    `json:"lineNo"`
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Memo        string `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry and its lines.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	EntryDate       string                `json:"entryDate"`
	CurrencyCode    string                `json:"currencyCode"`
	Memo            string                `json:"memo"`
	Status          string                `json:"status"`
	SourceInvoiceID *string               `json:"sourceInvoiceID,omitempty"`
	SourcePaymentID *string               `json:"sourcePaymentID,omitempty"`
	ReversalOfID    *string               `json:"reversalOfID,omitempty"`
	ReversedByID    *string               `json:"reversedByID,omitempty"`
	TotalDebit      string                `json:"totalDebit"`
	TotalCredit     string                `json:"totalCredit"`
	Lines           []JournalLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debits, credits := e.Totals()
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryDate:       e.EntryDate.Format(time.DateOnly),
		CurrencyCode:    e.CurrencyCode,
		Memo:            e.Memo,
		Status:          string(e.Status),
		SourceInvoiceID: e.SourceInvoiceID,
		SourcePaymentID: e.SourcePaymentID,
		ReversalOfID:    e.ReversalOfID,
		ReversedByID:    e.ReversedByID,
		TotalDebit:      utils.FormatWithCurrencyPrecision(debits, e.CurrencyCode),
		TotalCredit:     utils.FormatWithCurrencyPrecision(credits, e.CurrencyCode),
		Lines:           make([]JournalLineResponse, len(e.Lines)),
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	for i, l := range e.Lines {
		resp.Lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       utils.FormatWithCurrencyPrecision(l.Debit, e.CurrencyCode),
			Credit:      utils.FormatWithCurrencyPrecision(l.Credit, e.CurrencyCode),
			Memo:        l.Memo,
		}
	}
	return resp
}
