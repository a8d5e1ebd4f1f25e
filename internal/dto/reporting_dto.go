package dto

import (
	"strconv"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/utils"
)

// TrialBalanceParams are the query parameters of the trial balance endpoint.
type TrialBalanceParams struct {
	From   string `form:"from" binding:"required,datetime=2006-01-02"`
	To     string `form:"to" binding:"required,datetime=2006-01-02"`
	Format string `form:"format" binding:"omitempty,oneof=json csv"`
}

// AgingParams are the query parameters of the aging endpoints.
type AgingParams struct {
	AsOf     string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
	Buckets  string `form:"buckets"`
	Currency string `form:"currency" binding:"omitempty,len=3,alpha"`
	Format   string `form:"format" binding:"omitempty,oneof=json csv"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Net         string `json:"net"`
	Status      string `json:"status"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	From         string                    `json:"from"`
	To           string                    `json:"to"`
	CurrencyCode string                    `json:"currencyCode"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	Totals       struct {
		Debit  string `json:"debit"`
		Credit string `json:"credit"`
	} `json:"totals"`
}

func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	cur := tb.CurrencyCode
	resp := TrialBalanceResponse{
		From:         tb.DateFrom.Format(time.DateOnly),
		To:           tb.DateTo.Format(time.DateOnly),
		CurrencyCode: cur,
		Rows:         make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, r := range tb.Rows {
		code := r.AccountCode
		if code == "" {
			code = r.AccountID
		}
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountCode: code,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       utils.FormatWithCurrencyPrecision(r.Debit, cur),
			Credit:      utils.FormatWithCurrencyPrecision(r.Credit, cur),
			Net:         utils.FormatWithCurrencyPrecision(r.Net, cur),
			Status:      string(r.Status),
		}
	}
	resp.Totals.Debit = utils.FormatWithCurrencyPrecision(tb.TotalDebit, cur)
	resp.Totals.Credit = utils.FormatWithCurrencyPrecision(tb.TotalCredit, cur)
	return resp
}

// Header returns the CSV column names.
func (TrialBalanceResponse) Header() []string {
	return []string{"account_code", "account_name", "account_type", "debit", "credit", "net", "status"}
}

// Records returns one record per row followed by a totals record.
func (r TrialBalanceResponse) Records() [][]string {
	out := make([][]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		out = append(out, []string{row.AccountCode, row.AccountName, row.AccountType, row.Debit, row.Credit, row.Net, row.Status})
	}
	return append(out, []string{"TOTAL", "", "", r.Totals.Debit, r.Totals.Credit, "", ""})
}

// AgingRowResponse is one open invoice in an aging report.
type AgingRowResponse struct {
	InvoiceNumber     string `json:"invoiceNumber"`
	PartyID           string `json:"partyID"`
	InvoiceDate       string `json:"invoiceDate"`
	DueDate           string `json:"dueDate"`
	DaysOverdue       int    `json:"daysOverdue"`
	Bucket            string `json:"bucket"`
	CurrencyCode      string `json:"currencyCode"`
	Total             string `json:"total"`
	Paid              string `json:"paid"`
	Balance           string `json:"balance"`
	ReportingCurrency string `json:"reportingCurrency"`
	ReportingBalance  string `json:"reportingBalance"`
	Status            string `json:"status"`
}

// AgingBucketResponse totals one bucket.
type AgingBucketResponse struct {
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Amount string `json:"amount"`
}

// AgingReportResponse is the AR or AP aging report.
type AgingReportResponse struct {
	Kind              string                `json:"kind"`
	AsOf              string                `json:"asOf"`
	ReportingCurrency string                `json:"reportingCurrency"`
	Rows              []AgingRowResponse    `json:"rows"`
	Buckets           []AgingBucketResponse `json:"buckets"`
	GrandTotal        string                `json:"grandTotal"`
	UnavailableCount  int                   `json:"unavailableCount"`
}

func ToAgingReportResponse(rep *domain.AgingReport) AgingReportResponse {
	cur := rep.ReportingCurrency
	resp := AgingReportResponse{
		Kind:              string(rep.Kind),
		AsOf:              rep.AsOf.Format(time.DateOnly),
		ReportingCurrency: cur,
		Rows:              make([]AgingRowResponse, len(rep.Rows)),
		Buckets:           make([]AgingBucketResponse, len(rep.Buckets)),
		GrandTotal:        utils.FormatWithCurrencyPrecision(rep.GrandTotal, cur),
		UnavailableCount:  rep.UnavailableCount,
	}
	for i, r := range rep.Rows {
		resp.Rows[i] = AgingRowResponse{
			InvoiceNumber:     r.InvoiceNumber,
			PartyID:           r.PartyID,
			InvoiceDate:       r.InvoiceDate.Format(time.DateOnly),
			DueDate:           r.DueDate.Format(time.DateOnly),
			DaysOverdue:       r.DaysOverdue,
			Bucket:            r.Bucket,
			CurrencyCode:      r.CurrencyCode,
			Total:             utils.FormatWithCurrencyPrecision(r.Total, r.CurrencyCode),
			Paid:              utils.FormatWithCurrencyPrecision(r.PaidAmount, r.CurrencyCode),
			Balance:           utils.FormatWithCurrencyPrecision(r.Balance, r.CurrencyCode),
			ReportingCurrency: r.ReportingCurrency,
			ReportingBalance:  utils.FormatOptional(r.ReportingBalance, r.ReportingCurrency),
			Status:            string(r.Status),
		}
	}
	for i, b := range rep.Buckets {
		resp.Buckets[i] = AgingBucketResponse{
			Label:  b.Label,
			Count:  b.Count,
			Amount: utils.FormatWithCurrencyPrecision(b.Amount, cur),
		}
	}
	return resp
}

// Header returns the CSV column names.
func (AgingReportResponse) Header() []string {
	return []string{
		"invoice_number", "party_id", "invoice_date", "due_date", "days_overdue", "bucket",
		"currency", "total", "paid", "balance", "reporting_currency", "reporting_balance", "status",
	}
}

// Records returns one record per invoice row.
func (r AgingReportResponse) Records() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = []string{
			row.InvoiceNumber, row.PartyID, row.InvoiceDate, row.DueDate, strconv.Itoa(row.DaysOverdue), row.Bucket,
			row.CurrencyCode, row.Total, row.Paid, row.Balance, row.ReportingCurrency, row.ReportingBalance, row.Status,
		}
	}
	return out
}
