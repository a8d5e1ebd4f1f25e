package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateJournalRequest_ToDraft(t *testing.T) {
	req := dto.CreateJournalRequest{
		Date:         "2024-05-02",
		CurrencyCode: "aed",
		Lines: []dto.JournalLineRequest{
			{AccountID: "a1", Debit: d("10")},
			{AccountID: "a2", Credit: d("10")},
		},
	}

	draft, err := req.ToDraft()

	require.NoError(t, err)
	assert.Equal(t, "AED", draft.CurrencyCode)
	assert.True(t, draft.EntryDate.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, draft.Lines, 2)

	req.Date = "02/05/2024"
	_, err = req.ToDraft()
	assert.Error(t, err)
}

func TestTrialBalanceResponse_Records(t *testing.T) {
	tb := &domain.TrialBalance{
		DateFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "AED",
		Rows: []domain.TrialBalanceRow{
			{AccountCode: "1100", AccountName: "AR", AccountType: domain.Asset, Debit: d("105"), Credit: decimal.Zero, Net: d("105"), Status: domain.RowOK},
			{AccountCode: "4000", AccountName: "Sales", AccountType: domain.Income, Debit: decimal.Zero, Credit: d("105"), Net: d("105"), Status: domain.RowOK},
		},
		TotalDebit:  d("105"),
		TotalCredit: d("105"),
	}

	resp := dto.ToTrialBalanceResponse(tb)
	records := resp.Records()

	assert.Len(t, resp.Header(), 7)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1100", "AR", "ASSET", "105.00", "0.00", "105.00", "ok"}, records[0])
	assert.Equal(t, []string{"TOTAL", "", "", "105.00", "105.00", "", ""}, records[2])
}

func TestAgingReportResponse_UnavailableBalanceIsBlank(t *testing.T) {
	rep := &domain.AgingReport{
		Kind:              domain.InvoiceAR,
		AsOf:              time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		ReportingCurrency: "USD",
		Rows: []domain.AgingRow{{
			InvoiceNumber:     "INV-1",
			InvoiceDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			DueDate:           time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			Bucket:            domain.BucketCurrent,
			CurrencyCode:      "JPY",
			Total:             d("1000"),
			PaidAmount:        decimal.Zero,
			Balance:           d("1000"),
			ReportingCurrency: "USD",
			Status:            domain.RowUnavailable,
		}},
		GrandTotal: decimal.Zero,
	}

	records := dto.ToAgingReportResponse(rep).Records()

	require.Len(t, records, 1)
	assert.Equal(t, "1000", records[0][7], "JPY has no minor unit")
	assert.Equal(t, "", records[0][11])
	assert.Equal(t, "unavailable", records[0][12])
}
