package accounting

import (
	"testing"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPrecision(t *testing.T) {
	assert.Equal(t, int32(2), Precision("AED"))
	assert.Equal(t, int32(2), Precision("eur"))
	assert.Equal(t, int32(0), Precision("JPY"))
	assert.Equal(t, int32(3), Precision("KWD"))
	assert.True(t, MinorUnit("KWD").Equal(d("0.001")))
}

func TestRound_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.01", Round(d("0.005"), "AED").StringFixed(2))
	assert.Equal(t, "-0.01", Round(d("-0.005"), "AED").StringFixed(2))
	assert.Equal(t, "0.00", Round(d("0.0049"), "AED").StringFixed(2))
	assert.Equal(t, "13", Round(d("12.5"), "JPY").String())
}

func TestLineAmounts_PerLineRounding(t *testing.T) {
	tests := []struct {
		name         string
		qty, price   string
		rate         string
		wantSubtotal string
		wantTax      string
	}{
		{"vat5 on 100", "1", "100", "5", "100.00", "5.00"},
		{"half cent rounds up", "1", "0.10", "5", "0.10", "0.01"},
		{"one cent stays", "1", "0.20", "5", "0.20", "0.01"},
		{"fractional quantity", "2.5", "3.333", "0", "8.33", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, tax := LineAmounts(d(tt.qty), d(tt.price), d(tt.rate), "AED")
			assert.Equal(t, tt.wantSubtotal, sub.StringFixed(2))
			assert.Equal(t, tt.wantTax, tax.StringFixed(2))
		})
	}
}

func TestValidateEntryBalance(t *testing.T) {
	balanced := []domain.LineDraft{
		{AccountID: "ar", Debit: d("105.00")},
		{AccountID: "rev", Credit: d("100.00")},
		{AccountID: "vat", Credit: d("5.00")},
	}
	require.NoError(t, ValidateEntryBalance(balanced, "AED"))

	offByCent := []domain.LineDraft{
		{AccountID: "ar", Debit: d("105.01")},
		{AccountID: "rev", Credit: d("105.00")},
	}
	err := ValidateEntryBalance(offByCent, "AED")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	assert.Contains(t, err.Error(), "105.01")

	err = ValidateEntryBalance(balanced[:1], "AED")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateLine(t *testing.T) {
	assert.NoError(t, ValidateLine(domain.LineDraft{AccountID: "a", Debit: d("1")}))
	assert.ErrorIs(t, ValidateLine(domain.LineDraft{AccountID: "a"}), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateLine(domain.LineDraft{AccountID: "a", Debit: d("1"), Credit: d("1")}), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateLine(domain.LineDraft{AccountID: "a", Debit: d("-1")}), apperrors.ErrValidation)
}

func TestNaturalBalance(t *testing.T) {
	net, err := NaturalBalance(d("100"), d("40"), domain.Asset)
	require.NoError(t, err)
	assert.True(t, net.Equal(d("60")))

	net, err = NaturalBalance(d("100"), d("40"), domain.Income)
	require.NoError(t, err)
	assert.True(t, net.Equal(d("-60")))

	_, err = NaturalBalance(d("1"), d("0"), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}
