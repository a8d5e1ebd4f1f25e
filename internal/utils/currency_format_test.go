package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")

	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(amount, "AED"))
	assert.Equal(t, "12", FormatWithCurrencyPrecision(amount, "JPY"))
	assert.Equal(t, "5.000", FormatWithCurrencyPrecision(decimal.NewFromInt(5), "KWD"))
}

func TestFormatOptional(t *testing.T) {
	amount := decimal.RequireFromString("100")

	assert.Equal(t, "", FormatOptional(nil, "AED"))
	assert.Equal(t, "100.00", FormatOptional(&amount, "AED"))
}
