package utils

import (
	"github.com/SscSPs/settlement_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the fixed precision of the given currency.
// Example: 12.3456 AED returns "12.35", 12.3456 JPY returns "12", 5 KWD returns "5.000".
func FormatWithCurrencyPrecision(amount decimal.Decimal, currencyCode string) string {
	return amount.StringFixed(accounting.Precision(currencyCode))
}

// FormatOptional formats a nullable amount, rendering nil as an empty string.
func FormatOptional(amount *decimal.Decimal, currencyCode string) string {
	if amount == nil {
		return ""
	}
	return FormatWithCurrencyPrecision(*amount, currencyCode)
}
