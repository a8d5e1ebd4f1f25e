package accounting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision applies to any currency missing from the minor-unit table.
const DefaultPrecision int32 = 2

// minorUnits lists ISO 4217 currencies whose minor unit differs from two decimals.
var minorUnits = map[string]int32{
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
}

// Precision returns the number of decimal places of the currency's minor unit.
func Precision(currencyCode string) int32 {
	if p, ok := minorUnits[strings.ToUpper(currencyCode)]; ok {
		return p
	}
	return DefaultPrecision
}

// MinorUnit returns the smallest representable amount of the currency, e.g. 0.01 for AED.
func MinorUnit(currencyCode string) decimal.Decimal {
	return decimal.New(1, -Precision(currencyCode))
}

// Round rounds half away from zero to the currency's minor unit. Every persisted monetary
// field goes through this function.
func Round(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(Precision(currencyCode))
}

// Convert multiplies amount by rate and rounds to the target currency.
func Convert(amount, rate decimal.Decimal, toCurrency string) decimal.Decimal {
	return Round(amount.Mul(rate), toCurrency)
}

// LineAmounts computes a line's subtotal and tax with per-line rounding:
// subtotal = round(quantity * unitPrice), tax = round(subtotal * taxRate / 100).
func LineAmounts(quantity, unitPrice, taxRatePercent decimal.Decimal, currencyCode string) (subtotal, tax decimal.Decimal) {
	subtotal = Round(quantity.Mul(unitPrice), currencyCode)
	tax = Round(subtotal.Mul(taxRatePercent).Div(decimal.NewFromInt(100)), currencyCode)
	return subtotal, tax
}
