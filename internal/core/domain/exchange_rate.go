package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateType names the quotation an exchange rate belongs to.
type RateType string

const (
	RateSpot    RateType = "SPOT"
	RateAverage RateType = "AVERAGE"
	RateClosing RateType = "CLOSING"
)

// ExchangeRate converts one unit of FromCurrency into ToCurrency. The ledger only reads rates.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	RateType       RateType        `json:"rateType"`
}
