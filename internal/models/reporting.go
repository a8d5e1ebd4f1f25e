package models

import "github.com/shopspring/decimal"

// AccountActivity is one row of the trial-balance aggregation.
type AccountActivity struct {
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
}
