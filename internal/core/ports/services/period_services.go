package services

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// PeriodGateSvc checks transaction dates against fiscal periods.
type PeriodGateSvc interface {
	// ValidateTransactionDate returns the open period that accepts the date.
	ValidateTransactionDate(ctx context.Context, date time.Time, periodID *string) (*domain.FiscalPeriod, error)
}
