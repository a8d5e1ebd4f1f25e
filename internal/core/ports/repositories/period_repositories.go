package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// PeriodReader looks up fiscal periods by id or date.
type PeriodReader interface {
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodsByDate returns every period, open or closed, whose range contains the date.
	FindPeriodsByDate(ctx context.Context, date time.Time) ([]domain.FiscalPeriod, error)
}
