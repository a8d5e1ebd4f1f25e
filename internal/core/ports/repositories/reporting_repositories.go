package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// ReportingRepository defines the read-only aggregations behind reports.
type ReportingRepository interface {
	// GetAccountActivity sums debit and credit per account over lines of entries dated in
	// [from, to], posted and reversed entries alike.
	GetAccountActivity(ctx context.Context, from, to time.Time) ([]domain.AccountActivity, error)
}
