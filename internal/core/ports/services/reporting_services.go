package services

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// ReportingService defines operations for generating ledger reports.
type ReportingService interface {
	// BuildTrialBalance sums activity per account for entries dated in [from, to].
	BuildTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error)

	// BuildARAging classifies open receivables into buckets of the given widths.
	BuildARAging(ctx context.Context, asOf time.Time, bucketWidths []int, reportingCurrency string) (*domain.AgingReport, error)

	// BuildAPAging classifies open payables the same way.
	BuildAPAging(ctx context.Context, asOf time.Time, bucketWidths []int, reportingCurrency string) (*domain.AgingReport, error)
}
