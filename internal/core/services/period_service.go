package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
)

type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodReader
}

// NewPeriodService creates the period gate.
func NewPeriodService(periodRepo portsrepo.PeriodReader) portssvc.PeriodGateSvc {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodGateSvc = (*periodService)(nil)

// ValidateTransactionDate returns the open period accepting date. With an explicit periodID the
// period must be open and contain the date; otherwise exactly one open period must contain it.
func (s *periodService) ValidateTransactionDate(ctx context.Context, date time.Time, periodID *string) (*domain.FiscalPeriod, error) {
	day := domain.DateOnly(date).Format(time.DateOnly)

	if periodID != nil && *periodID != "" {
		period, err := s.periodRepo.FindPeriodByID(ctx, *periodID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: period %s: %w", apperrors.ErrPeriodClosed, *periodID, err)
			}
			return nil, fmt.Errorf("failed to load fiscal period %s: %w", *periodID, err)
		}
		if !period.IsOpen() {
			return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, period.Name, period.Status)
		}
		if !period.Contains(date) {
			return nil, fmt.Errorf("%w: %s is outside period %s", apperrors.ErrPeriodClosed, day, period.Name)
		}
		return period, nil
	}

	periods, err := s.periodRepo.FindPeriodsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal periods for %s: %w", day, err)
	}

	var open []domain.FiscalPeriod
	for _, p := range periods {
		if p.IsOpen() && p.Contains(date) {
			open = append(open, p)
		}
	}

	switch len(open) {
	case 0:
		if len(periods) > 0 {
			return nil, fmt.Errorf("%w: %w: %s falls in period %s", apperrors.ErrNoOpenPeriod, apperrors.ErrPeriodClosed, day, periods[0].Name)
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNoOpenPeriod, day)
	case 1:
		return &open[0], nil
	default:
		s.LogWarn(ctx, "Overlapping open fiscal periods", slog.String("date", day), slog.Int("count", len(open)))
		return nil, fmt.Errorf("%w: %d open periods contain %s", apperrors.ErrAmbiguousPeriod, len(open), day)
	}
}
