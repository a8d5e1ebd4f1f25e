package dto

import (
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// ResolvePeriodParams are the query parameters of the period lookup.
type ResolvePeriodParams struct {
	Date     string `form:"date" binding:"required,datetime=2006-01-02"`
	PeriodID string `form:"periodID"`
}

// PeriodResponse describes the period that accepts a date.
type PeriodResponse struct {
	PeriodID  string `json:"periodID"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate.Format(time.DateOnly),
		EndDate:   p.EndDate.Format(time.DateOnly),
		Status:    string(p.Status),
	}
}
