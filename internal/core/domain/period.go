package domain

import "time"

// PeriodStatus is open or closed.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is an inclusive date range that gates posting.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
}

// Contains reports whether date falls in the period, compared by calendar day.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// IsOpen reports whether postings are accepted.
func (p FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}
