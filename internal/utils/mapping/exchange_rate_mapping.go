package mapping

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
)

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrency:   m.FromCurrencyCode,
		ToCurrency:     m.ToCurrencyCode,
		Rate:           m.Rate,
		DateEffective:  m.DateEffective,
		RateType:       domain.RateType(m.RateType),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:  m.PeriodID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    domain.PeriodStatus(m.Status),
	}
}

// ToDomainAccountActivity converts aggregation rows to domain activity.
func ToDomainAccountActivity(ms []models.AccountActivity) []domain.AccountActivity {
	ds := make([]domain.AccountActivity, len(ms))
	for i, m := range ms {
		ds[i] = domain.AccountActivity{AccountID: m.AccountID, Debit: m.Debit, Credit: m.Credit}
	}
	return ds
}
