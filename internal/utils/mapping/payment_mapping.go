package mapping

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
)

// ToDomainPayment converts a model Payment and its allocations to a domain Payment
func ToDomainPayment(m models.Payment, allocations []models.PaymentAllocation) domain.Payment {
	ds := make([]domain.PaymentAllocation, len(allocations))
	for i, a := range allocations {
		ds[i] = ToDomainPaymentAllocation(a)
	}
	return domain.Payment{
		PaymentID:       m.PaymentID,
		Number:          m.Number,
		Direction:       domain.PaymentDirection(m.Direction),
		PartyID:         m.PartyID,
		CurrencyCode:    m.CurrencyCode,
		PaymentDate:     m.PaymentDate,
		TotalAmount:     m.TotalAmount,
		BankAccountCode: m.BankAccountCode,
		PeriodID:        m.PeriodID,
		GLJournalID:     m.GLJournalID,
		PostedAt:        m.PostedAt,
		Allocations:     ds,
		AuditFields:     domain.AuditFields(m.AuditFields),
	}
}

// ToModelPaymentAllocation converts a domain PaymentAllocation to a model PaymentAllocation
func ToModelPaymentAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID:    d.AllocationID,
		PaymentID:       d.PaymentID,
		InvoiceID:       d.InvoiceID,
		Amount:          d.Amount,
		InvoiceCurrency: d.InvoiceCurrency,
		ExchangeRate:    d.ExchangeRate,
		SettledAmount:   d.SettledAmount,
		BaseAmount:      d.BaseAmount,
		CarryingAmount:  d.CarryingAmount,
		FxDifference:    d.FxDifference,
	}
}

// ToDomainPaymentAllocation converts a model PaymentAllocation to a domain PaymentAllocation
func ToDomainPaymentAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID:    m.AllocationID,
		PaymentID:       m.PaymentID,
		InvoiceID:       m.InvoiceID,
		Amount:          m.Amount,
		InvoiceCurrency: m.InvoiceCurrency,
		ExchangeRate:    m.ExchangeRate,
		SettledAmount:   m.SettledAmount,
		BaseAmount:      m.BaseAmount,
		CarryingAmount:  m.CarryingAmount,
		FxDifference:    m.FxDifference,
	}
}
