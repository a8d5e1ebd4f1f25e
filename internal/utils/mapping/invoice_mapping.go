package mapping

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice. Lines are mapped separately.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		Number:        d.Number,
		Kind:          string(d.Kind),
		PartyID:       d.PartyID,
		CurrencyCode:  d.CurrencyCode,
		InvoiceDate:   d.InvoiceDate,
		DueDate:       d.DueDate,
		PeriodID:      d.PeriodID,
		Status:        string(d.Status),
		PaymentStatus: string(d.PaymentStatus),
		Subtotal:      d.Subtotal,
		TaxTotal:      d.TaxTotal,
		Total:         d.Total,
		ExchangeRate:  d.ExchangeRate,
		BaseTotal:     d.BaseTotal,
		GLJournalID:   d.GLJournalID,
		PostedAt:      d.PostedAt,
		PaidAt:        d.PaidAt,
		AuditFields:   models.AuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice and its lines to a domain Invoice
func ToDomainInvoice(m models.Invoice, lines []models.InvoiceLine) domain.Invoice {
	ds := make([]domain.InvoiceLine, len(lines))
	for i, l := range lines {
		ds[i] = ToDomainInvoiceLine(l)
	}
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		Number:        m.Number,
		Kind:          domain.InvoiceKind(m.Kind),
		PartyID:       m.PartyID,
		CurrencyCode:  m.CurrencyCode,
		InvoiceDate:   m.InvoiceDate,
		DueDate:       m.DueDate,
		PeriodID:      m.PeriodID,
		Status:        domain.InvoiceStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Subtotal:      m.Subtotal,
		TaxTotal:      m.TaxTotal,
		Total:         m.Total,
		ExchangeRate:  m.ExchangeRate,
		BaseTotal:     m.BaseTotal,
		GLJournalID:   m.GLJournalID,
		PostedAt:      m.PostedAt,
		PaidAt:        m.PaidAt,
		Lines:         ds,
		AuditFields:   domain.AuditFields(m.AuditFields),
	}
}

// ToModelInvoiceLine converts a domain InvoiceLine; lineNo is its 1-based position.
func ToModelInvoiceLine(d domain.InvoiceLine, invoiceID string, lineNo int) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:       d.LineID,
		InvoiceID:    invoiceID,
		LineNo:       lineNo,
		Description:  d.Description,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
		TaxRate:      d.TaxRate,
		TaxCode:      d.TaxCode,
		AccountCode:  d.AccountCode,
		LineSubtotal: d.LineSubtotal,
		LineTax:      d.LineTax,
	}
}

func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:       m.LineID,
		Description:  m.Description,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TaxRate:      m.TaxRate,
		TaxCode:      m.TaxCode,
		AccountCode:  m.AccountCode,
		LineSubtotal: m.LineSubtotal,
		LineTax:      m.LineTax,
	}
}

// ToDomainSettlements keys settlement rows by invoice ID.
func ToDomainSettlements(ms []models.Settlement) map[string]domain.Settlement {
	out := make(map[string]domain.Settlement, len(ms))
	for _, m := range ms {
		out[m.InvoiceID] = domain.Settlement{Settled: m.Settled, Carrying: m.Carrying}
	}
	return out
}
