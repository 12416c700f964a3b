package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/models"
)

// PaymentSummary partitions installment rows by their paid flag.
type PaymentSummary struct {
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"pago"`
	Pending      decimal.Decimal `json:"pendente"`
	Count        int             `json:"quantidade"`
	PaidCount    int             `json:"quantidade_pago"`
	PendingCount int             `json:"quantidade_pendente"`
}

// SummarizePayments computes pending as total minus paid.
func SummarizePayments(rows []models.Installment) PaymentSummary {
	out := PaymentSummary{Total: decimal.Zero, Paid: decimal.Zero}
	for _, r := range rows {
		out.Total = out.Total.Add(r.Amount)
		out.Count++
		if r.Paid {
			out.Paid = out.Paid.Add(r.Amount)
			out.PaidCount++
		}
	}
	out.Pending = out.Total.Sub(out.Paid)
	out.PendingCount = out.Count - out.PaidCount
	return out
}
