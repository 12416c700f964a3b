package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/daterange"
)

// Entry is an income record (entrada).
type Entry struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"usuario_id"`
	Amount        decimal.Decimal `json:"valor"`
	Category      IncomeCategory  `json:"tipo"`
	ReceivedOn    daterange.Date  `json:"data_entrada"`
	ReceiptMethod ReceiptMethod   `json:"forma_recebimento"`
	Description   string          `json:"descricao"`
	CreatedAt     time.Time       `json:"created_at"`
}
