package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/daterange"
)

// Installment is one scheduled monthly payment of a credit purchase
// (extrato_cartao row). Rows are generated once and afterwards only their
// paid flag changes.
type Installment struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"usuario_id"`
	CardID      string          `json:"cartao_id"`
	ExpenseID   string          `json:"despesa_id"`
	Number      int             `json:"parcela_numero"`
	Total       int             `json:"total_parcelas"`
	Amount      decimal.Decimal `json:"valor"`
	DueOn       daterange.Date  `json:"data_vencimento"`
	Paid        bool            `json:"pago"`
	PaidOn      *daterange.Date `json:"data_pagamento"`
	Description string          `json:"descricao"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
