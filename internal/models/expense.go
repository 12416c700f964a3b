package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/daterange"
)

// Expense is an outgoing payment record (despesa).
type Expense struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"usuario_id"`
	Amount        decimal.Decimal `json:"valor"`
	Category      ExpenseCategory `json:"tipo"`
	SpentOn       daterange.Date  `json:"data_despesa"`
	PaymentMethod PaymentMethod   `json:"tipo_pagamento"`
	CardID        *string         `json:"cartao_id"`
	Installments  int             `json:"parcelas"`
	Description   string          `json:"descricao"`
	Location      string          `json:"local"`
	Card          *CardRef        `json:"cartoes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CardRef is the card summary joined onto expense listings.
type CardRef struct {
	Name string `json:"nome"`
}

// IsInstallmentPurchase reports whether creating e spawns installment rows.
func (e Expense) IsInstallmentPurchase() bool {
	return e.PaymentMethod == PaymentCredit && e.CardID != nil && *e.CardID != "" && e.Installments > 1
}
