package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/daterange"
)

// Record inputs use pointers so the same shape serves create (fields
// required) and update (absent fields keep their stored value).

type EntryInput struct {
	Amount        *decimal.Decimal `json:"valor"`
	Category      *string          `json:"tipo"`
	ReceivedOn    *daterange.Date  `json:"data_entrada"`
	ReceiptMethod *string          `json:"forma_recebimento"`
	Description   *string          `json:"descricao"`
}

type ExpenseInput struct {
	Amount        *decimal.Decimal `json:"valor"`
	Category      *string          `json:"tipo"`
	SpentOn       *daterange.Date  `json:"data_despesa"`
	PaymentMethod *string          `json:"tipo_pagamento"`
	CardID        *string          `json:"cartao_id"`
	Installments  *int             `json:"parcelas"`
	Description   *string          `json:"descricao"`
	Location      *string          `json:"local"`
}

type CardInput struct {
	Name       *string          `json:"nome"`
	Network    *string          `json:"bandeira"`
	Limit      *decimal.Decimal `json:"limite"`
	ClosingDay *int             `json:"data_fechamento"`
	DueDay     *int             `json:"data_vencimento"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
