package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is a credit card profile (cartao).
type Card struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"usuario_id"`
	Name       string          `json:"nome"`
	Network    CardNetwork     `json:"bandeira"`
	Limit      decimal.Decimal `json:"limite"`
	ClosingDay int             `json:"data_fechamento"`
	DueDay     int             `json:"data_vencimento"`
	CreatedAt  time.Time       `json:"created_at"`
}
