package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/models"
)

type Dashboard struct {
	TotalIncome        decimal.Decimal            `json:"total_entradas"`
	TotalExpenses      decimal.Decimal            `json:"total_despesas"`
	Balance            decimal.Decimal            `json:"saldo"`
	IncomeByCategory   map[string]decimal.Decimal `json:"entradas_por_tipo"`
	ExpensesByCategory map[string]decimal.Decimal `json:"despesas_por_tipo"`
	Entries            []models.Entry             `json:"entradas_detalhadas"`
	Expenses           []models.Expense           `json:"despesas_detalhadas"`
}
