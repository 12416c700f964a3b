// Package installment splits a credit purchase into monthly installment rows.
package installment

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/models"
)

// DefaultDescription labels rows of an expense without a description.
const DefaultDescription = "Despesa"

var ErrNotInstallable = errors.New("expense does not qualify for installments")

var hundred = decimal.NewFromInt(100)

// Split divides amount into n parts floored to the cent. The last part
// absorbs the remainder, so the parts always sum to amount exactly and no
// part is negative.
func Split(amount decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	count := decimal.NewFromInt(int64(n))
	base := amount.Mul(hundred).Div(count).Floor().Div(hundred)

	parts := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = base
		allocated = allocated.Add(base)
	}
	parts[n-1] = amount.Sub(allocated)
	return parts
}

// Schedule produces one row per month starting on the expense date. It is
// pure: ids and timestamps are left for the store to assign.
func Schedule(e models.Expense) ([]models.Installment, error) {
	if !e.IsInstallmentPurchase() {
		return nil, ErrNotInstallable
	}
	if e.ID == "" {
		return nil, fmt.Errorf("%w: expense id is required", ErrNotInstallable)
	}

	desc := e.Description
	if desc == "" {
		desc = DefaultDescription
	}

	n := e.Installments
	amounts := Split(e.Amount, n)
	rows := make([]models.Installment, n)
	for i := 0; i < n; i++ {
		rows[i] = models.Installment{
			OwnerID:     e.OwnerID,
			CardID:      *e.CardID,
			ExpenseID:   e.ID,
			Number:      i + 1,
			Total:       n,
			Amount:      amounts[i],
			DueOn:       e.SpentOn.AddMonths(i),
			Description: fmt.Sprintf("%s (%d/%d)", desc, i+1, n),
		}
	}
	return rows, nil
}
