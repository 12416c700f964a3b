package installment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
)

func creditExpense(amount string, n int, date string) models.Expense {
	card := "card-1"
	return models.Expense{
		ID:            "exp-1",
		OwnerID:       "user-1",
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: models.PaymentCredit,
		CardID:        &card,
		Installments:  n,
		SpentOn:       daterange.MustParse(date),
		Description:   "Notebook",
	}
}

func TestScheduleEvenSplit(t *testing.T) {
	rows, err := Schedule(creditExpense("300", 3, "2024-01-31"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	wantDue := []string{"2024-01-31", "2024-03-02", "2024-03-31"}
	for i, r := range rows {
		assert.True(t, r.Amount.Equal(decimal.NewFromInt(100)), "row %d amount %s", i, r.Amount)
		assert.Equal(t, wantDue[i], r.DueOn.String())
		assert.Equal(t, i+1, r.Number)
		assert.Equal(t, 3, r.Total)
		assert.Equal(t, "card-1", r.CardID)
		assert.Equal(t, "exp-1", r.ExpenseID)
		assert.Equal(t, "user-1", r.OwnerID)
		assert.False(t, r.Paid)
		assert.Nil(t, r.PaidOn)
	}
	assert.Equal(t, "Notebook (1/3)", rows[0].Description)
	assert.Equal(t, "Notebook (3/3)", rows[2].Description)
}

func TestScheduleRemainderGoesToLastRow(t *testing.T) {
	rows, err := Schedule(creditExpense("100", 3, "2024-05-10"))
	require.NoError(t, err)

	assert.Equal(t, "33.33", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", rows[1].Amount.StringFixed(2))
	assert.Equal(t, "33.34", rows[2].Amount.StringFixed(2))
}

func TestScheduleDefaultDescription(t *testing.T) {
	e := creditExpense("50", 2, "2024-05-10")
	e.Description = ""

	rows, err := Schedule(e)
	require.NoError(t, err)
	assert.Equal(t, "Despesa (1/2)", rows[0].Description)
	assert.Equal(t, "Despesa (2/2)", rows[1].Description)
}

func TestScheduleRejectsNonInstallmentExpenses(t *testing.T) {
	single := creditExpense("50", 1, "2024-05-10")
	_, err := Schedule(single)
	assert.ErrorIs(t, err, ErrNotInstallable)

	pix := creditExpense("50", 3, "2024-05-10")
	pix.PaymentMethod = models.PaymentPix
	_, err = Schedule(pix)
	assert.ErrorIs(t, err, ErrNotInstallable)

	noID := creditExpense("50", 3, "2024-05-10")
	noID.ID = ""
	_, err = Schedule(noID)
	assert.ErrorIs(t, err, ErrNotInstallable)
}

func TestScheduleNumbersAreContiguous(t *testing.T) {
	rows, err := Schedule(creditExpense("1234.56", 12, "2024-11-30"))
	require.NoError(t, err)
	require.Len(t, rows, 12)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Number)
	}
	assert.Equal(t, "2025-10-30", rows[11].DueOn.String())
}

func TestSplitSumsExactly(t *testing.T) {
	tests := []struct {
		amount string
		n      int
	}{
		{"100", 3},
		{"0.10", 12},
		{"0.05", 4},
		{"999.99", 7},
		{"1234.567", 5},
		{"300", 3},
		{"0", 2},
	}
	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.amount)
		parts := Split(amount, tt.n)
		require.Len(t, parts, tt.n)

		sum := decimal.Zero
		for _, p := range parts {
			assert.False(t, p.IsNegative(), "%s/%d produced %s", tt.amount, tt.n, p)
			sum = sum.Add(p)
		}
		assert.True(t, sum.Equal(amount), "%s/%d sums to %s", tt.amount, tt.n, sum)
	}
}

func TestSplitZeroParts(t *testing.T) {
	assert.Nil(t, Split(decimal.NewFromInt(10), 0))
}
