package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/installment"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

// TestStoreIntegration runs the record store against a live database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
	dbURL := os.Getenv("DATABASE_URL")
	require.NotEmpty(t, dbURL, "DATABASE_URL is required")

	ctx := context.Background()
	store, err := New(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()

	owner := uuid.NewString()
	stranger := uuid.NewString()

	_, err = store.CreateUser(ctx, models.User{ID: owner, Email: owner + "@example.com", Name: "Teste"})
	require.NoError(t, err)

	t.Run("entries", func(t *testing.T) {
		e, err := store.CreateEntry(ctx, models.Entry{
			OwnerID:    owner,
			Amount:     decimal.RequireFromString("1500.50"),
			Category:   models.IncomeSalary,
			ReceivedOn: daterange.MustParse("2024-03-05"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-05", e.ReceivedOn.String())
		assert.True(t, e.Amount.Equal(decimal.RequireFromString("1500.5")))

		from := daterange.MustParse("2024-03-01")
		to := daterange.MustParse("2024-03-31")
		list, err := store.ListEntries(ctx, owner, daterange.Range{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, list, 1)

		_, err = store.GetEntry(ctx, stranger, e.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = store.GetEntry(ctx, owner, "not-a-uuid")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, store.DeleteEntry(ctx, owner, e.ID))
		assert.ErrorIs(t, store.DeleteEntry(ctx, owner, e.ID), storage.ErrNotFound)
	})

	t.Run("installment purchase", func(t *testing.T) {
		card, err := store.CreateCard(ctx, models.Card{OwnerID: owner, Name: "Nubank", Network: models.NetworkMastercard, ClosingDay: 3, DueDay: 10})
		require.NoError(t, err)

		e := models.Expense{
			ID:            uuid.NewString(),
			OwnerID:       owner,
			Amount:        decimal.RequireFromString("100"),
			Category:      models.ExpenseShopping,
			SpentOn:       daterange.MustParse("2024-01-31"),
			PaymentMethod: models.PaymentCredit,
			CardID:        &card.ID,
			Installments:  3,
		}
		rows, err := installment.Schedule(e)
		require.NoError(t, err)

		created, err := store.CreateExpense(ctx, e, rows)
		require.NoError(t, err)
		require.NotNil(t, created.Card)
		assert.Equal(t, "Nubank", created.Card.Name)

		statement, err := store.ListInstallments(ctx, owner, card.ID, daterange.Unbounded)
		require.NoError(t, err)
		require.Len(t, statement, 3)
		assert.Equal(t, "2024-03-02", statement[1].DueOn.String())
		assert.True(t, statement[2].Amount.Equal(decimal.RequireFromString("33.34")))

		paidOn := daterange.MustParse("2024-02-01")
		paid, err := store.SetInstallmentPaid(ctx, owner, statement[0].ID, true, &paidOn, time.Now().UTC())
		require.NoError(t, err)
		assert.True(t, paid.Paid)
		assert.Equal(t, "2024-02-01", paid.PaidOn.String())

		_, err = store.SetInstallmentPaid(ctx, stranger, statement[0].ID, false, nil, time.Now().UTC())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, store.DeleteCard(ctx, owner, card.ID))
		kept, err := store.GetExpense(ctx, owner, e.ID)
		require.NoError(t, err)
		assert.Nil(t, kept.CardID)
		require.NoError(t, store.DeleteExpense(ctx, owner, e.ID))
	})

	t.Run("subscription", func(t *testing.T) {
		customer := "cus_" + owner[:8]
		require.NoError(t, store.SetBillingCustomer(ctx, owner, customer, time.Now().UTC()))
		sub := "sub_" + owner[:8]
		n, err := store.UpdateSubscriptionByCustomer(ctx, customer, models.SubscriptionActive, &sub, time.Now().UTC())
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		u, err := store.GetUser(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionActive, u.SubscriptionStatus)
	})

	t.Run("diagnose", func(t *testing.T) {
		for _, st := range store.Diagnose(ctx) {
			assert.True(t, st.Exists, st.Name)
			assert.Empty(t, st.Error, st.Name)
		}
	})
}
