package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/financas-be/internal/aggregate"
	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/models/dto"
)

// Dashboard totals entries and expenses over the resolved period. The two
// reads are independent and run concurrently; either failing fails the call.
func (s *Records) Dashboard(ctx context.Context, ownerID string, q daterange.Query) (dto.Dashboard, error) {
	r, err := s.resolve(q)
	if err != nil {
		return dto.Dashboard{}, err
	}

	var (
		entries  []models.Entry
		expenses []models.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if entries, err = s.store.ListEntries(gctx, ownerID, r); err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = s.store.ListExpenses(gctx, ownerID, r); err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.Dashboard{}, err
	}

	income := aggregate.Summarize(aggregate.FromEntries(entries))
	spent := aggregate.Summarize(aggregate.FromExpenses(expenses))

	return dto.Dashboard{
		TotalIncome:        income.Total,
		TotalExpenses:      spent.Total,
		Balance:            income.Total.Sub(spent.Total),
		IncomeByCategory:   income.ByCategory,
		ExpensesByCategory: spent.ByCategory,
		Entries:            entries,
		Expenses:           expenses,
	}, nil
}
