// Package aggregate reduces dated, categorized records into dashboard totals.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/models"
)

// Item is one categorized value.
type Item struct {
	Category string
	Value    decimal.Decimal
}

// Totals is the scalar sum plus the per-category breakdown. Categories absent
// from the input have no key.
type Totals struct {
	Total      decimal.Decimal
	ByCategory map[string]decimal.Decimal
}

func Summarize(items []Item) Totals {
	out := Totals{Total: decimal.Zero, ByCategory: make(map[string]decimal.Decimal)}
	for _, it := range items {
		out.Total = out.Total.Add(it.Value)
		out.ByCategory[it.Category] = out.ByCategory[it.Category].Add(it.Value)
	}
	return out
}

func FromEntries(entries []models.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Category: string(e.Category), Value: e.Amount}
	}
	return items
}

func FromExpenses(expenses []models.Expense) []Item {
	items := make([]Item, len(expenses))
	for i, e := range expenses {
		items[i] = Item{Category: string(e.Category), Value: e.Amount}
	}
	return items
}
