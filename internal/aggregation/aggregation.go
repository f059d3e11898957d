// Package aggregation derives chart-ready summaries from the transaction
// ledger.
//
// All functions are pure: they only read the transactions passed in and
// recompute the result in full on every call.
package aggregation

import (
	"github.com/budgetbook/backend/internal/models"
	"github.com/shopspring/decimal"
)

// MonthlyTotals buckets all transactions by calendar month and sums their
// amounts.
//
// The buckets are indexed January to December and independent of the year:
// transactions from different years in the same month are summed together.
func MonthlyTotals(transactions []models.Transaction) [12]decimal.Decimal {
	var totals [12]decimal.Decimal
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, t := range transactions {
		month := t.Date.Month() - 1
		totals[month] = totals[month].Add(t.Amount)
	}

	return totals
}

// CategoryTotal is a single {name, value} pair for charting.
type CategoryTotal struct {
	Name  string          `json:"name" example:"Food"`   // The category
	Value decimal.Decimal `json:"value" example:"73.12"` // Sum of all transaction amounts for the category
}

// CategoryTotals groups all transactions by their category string and sums
// their amounts. Grouping is case-sensitive.
//
// The totals are emitted in the order the categories first occur in the
// input. Callers must treat the order as display-only.
func CategoryTotals(transactions []models.Transaction) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)

	for _, t := range transactions {
		i, ok := index[t.Category]
		if !ok {
			index[t.Category] = len(totals)
			totals = append(totals, CategoryTotal{Name: t.Category, Value: t.Amount})
			continue
		}

		totals[i].Value = totals[i].Value.Add(t.Amount)
	}

	return totals
}
