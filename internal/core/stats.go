package core

import "time"

// Stats aggregates a set of items for the dashboard: overall totals,
// per-category sums split by type, and a month-by-month series.
type Stats struct {
	TotalIncome        float64              `json:"totalIncome"`
	TotalExpenses      float64              `json:"totalExpenses"`
	NetBalance         float64              `json:"netBalance"`
	IncomeByCategory   map[Category]float64 `json:"incomeByCategory"`
	ExpensesByCategory map[Category]float64 `json:"expensesByCategory"`
	Monthly            []MonthlyStats       `json:"monthlyData"`
}

// MonthlyStats holds the income/expense totals for one calendar month.
type MonthlyStats struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// ComputeStats aggregates the items. The monthly series covers the last
// `months` calendar months up to and including the month of `now`, oldest
// first; months with no items still appear with zero totals.
func ComputeStats(items []Item, now time.Time, months int) Stats {
	stats := Stats{
		IncomeByCategory:   map[Category]float64{},
		ExpensesByCategory: map[Category]float64{},
	}

	for _, item := range items {
		switch item.Type {
		case TypeIncome:
			stats.TotalIncome += item.Amount
			stats.IncomeByCategory[item.Category] += item.Amount
		case TypeExpense:
			stats.TotalExpenses += item.Amount
			stats.ExpensesByCategory[item.Category] += item.Amount
		}
	}
	stats.NetBalance = stats.TotalIncome - stats.TotalExpenses

	if months <= 0 {
		return stats
	}

	type bucket struct {
		income   float64
		expenses float64
	}
	buckets := map[string]*bucket{}
	keys := make([]string, 0, months)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		keys = append(keys, key)
		buckets[key] = &bucket{}
	}

	for _, item := range items {
		b, ok := buckets[item.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch item.Type {
		case TypeIncome:
			b.income += item.Amount
		case TypeExpense:
			b.expenses += item.Amount
		}
	}

	for _, key := range keys {
		b := buckets[key]
		stats.Monthly = append(stats.Monthly, MonthlyStats{
			Month:    key,
			Income:   b.income,
			Expenses: b.expenses,
			Balance:  b.income - b.expenses,
		})
	}

	return stats
}
