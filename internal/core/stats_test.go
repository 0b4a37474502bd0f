package core

import (
	"testing"
	"time"
)

func TestComputeStats_Totals(t *testing.T) {
	now := day(2024, 2, 20)
	stats := ComputeStats(testItems(), now, 0)

	if stats.TotalIncome != 6200 {
		t.Errorf("TotalIncome = %v, want 6200", stats.TotalIncome)
	}
	if stats.TotalExpenses != 1920.50 {
		t.Errorf("TotalExpenses = %v, want 1920.50", stats.TotalExpenses)
	}
	if stats.NetBalance != 6200-1920.50 {
		t.Errorf("NetBalance = %v, want %v", stats.NetBalance, 6200-1920.50)
	}
	if stats.IncomeByCategory[CategorySalary] != 5000 {
		t.Errorf("IncomeByCategory[salary] = %v, want 5000", stats.IncomeByCategory[CategorySalary])
	}
	if stats.ExpensesByCategory[CategoryHousing] != 1500 {
		t.Errorf("ExpensesByCategory[housing] = %v, want 1500", stats.ExpensesByCategory[CategoryHousing])
	}
	if len(stats.Monthly) != 0 {
		t.Errorf("Monthly series length = %d, want 0 when months=0", len(stats.Monthly))
	}
}

func TestComputeStats_MonthlySeries(t *testing.T) {
	now := day(2024, 2, 20)
	stats := ComputeStats(testItems(), now, 3)

	if len(stats.Monthly) != 3 {
		t.Fatalf("Monthly series length = %d, want 3", len(stats.Monthly))
	}

	wantMonths := []string{"2023-12", "2024-01", "2024-02"}
	for i, want := range wantMonths {
		if stats.Monthly[i].Month != want {
			t.Errorf("Monthly[%d].Month = %q, want %q", i, stats.Monthly[i].Month, want)
		}
	}

	// December had no items; it still appears with zero totals
	if stats.Monthly[0].Income != 0 || stats.Monthly[0].Expenses != 0 {
		t.Errorf("Monthly[0] = %+v, want zero totals", stats.Monthly[0])
	}

	jan := stats.Monthly[1]
	if jan.Income != 5000 || jan.Expenses != 1500 || jan.Balance != 3500 {
		t.Errorf("January = %+v, want income 5000, expenses 1500, balance 3500", jan)
	}

	feb := stats.Monthly[2]
	if feb.Income != 1200 || feb.Expenses != 420.50 {
		t.Errorf("February = %+v, want income 1200, expenses 420.50", feb)
	}
}

func TestComputeStats_EmptyItems(t *testing.T) {
	stats := ComputeStats(nil, time.Now(), 6)

	if stats.TotalIncome != 0 || stats.TotalExpenses != 0 || stats.NetBalance != 0 {
		t.Errorf("ComputeStats(nil) totals = %+v, want zeros", stats)
	}
	if len(stats.Monthly) != 6 {
		t.Errorf("Monthly series length = %d, want 6", len(stats.Monthly))
	}
}
