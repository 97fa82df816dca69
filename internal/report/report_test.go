package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartspend/smartspend/internal/model"
)

func txn(desc string, amount float64, date model.Date, categoryID string) model.Transaction {
	t := model.Transaction{Description: desc, Amount: amount, Date: date}
	if categoryID != "" {
		t.CategoryID = &categoryID
	}
	return t
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		ref   model.Date
		first string
		last  string
	}{
		{model.NewDate(2024, time.March, 15), "2024-03-01", "2024-03-31"},
		{model.NewDate(2024, time.February, 1), "2024-02-01", "2024-02-29"},
		{model.NewDate(2023, time.February, 28), "2023-02-01", "2023-02-28"},
		{model.NewDate(2024, time.December, 31), "2024-12-01", "2024-12-31"},
		{model.NewDate(2024, time.April, 30), "2024-04-01", "2024-04-30"},
	}

	for _, tt := range tests {
		first, last := MonthWindow(tt.ref)
		assert.Equal(t, tt.first, first.String(), "first day for %s", tt.ref)
		assert.Equal(t, tt.last, last.String(), "last day for %s", tt.ref)
	}
}

func TestMonthlyTransactions_BoundariesInclusive(t *testing.T) {
	txns := []model.Transaction{
		txn("last of feb", 1, model.NewDate(2024, time.February, 29), ""),
		txn("first of march", 2, model.NewDate(2024, time.March, 1), ""),
		txn("mid march", 3, model.NewDate(2024, time.March, 15), ""),
		txn("last of march", 4, model.NewDate(2024, time.March, 31), ""),
		txn("first of april", 5, model.NewDate(2024, time.April, 1), ""),
	}

	monthly := MonthlyTransactions(txns, model.NewDate(2024, time.March, 10))
	require.Len(t, monthly, 3)
	assert.Equal(t, "first of march", monthly[0].Description)
	assert.Equal(t, "last of march", monthly[2].Description)
}

func TestTotalSpend(t *testing.T) {
	assert.Zero(t, TotalSpend(nil))

	txns := []model.Transaction{
		txn("a", 10.50, model.NewDate(2024, time.March, 1), ""),
		txn("b", 4.25, model.NewDate(2024, time.March, 2), ""),
	}
	assert.InDelta(t, 14.75, TotalSpend(txns), 0.001)
}

func TestRemaining(t *testing.T) {
	assert.InDelta(t, 50, Remaining(200, 150), 0.001)
	assert.InDelta(t, -50, Remaining(200, 250), 0.001, "overspend is negative")
	assert.Zero(t, Remaining(0, 0))
}

func TestSpendByCategory(t *testing.T) {
	categories := []model.Category{
		{ID: "food", Name: "Food & Dining", Icon: "Utensils"},
		{ID: "transport", Name: "Transportation", Icon: "Car"},
		{ID: "housing", Name: "Housing", Icon: "Home"},
	}
	march := model.NewDate(2024, time.March, 10)

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SpendByCategory(nil, categories))
	})

	t.Run("sorted descending", func(t *testing.T) {
		txns := []model.Transaction{
			txn("bus", 20, march, "transport"),
			txn("rent", 1200, march, "housing"),
			txn("lunch", 15, march, "food"),
			txn("dinner", 35, march, "food"),
		}
		got := SpendByCategory(txns, categories)
		require.Len(t, got, 3)
		assert.Equal(t, CategorySpend{Name: "Housing", Amount: 1200}, got[0])
		assert.Equal(t, CategorySpend{Name: "Food & Dining", Amount: 50}, got[1])
		assert.Equal(t, CategorySpend{Name: "Transportation", Amount: 20}, got[2])
	})

	t.Run("uncategorized grouped under label", func(t *testing.T) {
		txns := []model.Transaction{
			txn("mystery", 40, march, ""),
			txn("also mystery", 10, march, ""),
			txn("lunch", 15, march, "food"),
		}
		got := SpendByCategory(txns, categories)
		require.Len(t, got, 2)
		assert.Equal(t, CategorySpend{Name: UncategorizedLabel, Amount: 50}, got[0])
	})

	t.Run("dangling category reference counts as uncategorized", func(t *testing.T) {
		txns := []model.Transaction{
			txn("orphan", 30, march, "deleted-category"),
		}
		got := SpendByCategory(txns, categories)
		require.Len(t, got, 1)
		assert.Equal(t, UncategorizedLabel, got[0].Name)
	})

	t.Run("capped at five entries", func(t *testing.T) {
		var many []model.Category
		var txns []model.Transaction
		for i := 0; i < 8; i++ {
			id := fmt.Sprintf("cat%d", i)
			many = append(many, model.Category{ID: id, Name: id, Icon: "DollarSign"})
			txns = append(txns, txn(id, float64(100-i), march, id))
		}
		got := SpendByCategory(txns, many)
		require.Len(t, got, 5)
		assert.Equal(t, "cat0", got[0].Name)
		assert.Equal(t, "cat4", got[4].Name)
	})

	t.Run("ties keep declaration order", func(t *testing.T) {
		txns := []model.Transaction{
			txn("bus", 25, march, "transport"),
			txn("lunch", 25, march, "food"),
		}
		got := SpendByCategory(txns, categories)
		require.Len(t, got, 2)
		assert.Equal(t, "Food & Dining", got[0].Name)
		assert.Equal(t, "Transportation", got[1].Name)
	})
}

func TestBudgetProgress(t *testing.T) {
	budget := model.Budget{ID: "b1", CategoryID: "food", Amount: 200}
	march := model.NewDate(2024, time.March, 10)

	t.Run("no spending", func(t *testing.T) {
		spent, percent, overspend := BudgetProgress(budget, nil)
		assert.Zero(t, spent)
		assert.Zero(t, percent)
		assert.Zero(t, overspend)
	})

	t.Run("partial", func(t *testing.T) {
		spent, percent, overspend := BudgetProgress(budget, []model.Transaction{
			txn("lunch", 50, march, "food"),
			txn("bus", 30, march, "transport"),
		})
		assert.InDelta(t, 50, spent, 0.001, "other categories do not count")
		assert.InDelta(t, 25, percent, 0.001)
		assert.Zero(t, overspend)
	})

	t.Run("overspent clamps percent", func(t *testing.T) {
		spent, percent, overspend := BudgetProgress(budget, []model.Transaction{
			txn("groceries", 250, march, "food"),
		})
		assert.InDelta(t, 250, spent, 0.001)
		assert.InDelta(t, 100, percent, 0.001, "progress never exceeds 100")
		assert.InDelta(t, 50, overspend, 0.001)
	})

	t.Run("exactly at budget", func(t *testing.T) {
		_, percent, overspend := BudgetProgress(budget, []model.Transaction{
			txn("groceries", 200, march, "food"),
		})
		assert.InDelta(t, 100, percent, 0.001)
		assert.Zero(t, overspend)
	})
}

func TestSummarize(t *testing.T) {
	categories := []model.Category{
		{ID: "food", Name: "Food & Dining", Icon: "Utensils"},
		{ID: "transport", Name: "Transportation", Icon: "Car"},
	}
	budgets := []model.Budget{
		{ID: "b1", CategoryID: "food", Amount: 200},
		{ID: "b2", CategoryID: "transport", Amount: 100},
	}
	march := model.NewDate(2024, time.March, 15)
	txns := []model.Transaction{
		txn("groceries", 250, model.NewDate(2024, time.March, 5), "food"),
		txn("bus pass", 40, model.NewDate(2024, time.March, 3), "transport"),
		txn("last month", 500, model.NewDate(2024, time.February, 20), "food"),
	}

	s := Summarize(txns, categories, budgets, march)

	assert.InDelta(t, 290, s.TotalSpend, 0.001, "other months are excluded")
	assert.InDelta(t, 300, s.TotalBudget, 0.001)
	assert.InDelta(t, 10, s.Remaining, 0.001)

	require.Len(t, s.TopSpend, 2)
	assert.Equal(t, "Food & Dining", s.TopSpend[0].Name)

	require.Len(t, s.Budgets, 2)
	food := s.Budgets[0]
	assert.Equal(t, "Food & Dining", food.CategoryName)
	assert.Equal(t, "Utensils", food.Icon)
	assert.InDelta(t, 250, food.Spent, 0.001)
	assert.InDelta(t, 100, food.ProgressPercent, 0.001)
	assert.InDelta(t, 50, food.OverspendAmount, 0.001)
	assert.True(t, food.Overspent)

	transport := s.Budgets[1]
	assert.InDelta(t, 40, transport.Spent, 0.001)
	assert.InDelta(t, 40, transport.ProgressPercent, 0.001)
	assert.False(t, transport.Overspent)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil, model.NewDate(2024, time.March, 15))
	assert.Zero(t, s.TotalSpend)
	assert.Zero(t, s.TotalBudget)
	assert.Zero(t, s.Remaining)
	assert.Empty(t, s.TopSpend)
	assert.Empty(t, s.Budgets)
	assert.Empty(t, s.Recent)
}

func TestSummarize_BudgetForDeletedCategory(t *testing.T) {
	budgets := []model.Budget{{ID: "b1", CategoryID: "gone", Amount: 100}}
	s := Summarize(nil, nil, budgets, model.NewDate(2024, time.March, 15))
	require.Len(t, s.Budgets, 1)
	assert.Equal(t, UncategorizedLabel, s.Budgets[0].CategoryName)
	assert.Equal(t, model.DefaultIcon, s.Budgets[0].Icon)
}
