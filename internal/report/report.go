// Package report computes derived views over snapshots of the domain
// collections. Every function is pure: same inputs, same outputs, no I/O.
package report

import (
	"sort"

	"github.com/smartspend/smartspend/internal/model"
)

// UncategorizedLabel is the display name for spend with no category.
const UncategorizedLabel = "Uncategorized"

// topSpendLimit caps the category spend ranking.
const topSpendLimit = 5

// recentLimit caps the recent transaction list in a Summary.
const recentLimit = 5

// CategorySpend is one entry of the monthly spend ranking.
type CategorySpend struct {
	Name   string
	Amount float64
}

// BudgetStatus is a budget with its monthly progress.
type BudgetStatus struct {
	Budget          model.Budget
	CategoryName    string
	Icon            string
	Spent           float64
	ProgressPercent float64
	OverspendAmount float64
	Overspent       bool
}

// Summary is the dashboard snapshot for one calendar month.
type Summary struct {
	Month       model.Date
	TotalSpend  float64
	TotalBudget float64
	Remaining   float64
	TopSpend    []CategorySpend
	Budgets     []BudgetStatus
	Recent      []model.Transaction
}

// MonthWindow returns the first and last calendar day of the month
// containing ref, both inclusive.
func MonthWindow(ref model.Date) (first, last model.Date) {
	first = model.NewDate(ref.Year(), ref.Month(), 1)
	last = model.NewDate(ref.Year(), ref.Month()+1, 1).AddDays(-1)
	return first, last
}

// MonthlyTransactions filters txns to those dated within the calendar month
// containing ref, inclusive both ends.
func MonthlyTransactions(txns []model.Transaction, ref model.Date) []model.Transaction {
	first, last := MonthWindow(ref)
	var monthly []model.Transaction
	for _, t := range txns {
		if t.Date.Before(first) || t.Date.After(last) {
			continue
		}
		monthly = append(monthly, t)
	}
	return monthly
}

// TotalSpend sums transaction amounts.
func TotalSpend(txns []model.Transaction) float64 {
	var total float64
	for _, t := range txns {
		total += t.Amount
	}
	return total
}

// TotalBudget sums budget amounts across all budgets, whether or not any
// spending occurred.
func TotalBudget(budgets []model.Budget) float64 {
	var total float64
	for _, b := range budgets {
		total += b.Amount
	}
	return total
}

// Remaining is the budget left after spending. Negative means overspend.
func Remaining(totalBudget, totalSpend float64) float64 {
	return totalBudget - totalSpend
}

// SpendByCategory groups txns by category, sums each group, drops zero
// groups, and returns at most five entries sorted descending by sum. Ties
// keep category declaration order, with uncategorized spend ranked last
// among equals under the Uncategorized label.
func SpendByCategory(txns []model.Transaction, categories []model.Category) []CategorySpend {
	sums := make(map[string]float64)
	var uncategorized float64
	for _, t := range txns {
		if t.CategoryID == nil {
			uncategorized += t.Amount
			continue
		}
		sums[*t.CategoryID] += t.Amount
	}

	// Build groups in declaration order so the stable sort preserves it
	// for equal sums.
	var ranked []CategorySpend
	for _, cat := range categories {
		if amount := sums[cat.ID]; amount > 0 {
			ranked = append(ranked, CategorySpend{Name: cat.Name, Amount: amount})
			delete(sums, cat.ID)
		}
	}
	// Spend referencing ids with no matching category; should not happen
	// if cascade rules are followed.
	for _, amount := range sums {
		if amount > 0 {
			uncategorized += amount
		}
	}
	if uncategorized > 0 {
		ranked = append(ranked, CategorySpend{Name: UncategorizedLabel, Amount: uncategorized})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})

	if len(ranked) > topSpendLimit {
		ranked = ranked[:topSpendLimit]
	}
	return ranked
}

// BudgetProgress computes the monthly status of one budget against the
// month's transactions. ProgressPercent is clamped to [0, 100];
// OverspendAmount is zero unless spend exceeds the budget.
func BudgetProgress(budget model.Budget, monthly []model.Transaction) (spent, progressPercent, overspendAmount float64) {
	for _, t := range monthly {
		if t.CategoryID != nil && *t.CategoryID == budget.CategoryID {
			spent += t.Amount
		}
	}

	if budget.Amount > 0 {
		progressPercent = spent / budget.Amount * 100
		if progressPercent > 100 {
			progressPercent = 100
		}
		if progressPercent < 0 {
			progressPercent = 0
		}
	}

	if spent > budget.Amount {
		overspendAmount = spent - budget.Amount
	}
	return spent, progressPercent, overspendAmount
}

// Summarize computes the full dashboard snapshot for the month containing
// ref.
func Summarize(txns []model.Transaction, categories []model.Category, budgets []model.Budget, ref model.Date) Summary {
	monthly := MonthlyTransactions(txns, ref)

	totalSpend := TotalSpend(monthly)
	totalBudget := TotalBudget(budgets)

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent, percent, overspend := BudgetProgress(b, monthly)
		status := BudgetStatus{
			Budget:          b,
			CategoryName:    UncategorizedLabel,
			Icon:            model.DefaultIcon,
			Spent:           spent,
			ProgressPercent: percent,
			OverspendAmount: overspend,
			Overspent:       overspend > 0,
		}
		for _, cat := range categories {
			if cat.ID == b.CategoryID {
				status.CategoryName = cat.Name
				status.Icon = model.IconOrDefault(cat.Icon)
				break
			}
		}
		statuses = append(statuses, status)
	}

	recent := txns
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Summary{
		Month:       ref,
		TotalSpend:  totalSpend,
		TotalBudget: totalBudget,
		Remaining:   Remaining(totalBudget, totalSpend),
		TopSpend:    SpendByCategory(monthly, categories),
		Budgets:     statuses,
		Recent:      recent,
	}
}
