package model

import "fmt"

// Budget is a monthly spending ceiling assigned to exactly one category.
// At most one budget may exist per category.
type Budget struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
}

// Validate checks the budget's field constraints.
func (b *Budget) Validate() error {
	if b.CategoryID == "" {
		return fmt.Errorf("budget category is required")
	}
	if b.Amount <= 0 {
		return fmt.Errorf("budget amount must be positive, got %.2f", b.Amount)
	}
	return nil
}
