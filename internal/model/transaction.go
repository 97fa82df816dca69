package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Transaction is a single recorded expense. CategoryID is nil when the
// expense is uncategorized.
type Transaction struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        Date    `json:"date"`
	CategoryID  *string `json:"categoryId"`
}

// Validate checks the transaction's field constraints.
func (t *Transaction) Validate() error {
	desc := strings.TrimSpace(t.Description)
	if n := utf8.RuneCountInString(desc); n < 2 || n > 100 {
		return fmt.Errorf("transaction description must be 2-100 characters, got %d", n)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive, got %.2f", t.Amount)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
