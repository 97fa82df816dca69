package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultIcon is used when a category references an unknown icon name.
const DefaultIcon = "DollarSign"

// availableIcons is the fixed set of symbolic icon identifiers a category
// may carry. Unknown names fall back to DefaultIcon at render time.
var availableIcons = map[string]struct{}{
	"ShoppingCart": {},
	"Home":         {},
	"Car":          {},
	"Utensils":     {},
	"Heart":        {},
	"Plane":        {},
	"Briefcase":    {},
	"BookOpen":     {},
	"Gift":         {},
	"Wrench":       {},
	"DollarSign":   {},
	"BarChart2":    {},
	"Building":     {},
	"Activity":     {},
	"Shirt":        {},
	"Coffee":       {},
	"Tv":           {},
	"Dumbbell":     {},
	"Pill":         {},
}

// KnownIcon reports whether name is in the supported icon set.
func KnownIcon(name string) bool {
	_, ok := availableIcons[name]
	return ok
}

// IconOrDefault returns name if it is a known icon, DefaultIcon otherwise.
func IconOrDefault(name string) string {
	if KnownIcon(name) {
		return name
	}
	return DefaultIcon
}

// Category is a user-defined label for grouping transactions.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Validate checks the category's field constraints.
func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if n := utf8.RuneCountInString(name); n == 0 || n > 50 {
		return fmt.Errorf("category name must be 1-50 characters, got %d", n)
	}
	if c.Icon == "" {
		return fmt.Errorf("category icon cannot be empty")
	}
	return nil
}

// DefaultCategories returns the seed categories for a fresh store.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food & Dining", Icon: "Utensils"},
		{ID: "transport", Name: "Transportation", Icon: "Car"},
		{ID: "housing", Name: "Housing", Icon: "Home"},
		{ID: "utilities", Name: "Utilities", Icon: "Wrench"},
		{ID: "shopping", Name: "Shopping", Icon: "ShoppingCart"},
		{ID: "entertainment", Name: "Entertainment", Icon: "Tv"},
		{ID: "health", Name: "Health & Wellness", Icon: "Heart"},
		{ID: "personal_care", Name: "Personal Care", Icon: "Shirt"},
		{ID: "education", Name: "Education", Icon: "BookOpen"},
		{ID: "gifts", Name: "Gifts & Donations", Icon: "Gift"},
		{ID: "travel", Name: "Travel", Icon: "Plane"},
		{ID: "groceries", Name: "Groceries", Icon: "ShoppingCart"},
		{ID: "subscriptions", Name: "Subscriptions", Icon: "Activity"},
		{ID: "other", Name: "Other", Icon: "DollarSign"},
	}
}
