package cli

import (
	"fmt"
	"strings"
)

// progressBarWidth is the character width of rendered progress bars.
const progressBarWidth = 24

// iconGlyphs maps symbolic category icon names to terminal glyphs.
var iconGlyphs = map[string]string{
	"ShoppingCart": "🛒",
	"Home":         "🏠",
	"Car":          "🚗",
	"Utensils":     "🍴",
	"Heart":        "❤️",
	"Plane":        "✈️",
	"Briefcase":    "💼",
	"BookOpen":     "📖",
	"Gift":         "🎁",
	"Wrench":       "🔧",
	"DollarSign":   "💲",
	"BarChart2":    "📊",
	"Building":     "🏢",
	"Activity":     "📈",
	"Shirt":        "👕",
	"Coffee":       "☕",
	"Tv":           "📺",
	"Dumbbell":     "🏋️",
	"Pill":         "💊",
}

// IconGlyph returns the terminal glyph for a symbolic icon name.
func IconGlyph(name string) string {
	if glyph, ok := iconGlyphs[name]; ok {
		return glyph
	}
	return iconGlyphs["DollarSign"]
}

// FormatCurrency renders an amount with a currency symbol. Negative amounts
// keep their sign in front of the symbol.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// ProgressBar renders a fixed-width bar for a percentage in [0, 100].
// Overspent bars render in the error color.
func ProgressBar(percent float64, overspent bool) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * progressBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

	if overspent {
		return ErrorStyle.Render(bar)
	}
	return SuccessStyle.Render(bar)
}
