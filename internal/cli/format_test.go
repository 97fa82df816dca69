package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{4.5, "$4.50"},
		{1234.567, "$1234.57"},
		{-50, "-$50.00"},
		{-0.01, "-$0.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
	}
}

func TestIconGlyph(t *testing.T) {
	assert.Equal(t, "🚗", IconGlyph("Car"))
	assert.Equal(t, IconGlyph("DollarSign"), IconGlyph("NoSuchIcon"), "unknown icons fall back")
}

func TestProgressBar(t *testing.T) {
	empty := ProgressBar(0, false)
	assert.Equal(t, progressBarWidth, strings.Count(empty, "░"))
	assert.NotContains(t, empty, "█")

	full := ProgressBar(100, false)
	assert.Equal(t, progressBarWidth, strings.Count(full, "█"))
	assert.NotContains(t, full, "░")

	half := ProgressBar(50, false)
	assert.Equal(t, progressBarWidth/2, strings.Count(half, "█"))

	// Out-of-range input clamps rather than panics
	assert.Equal(t, progressBarWidth, strings.Count(ProgressBar(250, true), "█"))
	assert.NotContains(t, ProgressBar(-10, false), "█")
}
