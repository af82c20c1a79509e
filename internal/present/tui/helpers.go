package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/eventwizard/internal/util"
)

// wrapText soft-wraps literal text to width. Rendered markup is already
// laid out and is returned unchanged.
func wrapText(s string, width int, markup bool) string {
	if markup || width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// eventTypeHint returns the best known event type for a partial input, or ""
// when nothing matches or the input already names it.
func eventTypeHint(input string, known []string) string {
	input = strings.TrimSpace(input)
	if input == "" || len(known) == 0 {
		return ""
	}
	matches := util.ScoreCompletions(input, known, 1)
	if len(matches) == 0 || strings.EqualFold(matches[0], input) {
		return ""
	}
	return matches[0]
}
