package common

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

// TruncateName truncates a player name to the given display width.
func TruncateName(name string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(name) <= maxWidth {
		return name
	}
	return truncate.StringWithTail(name, uint(maxWidth), "…")
}

// FitName truncates then pads so columns line up with wide characters.
func FitName(name string, width int) string {
	return padding.String(TruncateName(name, width), uint(width))
}
