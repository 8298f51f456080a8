// Package tui provides the terminal dashboard for workreport.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workreport/internal/model"
)

// Styles are the dashboard styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Project  lipgloss.Style
	Worksite lipgloss.Style
	Hours    lipgloss.Style
	Note     lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Card is the bordered box around every dashboard card.
	Card lipgloss.Style

	bar      lipgloss.Style
	barEmpty lipgloss.Style
}

// NewStyles builds the dashboard styles for a theme.
func NewStyles(theme model.Theme) Styles {
	c := theme.Colors
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Primary)),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextSecondary)),
		Project: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Primary)),
		Worksite: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)),
		Hours: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Secondary)),
		Note: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(c.TextSecondary)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextSecondary)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Warning)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Success)),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Accent)),
		HelpDesc: lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextSecondary)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
		bar:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Success)),
		barEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextSecondary)),
	}
}

// ProgressBar creates a progress bar string.
func (s Styles) ProgressBar(percentage float64, width int) string {
	percentage = min(max(percentage, 0), 100)

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return s.bar.Render(strings.Repeat("█", filled)) +
		s.barEmpty.Render(strings.Repeat("░", empty))
}

// cardWidth is the outer width of a card of the given size in a dashboard of
// total columns. Small cards take a third, medium half, large the full row.
func cardWidth(size model.CardSize, total int) int {
	switch size {
	case model.SizeSmall:
		return max(total/3, 24)
	case model.SizeMedium:
		return max(total/2, 32)
	default:
		return max(total, 32)
	}
}
