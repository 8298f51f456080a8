package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workreport/internal/model"
)

// Styles are the CLI styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Project  lipgloss.Style
	Accent   lipgloss.Style
	Hours    lipgloss.Style
	Note     lipgloss.Style
}

// NewStyles builds the CLI styles for a theme.
func NewStyles(theme model.Theme) Styles {
	c := theme.Colors
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Primary)),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextSecondary)),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Success)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Warning)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.TextSecondary)),
		Bold:     lipgloss.NewStyle().Bold(true),
		Project:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Primary)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)),
		Hours:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Secondary)),
		Note:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(c.TextSecondary)),
	}
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
	styles Styles
}

// NewCLIFormatter creates a new CLI formatter styled by f's theme.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	theme := f.Theme
	if theme.ID == "" {
		theme = model.DefaultThemes()[0]
	}
	return &CLIFormatter{Formatter: f, styles: NewStyles(theme)}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(c.styles.Title, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(c.styles.Success, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(c.styles.Warning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(c.styles.Error, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(c.styles.Muted, text))
}

// Field prints an indented "label: value" line.
func (c *CLIFormatter) Field(label, value string) {
	if value == "" {
		value = c.render(c.styles.Muted, "-")
	}
	c.Printf("  %s %s\n", c.render(c.styles.Subtitle, label+":"), value)
}

// ProjectName formats a project name.
func (c *CLIFormatter) ProjectName(name string) string {
	return c.render(c.styles.Project, name)
}

// Accent formats secondary highlighted text such as a worksite.
func (c *CLIFormatter) Accent(text string) string {
	return c.render(c.styles.Accent, text)
}

// Hours formats an hours figure.
func (c *CLIFormatter) Hours(text string) string {
	return c.render(c.styles.Hours, text)
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(c.styles.Note, text)
}

// Swatch renders a small block in the given hex color.
func (c *CLIFormatter) Swatch(hex string) string {
	if !c.IsColorEnabled() {
		return hex
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + hex
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table. Column widths are measured in cells, so
// styled and wide text line up.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
	}

	var header strings.Builder
	for i, h := range headers {
		header.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(c.styles.Bold, strings.TrimRight(header.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				line.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}

// Plural returns "1 report" or "3 reports".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
