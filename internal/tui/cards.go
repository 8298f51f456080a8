package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Shortcut is a dashboard key that points at a CLI command.
type Shortcut struct {
	Key     string
	Label   string
	Command string
}

// Shortcuts are listed by the navigation card in this order.
var Shortcuts = []Shortcut{
	{Key: "a", Label: "New report", Command: "workreport report add"},
	{Key: "l", Label: "Reports", Command: "workreport report list"},
	{Key: "c", Label: "Colleagues", Command: "workreport colleague list"},
	{Key: "w", Label: "Worksites", Command: "workreport worksite list"},
	{Key: "p", Label: "Projects", Command: "workreport project list"},
	{Key: "t", Label: "Design settings", Command: "workreport theme list"},
}

func findShortcut(key string) (Shortcut, bool) {
	for _, s := range Shortcuts {
		if s.Key == key {
			return s, true
		}
	}
	return Shortcut{}, false
}

// StatsCard shows the report statistics.
type StatsCard struct {
	Summary    output.Summary
	WeekTarget float64
	Width      int
}

// View renders the statistics card.
func (c *StatsCard) View(s Styles) string {
	var b strings.Builder

	b.WriteString(s.Title.Render("Statistics"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(s.Subtitle.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Reports", fmt.Sprint(c.Summary.TotalReports))
	row("Total", s.Hours.Render(worktime.FormatHours(c.Summary.TotalHours)))
	row("This week", s.Hours.Render(worktime.FormatHours(c.Summary.WeekHours)))
	row("Today", output.Plural(c.Summary.TodayCount, "report"))

	if c.WeekTarget > 0 {
		barWidth := max(c.Width-8, 10)
		pct := c.Summary.WeekHours / c.WeekTarget * 100
		b.WriteString("\n")
		b.WriteString(s.ProgressBar(pct, barWidth))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("%.0f%% of %s", pct, worktime.FormatHours(c.WeekTarget))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%s · %s · %s",
		output.Plural(c.Summary.Colleagues, "colleague"),
		output.Plural(c.Summary.Worksites, "worksite"),
		output.Plural(c.Summary.Projects, "project"))))

	return s.Card.Width(c.Width - 2).Render(b.String())
}

// NavigationCard lists the dashboard shortcuts.
type NavigationCard struct {
	Width int
}

// View renders the navigation card.
func (c *NavigationCard) View(s Styles) string {
	var b strings.Builder

	b.WriteString(s.Title.Render("Navigation"))
	b.WriteString("\n\n")

	items := make([]string, len(Shortcuts))
	for i, sc := range Shortcuts {
		items[i] = s.HelpKey.Render("["+sc.Key+"]") + " " + sc.Label
	}
	b.WriteString(strings.Join(items, "   "))

	return s.Card.Width(c.Width - 2).Render(b.String())
}

// RecentCard shows the most recently created reports.
type RecentCard struct {
	Reports []*model.WorkReport
	Width   int
}

// View renders the recent reports card.
func (c *RecentCard) View(s Styles) string {
	var b strings.Builder

	b.WriteString(s.Title.Render("Recent reports"))
	b.WriteString("\n")

	if len(c.Reports) == 0 {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("No reports yet. Press a to see how to add one."))
		return s.Card.Width(c.Width - 2).Render(b.String())
	}

	inner := max(c.Width-6, 20)
	for _, r := range c.Reports {
		b.WriteString("\n")
		b.WriteString(c.renderReport(s, r, inner))
	}
	return s.Card.Width(c.Width - 2).Render(b.String())
}

func (c *RecentCard) renderReport(s Styles, r *model.WorkReport, width int) string {
	head := s.Project.Render(output.Truncate(r.Project, width/2)) + "  " + s.Hours.Render(worktime.FormatHours(r.Hours))

	meta := output.FormatDay(r.Date) + " " + output.FormatSpan(r.StartTime, r.EndTime)
	if r.Worksite != "" {
		meta += " @ " + r.Worksite
	}

	lines := []string{head, s.Subtitle.Render(output.Truncate(meta, width))}
	if r.Description != "" {
		lines = append(lines, s.Note.Render(output.Truncate(r.Description, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// HelpBar renders the key help line.
func HelpBar(s Styles) string {
	keys := []struct{ key, desc string }{
		{"r", "refresh"},
		{"q", "quit"},
	}

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = s.HelpKey.Render(k.key) + " " + s.HelpDesc.Render(k.desc)
	}
	return lipgloss.NewStyle().MarginTop(1).Render(strings.Join(parts, "  •  "))
}
