package output

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Summary is the statistics view: report figures plus registry sizes.
type Summary struct {
	storage.Stats
	Colleagues int `json:"colleagues"`
	Worksites  int `json:"worksites"`
	Projects   int `json:"projects"`
}

// PrintReport prints one report in full.
func (c *CLIFormatter) PrintReport(r *model.WorkReport) {
	c.Printf("%s  %s\n", c.ProjectName(r.Project), c.render(c.styles.Muted, r.ID))
	c.Field("Date", FormatDay(r.Date))
	c.Field("Time", FormatSpan(r.StartTime, r.EndTime))
	c.Field("Break", fmt.Sprintf("%s min", worktime.FormatDecimal(r.BreakMinutes, 0)))
	c.Field("Hours", c.Hours(worktime.FormatHours(r.Hours)))
	c.Field("Worksite", c.Accent(r.Worksite))
	c.Field("Colleagues", strings.Join(r.ColleagueNames(), ", "))
	c.Field("Created", FormatTimestamp(r.CreatedAt))
	if r.Description != "" {
		c.Println()
		for _, line := range strings.Split(r.Description, "\n") {
			c.Println("  " + c.Note(line))
		}
	}
}

// PrintReports prints reports as a table followed by the total hours.
func (c *CLIFormatter) PrintReports(reports []*model.WorkReport) {
	if len(reports) == 0 {
		c.Muted("No reports found.")
		c.Muted("Use 'workreport report add' to log work.")
		return
	}

	descWidth := max(12, c.Width()-90)
	rows := make([]TableRow, 0, len(reports))
	var total float64
	for _, r := range reports {
		total += r.Hours
		rows = append(rows, TableRow{Columns: []string{
			FormatDay(r.Date),
			FormatSpan(r.StartTime, r.EndTime),
			c.Hours(worktime.FormatHours(r.Hours)),
			c.ProjectName(Truncate(r.Project, 24)),
			Truncate(r.Worksite, 18),
			Truncate(r.Description, descWidth),
			c.render(c.styles.Muted, shortID(r.ID)),
		}})
	}

	c.PrintTable([]string{"DATE", "TIME", "HOURS", "PROJECT", "WORKSITE", "DESCRIPTION", "ID"}, rows)
	c.Println()
	c.Printf("%s, %s total\n", Plural(len(reports), "report"), c.Hours(worktime.FormatHours(total)))
}

// shortID keeps list output narrow. Commands accept any unique id prefix.
func shortID(id string) string {
	if len(id) > 13 {
		return id[:13]
	}
	return id
}

// PrintSummary prints the statistics view.
func (c *CLIFormatter) PrintSummary(s Summary) {
	c.Title("Statistics")
	c.Field("Reports", fmt.Sprint(s.TotalReports))
	c.Field("Total hours", c.Hours(worktime.FormatHours(s.TotalHours)))
	c.Field("This week", c.Hours(worktime.FormatHours(s.WeekHours)))
	c.Field("Today", Plural(s.TodayCount, "report"))
	c.Field("Colleagues", fmt.Sprint(s.Colleagues))
	c.Field("Worksites", fmt.Sprint(s.Worksites))
	c.Field("Projects", fmt.Sprint(s.Projects))
}

// PrintColleagues prints the colleague registry.
func (c *CLIFormatter) PrintColleagues(list []*model.Colleague) {
	if len(list) == 0 {
		c.Muted("No colleagues found.")
		return
	}
	rows := make([]TableRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, TableRow{Columns: []string{c.ProjectName(p.Name), p.Department, p.Email, c.render(c.styles.Muted, p.ID)}})
	}
	c.PrintTable([]string{"NAME", "DEPARTMENT", "EMAIL", "ID"}, rows)
}

// PrintWorksites prints the worksite registry.
func (c *CLIFormatter) PrintWorksites(list []*model.Worksite) {
	if len(list) == 0 {
		c.Muted("No worksites found.")
		return
	}
	rows := make([]TableRow, 0, len(list))
	for _, w := range list {
		rows = append(rows, TableRow{Columns: []string{c.ProjectName(w.Name), w.Address, Truncate(w.Description, 40), c.render(c.styles.Muted, w.ID)}})
	}
	c.PrintTable([]string{"NAME", "ADDRESS", "DESCRIPTION", "ID"}, rows)
}

// PrintProjects prints the project registry.
func (c *CLIFormatter) PrintProjects(list []*model.Project) {
	if len(list) == 0 {
		c.Muted("No projects found.")
		return
	}
	rows := make([]TableRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, TableRow{Columns: []string{
			c.ProjectName(p.Name),
			worktime.FormatHours(p.DefaultHours),
			Truncate(p.Description, 40),
			c.render(c.styles.Muted, p.ID),
		}})
	}
	c.PrintTable([]string{"NAME", "DEFAULT DAY", "DESCRIPTION", "ID"}, rows)
}

// PrintThemes lists themes, marking the active one and custom ones.
func (c *CLIFormatter) PrintThemes(themes []model.Theme, activeID string, isCustom func(string) bool) {
	rows := make([]TableRow, 0, len(themes))
	for _, t := range themes {
		mark := " "
		if t.ID == activeID {
			mark = c.render(c.styles.Success, "●")
		}
		kind := "built-in"
		if isCustom != nil && isCustom(t.ID) {
			kind = "custom"
		}
		rows = append(rows, TableRow{Columns: []string{mark, t.ID, t.Name, kind, c.Swatch(t.Colors.Primary)}})
	}
	c.PrintTable([]string{" ", "ID", "NAME", "KIND", "PRIMARY"}, rows)
}

// PrintTheme prints every color of a theme.
func (c *CLIFormatter) PrintTheme(t model.Theme) {
	c.Title(t.Name)
	colors := t.Colors
	for _, kv := range [][2]string{
		{"primary", colors.Primary}, {"secondary", colors.Secondary}, {"accent", colors.Accent},
		{"background", colors.Background}, {"surface", colors.Surface}, {"text", colors.Text},
		{"textSecondary", colors.TextSecondary}, {"border", colors.Border},
		{"success", colors.Success}, {"warning", colors.Warning}, {"error", colors.Error},
	} {
		c.Field(kv[0], c.Swatch(kv[1]))
	}
	c.Field("font", t.Typography.FontFamily)
	c.Field("radius", t.BorderRadius)
}

// PrintLayout prints the form fields and dashboard cards in display order.
func (c *CLIFormatter) PrintLayout(layout model.LayoutConfig) {
	visible := func(v bool) string {
		if v {
			return "shown"
		}
		return c.render(c.styles.Muted, "hidden")
	}

	c.Title("Form fields")
	fieldRows := make([]TableRow, 0, len(layout.FormFields))
	for _, f := range layout.SortedFields() {
		label := f.Label
		if f.Required {
			label += " *"
		}
		fieldRows = append(fieldRows, TableRow{Columns: []string{fmt.Sprint(f.Order), f.ID, label, string(f.Width), visible(f.Visible)}})
	}
	c.PrintTable([]string{"#", "ID", "LABEL", "WIDTH", "VISIBLE"}, fieldRows)

	c.Println()
	c.Title("Dashboard cards")
	cardRows := make([]TableRow, 0, len(layout.DashboardCards))
	for _, card := range layout.SortedCards() {
		cardRows = append(cardRows, TableRow{Columns: []string{fmt.Sprint(card.Order), card.ID, card.Name, string(card.Size), visible(card.Visible)}})
	}
	c.PrintTable([]string{"#", "ID", "NAME", "SIZE", "VISIBLE"}, cardRows)
}

// PrintIntegrity prints the result of a database health check.
func (c *CLIFormatter) PrintIntegrity(status *storage.RecoveryStatus) {
	for _, k := range status.Keys {
		switch {
		case !k.Present:
			c.Muted(fmt.Sprintf("- %s: empty", k.Key))
		case k.Valid:
			c.Success(fmt.Sprintf("%s: %s", k.Key, Plural(k.Records, "record")))
		default:
			c.Error(fmt.Sprintf("%s: %s", k.Key, k.Error))
		}
	}
	c.Println()
	if status.Healthy {
		c.Success("Database is healthy")
	} else {
		c.Warning("Database has unreadable data; affected collections load empty")
	}
}
