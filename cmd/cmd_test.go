package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workreport/internal/config"
	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
)

// useTempDatabase points every command of the test at a fresh database
// directory.
func useTempDatabase(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "db")
	saved := *config.Global
	config.Global.Storage.Path = dir
	config.Global.Debug = false
	t.Cleanup(func() { *config.Global = saved })
	return dir
}

// resetFlags restores every flag of the command tree to its default, since
// cobra keeps flag state between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// run executes the command line and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// PersistentPostRunE is skipped when RunE fails.
	if ctx != nil {
		ctx.Close()
		ctx = nil
	}
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "workreport %s\n%s", strings.Join(args, " "), out)
	return out
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out := mustRun(t, append(args, "--format", "json")...)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

type reportResponse struct {
	Status string            `json:"status"`
	Report *model.WorkReport `json:"report"`
}

type reportsResponse struct {
	Reports    []*model.WorkReport `json:"reports"`
	TotalCount int                 `json:"total_count"`
	TotalHours float64             `json:"total_hours"`
}

type recordResponse[T any] struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	Record T      `json:"record"`
}

func addReport(t *testing.T, extra ...string) *model.WorkReport {
	t.Helper()
	args := append([]string{"report", "add",
		"--date", "2024-03-15", "--start", "8:00", "--end", "16:30", "--break", "30m",
		"--project", "Acme", "-d", "Pump maintenance"}, extra...)
	var resp reportResponse
	runJSON(t, &resp, args...)
	require.NotNil(t, resp.Report)
	return resp.Report
}

// =============================================================================
// Report Command Tests
// =============================================================================

func TestReportLifecycle(t *testing.T) {
	useTempDatabase(t)

	var colleague recordResponse[model.Colleague]
	runJSON(t, &colleague, "colleague", "add", "Ann", "--department", "Service")
	var project recordResponse[model.Project]
	runJSON(t, &project, "project", "add", "Acme GmbH")
	var site recordResponse[model.Worksite]
	runJSON(t, &site, "worksite", "add", "Harbour")

	report := addReport(t,
		"--project-id", project.Record.ID,
		"--worksite-id", site.Record.ID,
		"--colleague", "ann")
	assert.Equal(t, 8.0, report.Hours)
	assert.Equal(t, "Acme GmbH", report.Project)
	assert.Equal(t, "Harbour", report.Worksite)
	require.Len(t, report.Colleagues, 1)
	assert.Equal(t, "Service", report.Colleagues[0].Department)

	var list reportsResponse
	runJSON(t, &list, "report", "list")
	assert.Equal(t, 1, list.TotalCount)
	assert.Equal(t, 8.0, list.TotalHours)

	// Edit by id prefix; only the end time changes.
	var edited reportResponse
	runJSON(t, &edited, "report", "edit", report.ID[:13], "--end", "17:30")
	assert.Equal(t, report.ID, edited.Report.ID)
	assert.Equal(t, 9.0, edited.Report.Hours)
	assert.Equal(t, "Pump maintenance", edited.Report.Description)
	assert.Len(t, edited.Report.Colleagues, 1)

	// The report keeps its copy after the colleague is deleted.
	mustRun(t, "colleague", "delete", colleague.Record.ID)
	var shown reportResponse
	runJSON(t, &shown, "report", "show", report.ID)
	require.Len(t, shown.Report.Colleagues, 1)
	assert.Equal(t, "Ann", shown.Report.Colleagues[0].Name)

	out := mustRun(t, "report", "delete", report.ID, "--yes")
	assert.Contains(t, out, "Report deleted")

	runJSON(t, &list, "report", "list")
	assert.Equal(t, 0, list.TotalCount)
}

func TestReportAddCLIOutput(t *testing.T) {
	useTempDatabase(t)

	out := mustRun(t, "report", "add", "--date", "2024-03-15", "--start", "9am", "--end", "5pm",
		"--project", "Acme", "-d", "Survey")
	assert.Contains(t, out, "✓ Logged 8h 0m on Acme")
	assert.Contains(t, out, "Date: 2024-03-15")

	out = mustRun(t, "report", "add", "--date", "2024-03-15", "--start", "17:00", "--end", "9:00",
		"--project", "Acme", "-d", "Backwards")
	assert.Contains(t, out, "0h 0m")
	assert.Contains(t, out, "End time is before start time")
}

func TestReportAddValidation(t *testing.T) {
	useTempDatabase(t)

	tests := []struct {
		name     string
		args     []string
		sentinel error
	}{
		{"missing_description", []string{"--project", "Acme"}, nil},
		{"missing_project", []string{"-d", "Work"}, nil},
		{"bad_start", []string{"--project", "Acme", "-d", "Work", "--start", "25:99"}, errors.ErrInvalidTime},
		{"bad_break", []string{"--project", "Acme", "-d", "Work", "--break", "soon"}, errors.ErrInvalidDuration},
		{"bad_date", []string{"--project", "Acme", "-d", "Work", "--date", "blorp"}, errors.ErrInvalidDate},
		{"unknown_project_id", []string{"--project-id", "nope", "-d", "Work"}, errors.ErrProjectNotFound},
		{"unknown_colleague", []string{"--project", "Acme", "-d", "Work", "--colleague", "Nobody"}, errors.ErrColleagueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"report", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, errors.IsUserError(err), "got %T: %v", err, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}

	var list reportsResponse
	runJSON(t, &list, "report", "list")
	assert.Equal(t, 0, list.TotalCount, "failed adds must not store anything")
}

func TestReportListFilters(t *testing.T) {
	useTempDatabase(t)

	addReport(t)
	addReport(t, "--date", "2024-03-11", "--project", "Beta", "--end", "12:30")
	addReport(t, "--date", "2024-02-01", "--project", "Gamma", "-d", "Inspection")

	var list reportsResponse
	runJSON(t, &list, "report", "list", "--range", "2024-03-11")
	require.Len(t, list.Reports, 1)
	assert.Equal(t, "Beta", list.Reports[0].Project)

	runJSON(t, &list, "report", "list", "--search", "inspection")
	require.Len(t, list.Reports, 1)
	assert.Equal(t, "Gamma", list.Reports[0].Project)

	runJSON(t, &list, "report", "list", "--sort", "hours")
	require.Len(t, list.Reports, 3)
	assert.Equal(t, "Acme", list.Reports[0].Project)
	assert.Equal(t, "Beta", list.Reports[2].Project)

	runJSON(t, &list, "report", "list")
	assert.Equal(t, []string{"Acme", "Beta", "Gamma"},
		[]string{list.Reports[0].Project, list.Reports[1].Project, list.Reports[2].Project})

	_, err := run(t, "report", "list", "--sort", "colour")
	assert.True(t, errors.IsUserError(err))

	_, err = run(t, "report", "list", "--range", "someday")
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}

func TestReportResolveErrors(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, "report", "show", "missing")
	assert.ErrorIs(t, err, errors.ErrReportNotFound)

	_, err = run(t, "report", "delete", "missing", "--yes")
	assert.ErrorIs(t, err, errors.ErrReportNotFound)
}

// =============================================================================
// Stats Tests
// =============================================================================

func TestStats(t *testing.T) {
	useTempDatabase(t)

	addReport(t)
	addReport(t, "--date", "2024-03-14", "--project", "acme")
	addReport(t, "--date", "2024-03-13", "--project", "Beta", "--end", "12:30")
	mustRun(t, "project", "add", "Acme")

	var stats struct {
		TotalReports int     `json:"total_reports"`
		TotalHours   float64 `json:"total_hours"`
		Projects     int     `json:"projects"`
	}
	runJSON(t, &stats, "stats")
	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, 20.0, stats.TotalHours)
	assert.Equal(t, 1, stats.Projects)

	var withRange struct {
		ByProject []ProjectHours `json:"by_project"`
	}
	runJSON(t, &withRange, "stats", "--range", "all")
	assert.Equal(t, []ProjectHours{
		{Project: "Acme", Reports: 2, Hours: 16},
		{Project: "Beta", Reports: 1, Hours: 4},
	}, withRange.ByProject)

	var oneDay struct {
		ByProject []ProjectHours `json:"by_project"`
	}
	runJSON(t, &oneDay, "stats", "--range", "2024-03-14")
	assert.Equal(t, []ProjectHours{{Project: "acme", Reports: 1, Hours: 8}}, oneDay.ByProject)

	out := mustRun(t, "stats")
	assert.Contains(t, out, "Total hours: 20h 0m")
}

// =============================================================================
// Registry Tests
// =============================================================================

func TestRegistryCommands(t *testing.T) {
	useTempDatabase(t)

	var p recordResponse[model.Project]
	runJSON(t, &p, "project", "add", "Acme", "--description", "Pumps")
	assert.Equal(t, 8.0, p.Record.DefaultHours)

	runJSON(t, &p, "project", "edit", p.Record.ID, "--hours", "7.5")
	assert.Equal(t, 7.5, p.Record.DefaultHours)
	assert.Equal(t, "Pumps", p.Record.Description)

	_, err := run(t, "project", "add", "   ")
	assert.ErrorIs(t, err, errors.ErrNameRequired)

	_, err = run(t, "colleague", "add", "Bob", "--email", "not-an-email")
	assert.True(t, errors.IsUserError(err))

	var w recordResponse[model.Worksite]
	runJSON(t, &w, "worksite", "add", "Harbour", "--address", "Pier 4")
	runJSON(t, &w, "worksite", "edit", w.Record.ID, "--name", "Harbour East")
	assert.Equal(t, "Harbour East", w.Record.Name)
	assert.Equal(t, "Pier 4", w.Record.Address)

	out := mustRun(t, "worksite", "list", "--search", "pier")
	assert.Contains(t, out, "Harbour East")

	_, err = run(t, "worksite", "delete", "missing")
	assert.ErrorIs(t, err, errors.ErrWorksiteNotFound)
}

// =============================================================================
// Theme and Layout Tests
// =============================================================================

func TestThemeCommands(t *testing.T) {
	useTempDatabase(t)

	mustRun(t, "theme", "use", "forest-green")

	var themes struct {
		ActiveTheme string `json:"active_theme"`
		Themes      []struct {
			ID     string `json:"id"`
			Custom bool   `json:"custom"`
		} `json:"themes"`
	}
	runJSON(t, &themes, "theme", "list")
	assert.Equal(t, "forest-green", themes.ActiveTheme)
	assert.Len(t, themes.Themes, 4)

	var added recordResponse[model.Theme]
	runJSON(t, &added, "theme", "add", "Night", "--id", "night", "--from", "dark-purple", "--primary", "#ff8800")
	assert.Equal(t, "#ff8800", added.Record.Colors.Primary)
	assert.Equal(t, model.DefaultThemes()[3].Colors.Background, added.Record.Colors.Background)

	_, err := run(t, "theme", "add", "Broken", "--primary", "orange")
	assert.True(t, errors.IsUserError(err))

	mustRun(t, "theme", "use", "night")
	mustRun(t, "theme", "remove", "night")
	runJSON(t, &themes, "theme", "list")
	assert.Equal(t, model.DefaultThemeID, themes.ActiveTheme)

	_, err = run(t, "theme", "remove", "modern-blue")
	assert.ErrorIs(t, err, errors.ErrThemeNotFound)

	_, err = run(t, "theme", "use", "neon")
	assert.ErrorIs(t, err, errors.ErrThemeNotFound)
}

func TestThemeAddFromFile(t *testing.T) {
	useTempDatabase(t)

	colors := model.DefaultThemes()[1].Colors
	colors.Accent = "#123456"
	data, err := json.Marshal(map[string]any{"colors": colors})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var added recordResponse[model.Theme]
	runJSON(t, &added, "theme", "add", "Brand", "--file", path)
	assert.Equal(t, "#123456", added.Record.Colors.Accent)
	assert.True(t, strings.HasPrefix(added.Record.ID, "custom-"))
}

func TestLayoutCommands(t *testing.T) {
	useTempDatabase(t)

	mustRun(t, "layout", "move", model.FieldDescription, model.FieldDate)
	mustRun(t, "layout", "hide-field", model.FieldWorksite)
	mustRun(t, "layout", "width", model.FieldStartTime, "third")
	mustRun(t, "layout", "card", model.CardNavigation, "--hide", "--size", "small")

	var layout model.LayoutConfig
	runJSON(t, &layout, "layout", "show")

	fields := layout.SortedFields()
	assert.Equal(t, model.FieldDescription, fields[0].ID)
	assert.Equal(t, model.FieldDate, fields[1].ID)
	for i, f := range fields {
		assert.Equal(t, i+1, f.Order)
		switch f.ID {
		case model.FieldWorksite:
			assert.False(t, f.Visible)
		case model.FieldStartTime:
			assert.Equal(t, model.WidthThird, f.Width)
		}
	}
	for _, c := range layout.DashboardCards {
		if c.ID == model.CardNavigation {
			assert.False(t, c.Visible)
			assert.Equal(t, model.SizeSmall, c.Size)
		}
	}

	_, err := run(t, "layout", "width", model.FieldDate, "double")
	assert.True(t, errors.IsUserError(err))
	_, err = run(t, "layout", "move", "nope", model.FieldDate)
	assert.ErrorIs(t, err, errors.ErrFieldNotFound)

	mustRun(t, "theme", "reset", "--yes")
	runJSON(t, &layout, "layout", "show")
	assert.Equal(t, model.DefaultLayout(), layout)
}

// =============================================================================
// Export, Import and Doctor Tests
// =============================================================================

func TestExportCSVToStdout(t *testing.T) {
	useTempDatabase(t)
	addReport(t)

	out := mustRun(t, "export", "-F", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "date,start,end"))
	assert.Contains(t, lines[1], "Pump maintenance")
}

func TestExportFormatFromExtension(t *testing.T) {
	useTempDatabase(t)
	addReport(t)

	dir := t.TempDir()
	mustRun(t, "export", "-o", filepath.Join(dir, "reports.xlsx"))
	data, err := os.ReadFile(filepath.Join(dir, "reports.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]), "xlsx is a zip archive")

	out := mustRun(t, "export", "-F", "json", "-o", dir)
	assert.Contains(t, out, "Exported 1 report (8h 0m)")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBackupAndImport(t *testing.T) {
	useTempDatabase(t)
	addReport(t)
	mustRun(t, "colleague", "add", "Ann")
	mustRun(t, "theme", "use", "sunset-orange")

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "--backup", "-o", backup)

	// Restore into a second, empty database.
	useTempDatabase(t)
	out := mustRun(t, "import", backup, "--dry-run")
	assert.Contains(t, out, "Dry Run")

	var list reportsResponse
	runJSON(t, &list, "report", "list")
	assert.Equal(t, 0, list.TotalCount, "dry run must not write")

	mustRun(t, "import", backup, "--yes")
	runJSON(t, &list, "report", "list")
	assert.Equal(t, 1, list.TotalCount)

	var themes struct {
		ActiveTheme string `json:"active_theme"`
	}
	runJSON(t, &themes, "theme", "list")
	assert.Equal(t, "sunset-orange", themes.ActiveTheme)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"hello":1}`), 0o600))
	_, err := run(t, "import", bad, "--yes")
	assert.True(t, errors.IsUserError(err))
}

func TestDoctor(t *testing.T) {
	dir := useTempDatabase(t)
	report := addReport(t)

	var status struct {
		Healthy  bool     `json:"healthy"`
		Backup   string   `json:"backup"`
		Restored []string `json:"restored"`
	}
	runJSON(t, &status, "doctor", "--backup")
	assert.True(t, status.Healthy)
	assert.Equal(t, filepath.Join(filepath.Dir(dir), "backups"), filepath.Dir(status.Backup))
	snapshot := status.Backup

	out := mustRun(t, "doctor")
	assert.Contains(t, out, "Database is healthy")
	assert.Contains(t, out, "Free space")

	mustRun(t, "report", "delete", report.ID, "--yes")
	runJSON(t, &status, "doctor", "--restore", snapshot, "--yes")
	assert.Contains(t, status.Restored, model.KeyWorkReports)

	var list reportsResponse
	runJSON(t, &list, "report", "list")
	require.Equal(t, 1, list.TotalCount)
	assert.Equal(t, report.ID, list.Reports[0].ID)

	_, err := run(t, "doctor", "--backup", "--restore", snapshot)
	assert.Error(t, err)
}

// =============================================================================
// Root, Config and Error Tests
// =============================================================================

func TestRootSummary(t *testing.T) {
	useTempDatabase(t)
	addReport(t)

	out := mustRun(t)
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "Recent reports")
	assert.Contains(t, out, "Acme")
}

func TestConfigGet(t *testing.T) {
	useTempDatabase(t)
	config.Global.Reports.DefaultStart = config.DefaultRuntimeConfig().Reports.DefaultStart

	out := mustRun(t, "config", "get", "reports.start")
	assert.Equal(t, "09:00\n", out)

	out = mustRun(t, "config")
	assert.Contains(t, out, "WORKREPORT_WEEKLY_TARGET")

	_, err := run(t, "config", "get", "colour")
	assert.True(t, errors.IsUserError(err))
}

func TestConfigDefaultsApplyToReports(t *testing.T) {
	useTempDatabase(t)
	config.Global.Reports.DefaultBreakMinutes = 45

	var resp reportResponse
	runJSON(t, &resp, "report", "add", "--date", "2024-03-15", "--project", "Acme", "-d", "Work")
	assert.Equal(t, 45.0, resp.Report.BreakMinutes)
	assert.Equal(t, 7.25, resp.Report.Hours)
}

func TestInvalidGlobalFlags(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, "stats", "--format", "yaml")
	assert.True(t, errors.IsUserError(err))

	_, err = run(t, "stats", "--color", "sometimes")
	assert.True(t, errors.IsUserError(err))
}
