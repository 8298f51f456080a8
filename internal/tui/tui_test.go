package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func setupStores(t *testing.T) (*storage.ReportStore, *storage.ColleagueRepo) {
	t.Helper()
	kv := storage.NewMemoryKV()
	reports := storage.NewReportStore(kv, storage.WithClock(clock))
	colleagues := storage.NewColleagueRepo(kv)

	for _, in := range []model.ReportInput{
		{Date: worktime.MustParseDate("2024-03-15"), StartTime: worktime.MustParseClock("09:00"), EndTime: worktime.MustParseClock("17:30"), BreakMinutes: 30, Project: "Acme", Worksite: "Harbour", Description: "Pumps"},
		{Date: worktime.MustParseDate("2024-03-11"), StartTime: worktime.MustParseClock("08:00"), EndTime: worktime.MustParseClock("12:00"), Project: "Beta", Description: "Survey"},
		{Date: worktime.MustParseDate("2024-02-01"), StartTime: worktime.MustParseClock("08:00"), EndTime: worktime.MustParseClock("10:00"), Project: "Gamma", Description: "Old work"},
	} {
		_, err := reports.Create(in)
		require.NoError(t, err)
	}
	_, err := colleagues.Create(model.ColleagueFields{Name: "Ann"})
	require.NoError(t, err)

	return reports, colleagues
}

func newTestModel(t *testing.T, layout model.LayoutConfig) *DashboardModel {
	reports, colleagues := setupStores(t)
	m := NewDashboardModel(DashboardConfig{
		Reports:     reports,
		Colleagues:  colleagues,
		Layout:      layout,
		RecentCount: 2,
		WeekTarget:  40,
		Now:         clock,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// =============================================================================
// Styles Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	s := NewStyles(model.DefaultThemes()[0])

	tests := []struct {
		name       string
		percentage float64
		filled     int
	}{
		{"zero", 0, 0},
		{"half", 50, 5},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := s.ProgressBar(tt.percentage, 10)
			assert.Equal(t, 10, lipgloss.Width(bar))
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
		})
	}
}

func TestCardWidth(t *testing.T) {
	assert.Equal(t, 40, cardWidth(model.SizeSmall, 120))
	assert.Equal(t, 60, cardWidth(model.SizeMedium, 120))
	assert.Equal(t, 120, cardWidth(model.SizeLarge, 120))
	assert.Equal(t, 24, cardWidth(model.SizeSmall, 30), "cards keep a minimum width")
}

// =============================================================================
// Card Tests
// =============================================================================

func TestStatsCard(t *testing.T) {
	c := StatsCard{
		Summary: output.Summary{
			Stats:      storage.Stats{TotalReports: 3, TotalHours: 14, WeekHours: 12, TodayCount: 1},
			Colleagues: 1,
		},
		WeekTarget: 40,
		Width:      60,
	}

	view := c.View(NewStyles(model.DefaultThemes()[0]))
	assert.Contains(t, view, "Statistics")
	assert.Contains(t, view, "14h 0m")
	assert.Contains(t, view, "12h 0m")
	assert.Contains(t, view, "1 report")
	assert.Contains(t, view, "30% of 40h 0m")
	assert.Contains(t, view, "1 colleague")
}

func TestStatsCardWithoutTarget(t *testing.T) {
	c := StatsCard{Width: 60}
	view := c.View(NewStyles(model.DefaultThemes()[0]))
	assert.NotContains(t, view, "█")
	assert.NotContains(t, view, "░")
}

func TestRecentCard(t *testing.T) {
	s := NewStyles(model.DefaultThemes()[0])

	t.Run("empty", func(t *testing.T) {
		c := RecentCard{Width: 60}
		assert.Contains(t, c.View(s), "No reports yet")
	})

	t.Run("reports", func(t *testing.T) {
		r := model.NewWorkReport("r1", fixedNow, model.ReportInput{
			Date:        worktime.MustParseDate("2024-03-15"),
			StartTime:   worktime.MustParseClock("09:00"),
			EndTime:     worktime.MustParseClock("10:30"),
			Project:     "Acme",
			Worksite:    "Harbour",
			Description: "Checked valves",
		})
		c := RecentCard{Reports: []*model.WorkReport{&r}, Width: 80}
		view := c.View(s)
		assert.Contains(t, view, "Acme")
		assert.Contains(t, view, "1h 30m")
		assert.Contains(t, view, "Fri 2024-03-15 09:00-10:30 @ Harbour")
		assert.Contains(t, view, "Checked valves")
	})
}

func TestNavigationCard(t *testing.T) {
	c := NavigationCard{Width: 120}
	view := c.View(NewStyles(model.DefaultThemes()[0]))
	for _, sc := range Shortcuts {
		assert.Contains(t, view, sc.Label)
	}
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func TestNewDashboardModelDefaults(t *testing.T) {
	m := NewDashboardModel(DashboardConfig{})

	assert.Equal(t, time.Second, m.config.RefreshInterval)
	assert.Equal(t, 3, m.config.RecentCount)
	assert.Equal(t, model.DefaultLayout(), m.config.Layout)
	assert.Equal(t, model.DefaultThemeID, m.config.Theme.ID)
	assert.Equal(t, 0, m.summary.TotalReports)
	assert.Equal(t, "Loading...", m.View())
}

func TestDashboardLoadData(t *testing.T) {
	m := newTestModel(t, model.DefaultLayout())

	assert.Equal(t, 3, m.summary.TotalReports)
	assert.InDelta(t, 14.0, m.summary.TotalHours, 1e-9)
	assert.InDelta(t, 12.0, m.summary.WeekHours, 1e-9)
	assert.Equal(t, 1, m.summary.TodayCount)
	assert.Equal(t, 1, m.summary.Colleagues)
	assert.Equal(t, 0, m.summary.Projects)

	require.Len(t, m.recent, 2)
	assert.Equal(t, "Gamma", m.recent[0].Project)
	assert.Equal(t, "Beta", m.recent[1].Project)
}

func TestDashboardViewFollowsLayout(t *testing.T) {
	t.Run("default_order", func(t *testing.T) {
		view := newTestModel(t, model.DefaultLayout()).View()

		stats := strings.Index(view, "Statistics")
		nav := strings.Index(view, "Navigation")
		recent := strings.Index(view, "Recent reports")
		require.True(t, stats >= 0 && nav >= 0 && recent >= 0)
		assert.Less(t, stats, nav)
		assert.Less(t, nav, recent)
	})

	t.Run("reordered_and_hidden", func(t *testing.T) {
		layout := model.DefaultLayout()
		layout.DashboardCards[0].Order = 3 // statistics last
		layout.DashboardCards[2].Order = 1 // recent first
		layout.DashboardCards[1].Visible = false

		view := newTestModel(t, layout).View()
		assert.NotContains(t, view, "Navigation")
		assert.Less(t, strings.Index(view, "Recent reports"), strings.Index(view, "Statistics"))
	})
}

func TestDashboardKeys(t *testing.T) {
	m := newTestModel(t, model.DefaultLayout())

	_, cmd := m.Update(keyMsg("a"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.message, "workreport report add")
	assert.Contains(t, m.View(), "workreport report add")

	_, cmd = m.Update(keyMsg("z"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.message, "workreport report add", "unknown keys leave the message alone")

	_, cmd = m.Update(keyMsg("r"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Refreshed", m.message)

	_, cmd = m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardMessageExpires(t *testing.T) {
	m := newTestModel(t, model.DefaultLayout())
	m.setMessage("hello", time.Second)

	m.Update(tickMsg(fixedNow))
	assert.Equal(t, "hello", m.message)

	_, cmd := m.Update(tickMsg(fixedNow.Add(2 * time.Second)))
	assert.Empty(t, m.message)
	assert.NotNil(t, cmd, "ticking continues")
}

func TestDashboardRefreshPicksUpNewReports(t *testing.T) {
	reports, _ := setupStores(t)
	m := NewDashboardModel(DashboardConfig{Reports: reports, Now: clock})
	assert.Equal(t, 3, m.summary.TotalReports)

	_, err := reports.Create(model.ReportInput{
		Date:        worktime.MustParseDate("2024-03-15"),
		StartTime:   worktime.MustParseClock("18:00"),
		EndTime:     worktime.MustParseClock("19:00"),
		Project:     "Acme",
		Description: "Evening call",
	})
	require.NoError(t, err)

	m.Update(refreshMsg{})
	assert.Equal(t, 4, m.summary.TotalReports)
	assert.Equal(t, 2, m.summary.TodayCount)
}
