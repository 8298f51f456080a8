package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workreport/internal/worktime"
)

func sampleInput() ReportInput {
	return ReportInput{
		Date:         worktime.MustParseDate("2024-03-15"),
		StartTime:    worktime.MustParseClock("09:00"),
		EndTime:      worktime.MustParseClock("17:30"),
		BreakMinutes: 30,
		Project:      "Acme",
		Worksite:     "Harbour",
		Description:  "Replaced valves",
		Colleagues:   []Colleague{{ID: "c1", Name: "Ann Lee", Department: "Ops"}},
	}
}

// =============================================================================
// WorkReport Tests
// =============================================================================

func TestNewWorkReport(t *testing.T) {
	created := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	in := sampleInput()
	r := NewWorkReport("r1", created, in)

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, 8.0, r.Hours)
	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, "Acme", r.Project)

	// Snapshots are copied, not shared.
	in.Colleagues[0].Name = "Changed"
	assert.Equal(t, "Ann Lee", r.Colleagues[0].Name)
}

func TestWorkReportNilColleagues(t *testing.T) {
	in := sampleInput()
	in.Colleagues = nil
	r := NewWorkReport("r1", time.Now(), in)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"colleagues":[]`)
}

func TestWorkReportRecompute(t *testing.T) {
	r := NewWorkReport("r1", time.Now(), sampleInput())
	r.EndTime = worktime.MustParseClock("12:00")
	r.Recompute()
	assert.Equal(t, 2.5, r.Hours)

	r.EndTime = worktime.MustParseClock("08:00")
	r.Recompute()
	assert.Equal(t, 0.0, r.Hours)
}

func TestWorkReportClone(t *testing.T) {
	r := NewWorkReport("r1", time.Now(), sampleInput())
	c := r.Clone()
	c.Colleagues[0].Name = "Other"
	assert.Equal(t, "Ann Lee", r.Colleagues[0].Name)
}

func TestWorkReportInput(t *testing.T) {
	r := NewWorkReport("r1", time.Now(), sampleInput())
	in := r.Input()
	assert.Equal(t, sampleInput(), in)

	in.Colleagues[0].Name = "Other"
	assert.Equal(t, "Ann Lee", r.Colleagues[0].Name)
}

func TestWorkReportMatches(t *testing.T) {
	r := NewWorkReport("r1", time.Now(), sampleInput())

	tests := []struct {
		query    string
		expected bool
	}{
		{"", true},
		{"acme", true},
		{"VALVES", true},
		{"harb", true},
		{"ann", true},
		{"  lee ", true},
		{"ops", false}, // department is not searched
		{"zzz", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, r.Matches(tt.query), "query %q", tt.query)
	}
}

func TestWorkReportJSONShape(t *testing.T) {
	r := NewWorkReport("r1", time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC), sampleInput())
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "date", "startTime", "endTime", "breakMinutes", "hours",
		"project", "worksite", "description", "colleagues", "createdAt"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2024-03-15", raw["date"])
	assert.Equal(t, "17:30", raw["endTime"])
}

// =============================================================================
// Registry Model Tests
// =============================================================================

func TestFieldsApply(t *testing.T) {
	c := Colleague{ID: "c1", Name: "Old"}
	ColleagueFields{Name: "New", Email: "new@example.com"}.Apply(&c)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "New", c.Name)
	assert.Equal(t, "new@example.com", c.Email)

	w := Worksite{ID: "w1"}
	WorksiteFields{Name: "Harbour", Address: "Pier 4"}.Apply(&w)
	assert.Equal(t, "w1", w.GetID())
	assert.Equal(t, "Pier 4", w.Address)

	p := Project{ID: "p1"}
	ProjectFields{Name: "Acme", DefaultHours: 6}.Apply(&p)
	assert.Equal(t, 6.0, p.DefaultHours)
}

func TestRegistryMatches(t *testing.T) {
	c := &Colleague{Name: "Ann", Department: "Field Ops", Email: "ann@example.com"}
	assert.True(t, c.Matches("field"))
	assert.True(t, c.Matches("EXAMPLE"))
	assert.False(t, c.Matches("sales"))

	w := &Worksite{Name: "Harbour", Address: "Pier 4"}
	assert.True(t, w.Matches("pier"))

	p := &Project{Name: "Acme", Description: "Pump retrofit"}
	assert.True(t, p.Matches("retro"))
	assert.False(t, p.Matches("harbour"))
}

// =============================================================================
// Settings Tests
// =============================================================================

func TestDefaultThemes(t *testing.T) {
	themes := DefaultThemes()
	require.Len(t, themes, 4)
	assert.Equal(t, DefaultThemeID, themes[0].ID)

	seen := map[string]bool{}
	for _, th := range themes {
		assert.False(t, seen[th.ID], "duplicate theme %s", th.ID)
		seen[th.ID] = true
		assert.NotEmpty(t, th.Colors.Primary)
		assert.NotEmpty(t, th.Typography.FontSize)
	}

	// Each call returns fresh maps.
	themes[0].Typography.FontSize["base"] = "2rem"
	assert.Equal(t, "1rem", DefaultThemes()[0].Typography.FontSize["base"])
}

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	require.Len(t, layout.FormFields, 8)
	require.Len(t, layout.DashboardCards, 3)

	for i, f := range layout.SortedFields() {
		assert.Equal(t, i+1, f.Order)
		assert.True(t, f.Visible)
	}
	assert.Equal(t, CardStatistics, layout.SortedCards()[0].ID)
}

func TestSortedFieldsStable(t *testing.T) {
	layout := LayoutConfig{FormFields: []LayoutField{
		{ID: "b", Order: 2},
		{ID: "a", Order: 1},
		{ID: "c", Order: 2},
	}}

	sorted := layout.SortedFields()
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
	assert.Equal(t, "c", sorted[2].ID)
	assert.Equal(t, "b", layout.FormFields[0].ID, "receiver is untouched")
}

func TestDesignSettingsClone(t *testing.T) {
	s := DefaultDesignSettings()
	s.CustomThemes = append(s.CustomThemes, DefaultThemes()[1])

	c := s.Clone()
	c.Layout.FormFields[0].Visible = false
	c.CustomThemes[0].Typography.FontSize["xs"] = "1px"
	c.CustomThemes[0].Name = "Changed"

	assert.True(t, s.Layout.FormFields[0].Visible)
	assert.Equal(t, "0.75rem", s.CustomThemes[0].Typography.FontSize["xs"])
	assert.Equal(t, "Forest Green", s.CustomThemes[0].Name)
}

func TestDesignSettingsJSON(t *testing.T) {
	data, err := json.Marshal(DefaultDesignSettings())
	require.NoError(t, err)

	var back DesignSettings
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, DefaultDesignSettings(), back)
	assert.Contains(t, string(data), `"activeTheme":"modern-blue"`)
	assert.Contains(t, string(data), `"customThemes":[]`)
}
