package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
)

func testTheme(name string) model.Theme {
	colors := model.DefaultThemes()[0].Colors
	colors.Primary = "#123456"
	return model.Theme{Name: name, Colors: colors}
}

func fieldOrder(s *SettingsStore) []string {
	var ids []string
	for _, f := range s.Settings().Layout.SortedFields() {
		ids = append(ids, f.ID)
	}
	return ids
}

// =============================================================================
// Load Tests
// =============================================================================

func TestSettingsStoreDefaults(t *testing.T) {
	s := NewSettingsStore(NewMemoryKV())

	settings := s.Settings()
	assert.Equal(t, model.DefaultThemeID, settings.ActiveTheme)
	assert.Empty(t, settings.CustomThemes)
	assert.Len(t, settings.Layout.FormFields, 8)
	assert.Len(t, settings.Layout.DashboardCards, 3)
	assert.Equal(t, model.DefaultThemeID, s.CurrentTheme().ID)
	assert.Len(t, s.Themes(), 4)
}

func TestSettingsStoreLoadFallback(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(model.KeyDesignSettings, []byte(`[1,2,3]`)))
		assert.Equal(t, model.DefaultDesignSettings(), NewSettingsStore(kv).Settings())
	})

	t.Run("partial", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(model.KeyDesignSettings, []byte(`{"activeTheme":"forest-green"}`)))

		s := NewSettingsStore(kv)
		assert.Equal(t, "forest-green", s.CurrentTheme().ID)
		assert.Len(t, s.Settings().Layout.FormFields, 8)
		assert.NotNil(t, s.Settings().CustomThemes)
	})

	t.Run("unknown_active_theme", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(model.KeyDesignSettings, []byte(`{"activeTheme":"gone"}`)))
		assert.Equal(t, model.DefaultThemeID, NewSettingsStore(kv).CurrentTheme().ID)
	})

	t.Run("read_failure", func(t *testing.T) {
		kv := NewMemoryKV()
		kv.FailGet(model.KeyDesignSettings, errBoom)
		assert.Equal(t, model.DefaultThemeID, NewSettingsStore(kv).Settings().ActiveTheme)
	})
}

// =============================================================================
// Theme Tests
// =============================================================================

func TestSetActiveTheme(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv)

	require.NoError(t, s.SetActiveTheme("dark-purple"))
	assert.Equal(t, "dark-purple", s.CurrentTheme().ID)
	assert.Equal(t, "dark-purple", NewSettingsStore(kv).CurrentTheme().ID)

	assert.ErrorIs(t, s.SetActiveTheme("nope"), errors.ErrThemeNotFound)
	assert.Equal(t, "dark-purple", s.CurrentTheme().ID)
}

func TestAddCustomTheme(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv, testOptions()...)

	theme, err := s.AddCustomTheme(testTheme("  Night Shift "))
	require.NoError(t, err)
	assert.Equal(t, "custom-id-1", theme.ID)
	assert.Equal(t, "Night Shift", theme.Name)
	assert.NotEmpty(t, theme.BorderRadius)
	assert.NotEmpty(t, theme.Typography.FontFamily)

	assert.True(t, s.IsCustomTheme(theme.ID))
	assert.False(t, s.IsCustomTheme(model.DefaultThemeID))
	assert.Len(t, s.Themes(), 5)

	require.NoError(t, s.SetActiveTheme(theme.ID))
	reloaded := NewSettingsStore(kv)
	assert.Equal(t, "#123456", reloaded.CurrentTheme().Colors.Primary)
}

func TestAddCustomThemeValidation(t *testing.T) {
	s := NewSettingsStore(NewMemoryKV())

	_, err := s.AddCustomTheme(testTheme("   "))
	assert.ErrorIs(t, err, errors.ErrNameRequired)

	bad := testTheme("Bad")
	bad.Colors.Accent = "blue"
	_, err = s.AddCustomTheme(bad)
	assert.ErrorIs(t, err, errors.ErrInvalidColor)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "accent", ue.Field)

	dup := testTheme("Copy")
	dup.ID = model.DefaultThemeID
	_, err = s.AddCustomTheme(dup)
	assert.ErrorIs(t, err, errors.ErrThemeExists)

	assert.Len(t, s.Themes(), 4)
}

func TestRemoveCustomTheme(t *testing.T) {
	s := NewSettingsStore(NewMemoryKV())
	theme, err := s.AddCustomTheme(testTheme("Mine"))
	require.NoError(t, err)
	require.NoError(t, s.SetActiveTheme(theme.ID))

	require.NoError(t, s.RemoveCustomTheme(theme.ID))
	assert.Equal(t, model.DefaultThemeID, s.CurrentTheme().ID)
	assert.Len(t, s.Themes(), 4)

	assert.ErrorIs(t, s.RemoveCustomTheme(theme.ID), errors.ErrThemeNotFound)
	assert.ErrorIs(t, s.RemoveCustomTheme("forest-green"), errors.ErrThemeNotFound)
}

func TestSettingsSnapshotIsCopy(t *testing.T) {
	s := NewSettingsStore(NewMemoryKV())
	_, err := s.AddCustomTheme(testTheme("Mine"))
	require.NoError(t, err)

	snap := s.Settings()
	snap.Layout.FormFields[0].Label = "changed"
	snap.CustomThemes[0].Typography.FontSize["base"] = "99px"

	fresh := s.Settings()
	assert.Equal(t, "Date", fresh.Layout.FormFields[0].Label)
	assert.Equal(t, "1rem", fresh.CustomThemes[0].Typography.FontSize["base"])
}

// =============================================================================
// Layout Tests
// =============================================================================

func TestMoveFormField(t *testing.T) {
	tests := []struct {
		name     string
		dragged  string
		target   string
		expected []string
	}{
		{
			name: "down", dragged: model.FieldDate, target: model.FieldProject,
			expected: []string{"startTime", "endTime", "breakMinutes", "project", "date", "worksite", "colleagues", "description"},
		},
		{
			name: "up", dragged: model.FieldDescription, target: model.FieldDate,
			expected: []string{"description", "date", "startTime", "endTime", "breakMinutes", "project", "worksite", "colleagues"},
		},
		{
			name: "same_field", dragged: model.FieldProject, target: model.FieldProject,
			expected: []string{"date", "startTime", "endTime", "breakMinutes", "project", "worksite", "colleagues", "description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettingsStore(NewMemoryKV())
			require.NoError(t, s.MoveFormField(tt.dragged, tt.target))
			assert.Equal(t, tt.expected, fieldOrder(s))

			for i, f := range s.Settings().Layout.SortedFields() {
				assert.Equal(t, i+1, f.Order)
			}
		})
	}
}

func TestMoveFormFieldUnknown(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv)

	assert.ErrorIs(t, s.MoveFormField("nope", model.FieldDate), errors.ErrFieldNotFound)
	assert.ErrorIs(t, s.MoveFormField(model.FieldDate, "nope"), errors.ErrFieldNotFound)
	assert.Equal(t, 0, kv.SetCalls(model.KeyDesignSettings))
}

func TestMoveFormFieldPersists(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv)
	require.NoError(t, s.MoveFormField(model.FieldWorksite, model.FieldStartTime))

	assert.Equal(t, fieldOrder(s), fieldOrder(NewSettingsStore(kv)))
}

func TestFieldAndCardSettings(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv)

	require.NoError(t, s.SetFieldVisibility(model.FieldWorksite, false))
	require.NoError(t, s.SetFieldWidth(model.FieldProject, model.WidthThird))
	require.NoError(t, s.SetCardVisibility(model.CardNavigation, false))
	require.NoError(t, s.SetCardSize(model.CardStatistics, model.SizeLarge))

	layout := NewSettingsStore(kv).Settings().Layout
	for _, f := range layout.FormFields {
		switch f.ID {
		case model.FieldWorksite:
			assert.False(t, f.Visible)
		case model.FieldProject:
			assert.Equal(t, model.WidthThird, f.Width)
		}
	}
	for _, c := range layout.DashboardCards {
		switch c.ID {
		case model.CardNavigation:
			assert.False(t, c.Visible)
		case model.CardStatistics:
			assert.Equal(t, model.SizeLarge, c.Size)
		}
	}

	err := s.SetFieldWidth(model.FieldProject, "double")
	assert.True(t, errors.IsUserError(err))
	assert.ErrorIs(t, s.SetCardSize("nope", model.SizeSmall), errors.ErrFieldNotFound)
	assert.ErrorIs(t, s.SetFieldVisibility("nope", true), errors.ErrFieldNotFound)
	assert.True(t, errors.IsUserError(s.SetCardSize(model.CardStatistics, "huge")))
}

func TestResetToDefaults(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv)
	_, err := s.AddCustomTheme(testTheme("Mine"))
	require.NoError(t, err)
	require.NoError(t, s.SetActiveTheme("sunset-orange"))
	require.NoError(t, s.MoveFormField(model.FieldDescription, model.FieldDate))

	require.NoError(t, s.ResetToDefaults())
	assert.Equal(t, model.DefaultDesignSettings(), s.Settings())

	raw, err := kv.Get(model.KeyDesignSettings)
	require.NoError(t, err)
	var stored model.DesignSettings
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, model.DefaultThemeID, stored.ActiveTheme)
	assert.Empty(t, stored.CustomThemes)
}

func TestSettingsPersistFailure(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSettingsStore(kv)
	kv.FailSet(model.KeyDesignSettings, errBoom)

	assert.Error(t, s.SetActiveTheme("forest-green"))
	assert.Equal(t, model.DefaultThemeID, s.CurrentTheme().ID)

	assert.Error(t, s.MoveFormField(model.FieldDescription, model.FieldDate))
	assert.Equal(t, model.FieldDate, fieldOrder(s)[0])
}
