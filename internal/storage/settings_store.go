package storage

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/validate"
)

// SettingsStore owns the design settings stored under the designSettings key.
type SettingsStore struct {
	mu       sync.RWMutex
	kv       KV
	opts     storeOptions
	settings model.DesignSettings
}

// NewSettingsStore loads the design settings from kv. Missing or malformed
// settings fall back to the defaults.
func NewSettingsStore(kv KV, opts ...Option) *SettingsStore {
	s := &SettingsStore{kv: kv, opts: applyOptions(opts)}
	s.Reload()
	return s
}

// Reload reads the settings again from the provider.
func (s *SettingsStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = model.DefaultDesignSettings()
	data, found := readKey(s.kv, model.KeyDesignSettings)
	if !found {
		return
	}

	// Decode over the defaults so keys missing from older files keep them.
	loaded := model.DefaultDesignSettings()
	if err := json.Unmarshal(data, &loaded); err != nil {
		logging.Warn("stored design settings are malformed, using defaults",
			logging.KeyKey, model.KeyDesignSettings, logging.KeyError, err)
		return
	}
	if loaded.CustomThemes == nil {
		loaded.CustomThemes = []model.Theme{}
	}
	if len(loaded.Layout.FormFields) == 0 {
		loaded.Layout.FormFields = model.DefaultLayout().FormFields
	}
	if len(loaded.Layout.DashboardCards) == 0 {
		loaded.Layout.DashboardCards = model.DefaultLayout().DashboardCards
	}
	s.settings = loaded
}

func (s *SettingsStore) commitLocked(op string, next model.DesignSettings) error {
	if err := writeJSON(s.kv, model.KeyDesignSettings, next); err != nil {
		logging.Error("failed to persist design settings", logging.KeyOperation, op, logging.KeyError, err)
		return err
	}
	s.settings = next
	logging.LogOperation(op)
	return nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() model.DesignSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Themes returns the built-in themes followed by the custom themes.
func (s *SettingsStore) Themes() []model.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themesLocked()
}

func (s *SettingsStore) themesLocked() []model.Theme {
	themes := model.DefaultThemes()
	for _, t := range s.settings.CustomThemes {
		themes = append(themes, t.Clone())
	}
	return themes
}

func (s *SettingsStore) findThemeLocked(id string) (model.Theme, bool) {
	for _, t := range s.themesLocked() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Theme{}, false
}

// IsCustomTheme reports whether id names a user-defined theme.
func (s *SettingsStore) IsCustomTheme(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.settings.CustomThemes, func(t model.Theme) bool { return t.ID == id })
}

// CurrentTheme returns the active theme, or the first built-in theme when the
// active id is unknown.
func (s *SettingsStore) CurrentTheme() model.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.findThemeLocked(s.settings.ActiveTheme); ok {
		return t
	}
	return model.DefaultThemes()[0]
}

// SetActiveTheme makes the theme with the given id active.
func (s *SettingsStore) SetActiveTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findThemeLocked(id); !ok {
		return errors.NotFound(errors.ErrThemeNotFound, id)
	}
	next := s.settings.Clone()
	next.ActiveTheme = id
	return s.commitLocked("set_theme", next)
}

// AddCustomTheme validates and stores a user-defined theme. An empty id is
// generated from the name.
func (s *SettingsStore) AddCustomTheme(theme model.Theme) (*model.Theme, error) {
	theme.Name = validate.SanitizeLabel(theme.Name)
	if err := validate.Name(theme.Name); err != nil {
		return nil, err
	}
	if err := validate.Struct(theme); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	theme.ID = strings.TrimSpace(theme.ID)
	if theme.ID == "" {
		theme.ID = "custom-" + s.opts.newID()
	}
	if _, exists := s.findThemeLocked(theme.ID); exists {
		return nil, &errors.UserError{
			Message: "theme already exists",
			Field:   "id",
			Value:   theme.ID,
			Cause:   errors.ErrThemeExists,
		}
	}
	if theme.Spacing == (model.ThemeSpacing{}) {
		theme.Spacing = model.DefaultThemes()[0].Spacing
	}
	if theme.Typography.FontFamily == "" {
		theme.Typography = model.DefaultThemes()[0].Typography
	}
	if theme.BorderRadius == "" {
		theme.BorderRadius = model.DefaultThemes()[0].BorderRadius
	}

	next := s.settings.Clone()
	next.CustomThemes = append(next.CustomThemes, theme.Clone())
	if err := s.commitLocked("add_theme", next); err != nil {
		return nil, err
	}
	out := theme.Clone()
	return &out, nil
}

// RemoveCustomTheme deletes a user-defined theme. Removing the active theme
// switches back to the default theme. Built-in themes cannot be removed.
func (s *SettingsStore) RemoveCustomTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.settings.CustomThemes, func(t model.Theme) bool { return t.ID == id })
	if idx < 0 {
		return errors.NotFound(errors.ErrThemeNotFound, id)
	}

	next := s.settings.Clone()
	next.CustomThemes = slices.Delete(next.CustomThemes, idx, idx+1)
	if next.ActiveTheme == id {
		next.ActiveTheme = model.DefaultThemeID
	}
	return s.commitLocked("remove_theme", next)
}

// MoveFormField moves the dragged field to the position of the target field
// and renumbers every field's order from 1.
func (s *SettingsStore) MoveFormField(draggedID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.settings.Layout.SortedFields()
	from := slices.IndexFunc(fields, func(f model.LayoutField) bool { return f.ID == draggedID })
	if from < 0 {
		return errors.NotFound(errors.ErrFieldNotFound, draggedID)
	}
	to := slices.IndexFunc(fields, func(f model.LayoutField) bool { return f.ID == targetID })
	if to < 0 {
		return errors.NotFound(errors.ErrFieldNotFound, targetID)
	}
	if from == to {
		return nil
	}

	dragged := fields[from]
	fields = slices.Delete(fields, from, from+1)
	fields = slices.Insert(fields, to, dragged)
	for i := range fields {
		fields[i].Order = i + 1
	}

	next := s.settings.Clone()
	next.Layout.FormFields = fields
	return s.commitLocked("move_field", next)
}

func (s *SettingsStore) updateField(op, id string, fn func(*model.LayoutField) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.Clone()
	idx := slices.IndexFunc(next.Layout.FormFields, func(f model.LayoutField) bool { return f.ID == id })
	if idx < 0 {
		return errors.NotFound(errors.ErrFieldNotFound, id)
	}
	if err := fn(&next.Layout.FormFields[idx]); err != nil {
		return err
	}
	return s.commitLocked(op, next)
}

func (s *SettingsStore) updateCard(op, id string, fn func(*model.DashboardCard) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.Clone()
	idx := slices.IndexFunc(next.Layout.DashboardCards, func(c model.DashboardCard) bool { return c.ID == id })
	if idx < 0 {
		return errors.NotFound(errors.ErrFieldNotFound, id)
	}
	if err := fn(&next.Layout.DashboardCards[idx]); err != nil {
		return err
	}
	return s.commitLocked(op, next)
}

// SetFieldVisibility shows or hides a form field.
func (s *SettingsStore) SetFieldVisibility(id string, visible bool) error {
	return s.updateField("field_visibility", id, func(f *model.LayoutField) error {
		f.Visible = visible
		return nil
	})
}

// SetFieldWidth changes the width of a form field.
func (s *SettingsStore) SetFieldWidth(id string, width model.FieldWidth) error {
	return s.updateField("field_width", id, func(f *model.LayoutField) error {
		f.Width = width
		return validate.Struct(*f)
	})
}

// SetCardVisibility shows or hides a dashboard card.
func (s *SettingsStore) SetCardVisibility(id string, visible bool) error {
	return s.updateCard("card_visibility", id, func(c *model.DashboardCard) error {
		c.Visible = visible
		return nil
	})
}

// SetCardSize changes the size of a dashboard card.
func (s *SettingsStore) SetCardSize(id string, size model.CardSize) error {
	return s.updateCard("card_size", id, func(c *model.DashboardCard) error {
		c.Size = size
		return validate.Struct(*c)
	})
}

// ResetToDefaults restores the default theme and layout and drops every
// custom theme.
func (s *SettingsStore) ResetToDefaults() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked("reset_settings", model.DefaultDesignSettings())
}
