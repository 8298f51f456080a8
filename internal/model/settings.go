package model

import (
	"slices"
	"sort"
)

// FieldWidth is the width a form field takes in the report form.
type FieldWidth string

const (
	WidthFull  FieldWidth = "full"
	WidthHalf  FieldWidth = "half"
	WidthThird FieldWidth = "third"
)

// CardSize is the size of a dashboard card.
type CardSize string

const (
	SizeSmall  CardSize = "small"
	SizeMedium CardSize = "medium"
	SizeLarge  CardSize = "large"
)

// ThemeColors is the color palette of a theme. All values are hex colors.
type ThemeColors struct {
	Primary       string `json:"primary" validate:"required,hexcolor"`
	Secondary     string `json:"secondary" validate:"required,hexcolor"`
	Accent        string `json:"accent" validate:"required,hexcolor"`
	Background    string `json:"background" validate:"required,hexcolor"`
	Surface       string `json:"surface" validate:"required,hexcolor"`
	Text          string `json:"text" validate:"required,hexcolor"`
	TextSecondary string `json:"textSecondary" validate:"required,hexcolor"`
	Border        string `json:"border" validate:"required,hexcolor"`
	Success       string `json:"success" validate:"required,hexcolor"`
	Warning       string `json:"warning" validate:"required,hexcolor"`
	Error         string `json:"error" validate:"required,hexcolor"`
}

// ThemeSpacing holds the spacing scale of a theme.
type ThemeSpacing struct {
	XS string `json:"xs"`
	SM string `json:"sm"`
	MD string `json:"md"`
	LG string `json:"lg"`
	XL string `json:"xl"`
}

// ThemeTypography holds font settings of a theme.
type ThemeTypography struct {
	FontFamily string            `json:"fontFamily"`
	FontSize   map[string]string `json:"fontSize"`
}

// Theme is a named visual theme.
type Theme struct {
	ID           string          `json:"id"`
	Name         string          `json:"name" validate:"max=64"`
	Colors       ThemeColors     `json:"colors"`
	Spacing      ThemeSpacing    `json:"spacing"`
	Typography   ThemeTypography `json:"typography"`
	BorderRadius string          `json:"borderRadius"`
}

// LayoutField is one field of the report form.
type LayoutField struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Label    string     `json:"label"`
	Required bool       `json:"required,omitempty"`
	Visible  bool       `json:"visible"`
	Order    int        `json:"order"`
	Width    FieldWidth `json:"width" validate:"oneof=full half third"`
}

// DashboardCard is one card of the dashboard.
type DashboardCard struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Visible bool     `json:"visible"`
	Order   int      `json:"order"`
	Size    CardSize `json:"size" validate:"oneof=small medium large"`
}

// LayoutConfig is the form and dashboard layout.
type LayoutConfig struct {
	FormFields     []LayoutField   `json:"formFields"`
	DashboardCards []DashboardCard `json:"dashboardCards"`
}

// SortedFields returns the form fields ordered by Order.
func (l LayoutConfig) SortedFields() []LayoutField {
	fields := slices.Clone(l.FormFields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

// SortedCards returns the dashboard cards ordered by Order.
func (l LayoutConfig) SortedCards() []DashboardCard {
	cards := slices.Clone(l.DashboardCards)
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Order < cards[j].Order
	})
	return cards
}

// Clone returns a deep copy of the layout.
func (l LayoutConfig) Clone() LayoutConfig {
	return LayoutConfig{
		FormFields:     slices.Clone(l.FormFields),
		DashboardCards: slices.Clone(l.DashboardCards),
	}
}

// DesignSettings are the presentation preferences.
type DesignSettings struct {
	ActiveTheme  string       `json:"activeTheme"`
	Layout       LayoutConfig `json:"layout"`
	CustomThemes []Theme      `json:"customThemes"`
}

// Clone returns a deep copy of the settings.
func (s DesignSettings) Clone() DesignSettings {
	themes := make([]Theme, len(s.CustomThemes))
	for i, t := range s.CustomThemes {
		themes[i] = t.Clone()
	}
	return DesignSettings{
		ActiveTheme:  s.ActiveTheme,
		Layout:       s.Layout.Clone(),
		CustomThemes: themes,
	}
}

// Clone returns a deep copy of the theme.
func (t Theme) Clone() Theme {
	if t.Typography.FontSize != nil {
		sizes := make(map[string]string, len(t.Typography.FontSize))
		for k, v := range t.Typography.FontSize {
			sizes[k] = v
		}
		t.Typography.FontSize = sizes
	}
	return t
}

// DefaultDesignSettings returns the settings of a fresh installation.
func DefaultDesignSettings() DesignSettings {
	return DesignSettings{
		ActiveTheme:  DefaultThemeID,
		Layout:       DefaultLayout(),
		CustomThemes: []Theme{},
	}
}
