package model

// DefaultThemeID is the theme used when none is chosen or the chosen one is gone.
const DefaultThemeID = "modern-blue"

var defaultSpacing = ThemeSpacing{XS: "0.25rem", SM: "0.5rem", MD: "1rem", LG: "1.5rem", XL: "2rem"}

func defaultTypography(family string) ThemeTypography {
	return ThemeTypography{
		FontFamily: family,
		FontSize: map[string]string{
			"xs": "0.75rem", "sm": "0.875rem", "base": "1rem", "lg": "1.125rem",
			"xl": "1.25rem", "2xl": "1.5rem", "3xl": "1.875rem",
		},
	}
}

// DefaultThemes returns the built-in themes. The first entry is the fallback.
func DefaultThemes() []Theme {
	return []Theme{
		{
			ID:   DefaultThemeID,
			Name: "Modern Blue",
			Colors: ThemeColors{
				Primary: "#2563EB", Secondary: "#64748B", Accent: "#0EA5E9",
				Background: "#F8FAFC", Surface: "#FFFFFF", Text: "#0F172A",
				TextSecondary: "#64748B", Border: "#E2E8F0",
				Success: "#10B981", Warning: "#F59E0B", Error: "#EF4444",
			},
			Spacing:      defaultSpacing,
			Typography:   defaultTypography("Inter, sans-serif"),
			BorderRadius: "0.5rem",
		},
		{
			ID:   "forest-green",
			Name: "Forest Green",
			Colors: ThemeColors{
				Primary: "#15803D", Secondary: "#4D7C0F", Accent: "#84CC16",
				Background: "#F7FEE7", Surface: "#FFFFFF", Text: "#14532D",
				TextSecondary: "#4B5563", Border: "#D9F99D",
				Success: "#16A34A", Warning: "#CA8A04", Error: "#DC2626",
			},
			Spacing:      defaultSpacing,
			Typography:   defaultTypography("Inter, sans-serif"),
			BorderRadius: "0.75rem",
		},
		{
			ID:   "sunset-orange",
			Name: "Sunset Orange",
			Colors: ThemeColors{
				Primary: "#EA580C", Secondary: "#9A3412", Accent: "#F97316",
				Background: "#FFF7ED", Surface: "#FFFFFF", Text: "#431407",
				TextSecondary: "#78716C", Border: "#FED7AA",
				Success: "#65A30D", Warning: "#D97706", Error: "#B91C1C",
			},
			Spacing:      defaultSpacing,
			Typography:   defaultTypography("Inter, sans-serif"),
			BorderRadius: "0.5rem",
		},
		{
			ID:   "dark-purple",
			Name: "Dark Purple",
			Colors: ThemeColors{
				Primary: "#7C3AED", Secondary: "#A78BFA", Accent: "#10B981",
				Background: "#111827", Surface: "#1F2937", Text: "#F9FAFB",
				TextSecondary: "#9CA3AF", Border: "#4B5563",
				Success: "#10B981", Warning: "#F59E0B", Error: "#EF4444",
			},
			Spacing:      defaultSpacing,
			Typography:   defaultTypography("JetBrains Mono, monospace"),
			BorderRadius: "0.25rem",
		},
	}
}

// Form field IDs.
const (
	FieldDate        = "date"
	FieldStartTime   = "startTime"
	FieldEndTime     = "endTime"
	FieldBreak       = "breakMinutes"
	FieldProject     = "project"
	FieldWorksite    = "worksite"
	FieldColleagues  = "colleagues"
	FieldDescription = "description"
)

// Dashboard card IDs.
const (
	CardStatistics    = "statistics"
	CardNavigation    = "navigation"
	CardRecentReports = "recentReports"
)

// DefaultLayout returns the layout of a fresh installation.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		FormFields: []LayoutField{
			{ID: FieldDate, Type: "input", Label: "Date", Required: true, Visible: true, Order: 1, Width: WidthFull},
			{ID: FieldStartTime, Type: "input", Label: "Start", Required: true, Visible: true, Order: 2, Width: WidthHalf},
			{ID: FieldEndTime, Type: "input", Label: "End", Required: true, Visible: true, Order: 3, Width: WidthHalf},
			{ID: FieldBreak, Type: "input", Label: "Break", Visible: true, Order: 4, Width: WidthFull},
			{ID: FieldProject, Type: "input", Label: "Project", Required: true, Visible: true, Order: 5, Width: WidthFull},
			{ID: FieldWorksite, Type: "select", Label: "Worksite", Visible: true, Order: 6, Width: WidthFull},
			{ID: FieldColleagues, Type: "checkbox", Label: "Colleagues", Visible: true, Order: 7, Width: WidthFull},
			{ID: FieldDescription, Type: "textarea", Label: "Description", Required: true, Visible: true, Order: 8, Width: WidthFull},
		},
		DashboardCards: []DashboardCard{
			{ID: CardStatistics, Name: "Statistics", Visible: true, Order: 1, Size: SizeMedium},
			{ID: CardNavigation, Name: "Navigation", Visible: true, Order: 2, Size: SizeLarge},
			{ID: CardRecentReports, Name: "Recent reports", Visible: true, Order: 3, Size: SizeMedium},
		},
	}
}
