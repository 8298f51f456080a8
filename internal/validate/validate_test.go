package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
)

// =============================================================================
// Struct Tests
// =============================================================================

func TestStructColleague(t *testing.T) {
	require.NoError(t, Struct(model.ColleagueFields{Name: "Ann", Email: "ann@example.com"}))
	require.NoError(t, Struct(model.ColleagueFields{Name: "Ann"}))

	err := Struct(model.ColleagueFields{Name: "Ann", Email: "not-an-email"})
	require.Error(t, err)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "email", ue.Field)
	assert.Equal(t, "not-an-email", ue.Value)
}

func TestStructUsesJSONNames(t *testing.T) {
	err := Struct(model.WorkReport{BreakMinutes: -5})
	require.Error(t, err)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "breakMinutes", ue.Field)
	assert.Contains(t, ue.Message, "at least 0")
}

func TestStructProjectHours(t *testing.T) {
	require.NoError(t, Struct(model.ProjectFields{Name: "P", DefaultHours: 8}))
	assert.Error(t, Struct(model.ProjectFields{Name: "P", DefaultHours: 25}))
	assert.Error(t, Struct(model.ProjectFields{Name: "P", DefaultHours: -1}))
}

func TestStructThemeColors(t *testing.T) {
	theme := model.DefaultThemes()[0]
	require.NoError(t, Struct(theme))

	theme.Colors.Accent = "blue"
	err := Struct(theme)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidColor)
}

func TestStructLayoutWidth(t *testing.T) {
	field := model.DefaultLayout().FormFields[0]
	require.NoError(t, Struct(field))

	field.Width = "double"
	err := Struct(field)
	require.Error(t, err)
	ue, _ := errors.AsUserError(err)
	assert.Contains(t, ue.Suggestion, "full, half, third")
}

func TestStructMaxLength(t *testing.T) {
	err := Struct(model.WorksiteFields{Name: "W", Address: strings.Repeat("x", 300)})
	require.Error(t, err)
	ue, _ := errors.AsUserError(err)
	assert.Equal(t, "address", ue.Field)
	assert.Contains(t, ue.Suggestion, "256")
}

// =============================================================================
// Field Helper Tests
// =============================================================================

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"x", false},
		{"  padded  ", false},
		{"", true},
		{"   ", true},
		{"\t\n", true},
	}

	for _, tt := range tests {
		err := NonEmpty("project", tt.value)
		if tt.wantErr {
			assert.Error(t, err, "value %q", tt.value)
			assert.ErrorIs(t, err, errors.ErrNameRequired)
			assert.True(t, errors.IsUserError(err))
		} else {
			assert.NoError(t, err, "value %q", tt.value)
		}
	}
}

func TestName(t *testing.T) {
	assert.NoError(t, Name("Acme"))
	assert.Error(t, Name("  "))
	assert.NoError(t, Name(strings.Repeat("é", MaxNameLength)))
	assert.Error(t, Name(strings.Repeat("a", MaxNameLength+1)))
}

func TestHexColor(t *testing.T) {
	for _, c := range []string{"#FF5733", "#00ff00", "#abc"} {
		assert.NoError(t, HexColor(c), c)
	}
	for _, c := range []string{"", "FF5733", "#GG0000", "#12345", "red"} {
		err := HexColor(c)
		assert.Error(t, err, c)
		assert.ErrorIs(t, err, errors.ErrInvalidColor)
	}
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email", "a@b.co", "email"))
	assert.Error(t, Var("email", "nope", "email"))
}

// =============================================================================
// Sanitize Tests
// =============================================================================

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "Acme Corp", SanitizeLabel("  Acme\x07 Corp \n"))
}

func TestSanitizeNote(t *testing.T) {
	assert.Equal(t, "line1\nline2\nline3", SanitizeNote(" line1\r\nline2\rline3\x00 "))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "reports_2024-03", SafeFilename("reports/2024-03"))
	assert.Equal(t, "a_b", SafeFilename(" a:b. "))
	assert.Len(t, SafeFilename(strings.Repeat("x", 300)), 200)
}
