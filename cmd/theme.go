package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
)

// Theme command flags.
var (
	themeAddFlagID   string
	themeAddFlagFrom string
	themeAddFlagFile string

	themeResetFlagYes bool

	// themeColorFlags maps a color flag to its value, filled by init.
	themeColorFlags = map[string]*string{}
)

// themeCmd represents the theme command.
var themeCmd = &cobra.Command{
	Use:     "theme",
	Aliases: []string{"themes"},
	Short:   "Manage color themes",
	Long: `List, activate and define color themes. The active theme colors the CLI
output, the dashboard and the XLSX export header.

Examples:
  workreport theme
  workreport theme use forest-green
  workreport theme add "Night" --from dark-purple --primary "#ff8800"
  workreport theme add "Brand" --file brand.json
  workreport theme remove custom-0190aa11-...
  workreport theme reset --yes`,
	Args: cobra.NoArgs,
	RunE: runThemeList,
}

var themeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List themes",
	Args:    cobra.NoArgs,
	RunE:    runThemeList,
}

var themeShowCmd = &cobra.Command{
	Use:               "show [THEME_ID]",
	Short:             "Show the colors of a theme (default: active)",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeThemeIDs,
	RunE:              runThemeShow,
}

var themeUseCmd = &cobra.Command{
	Use:               "use THEME_ID",
	Aliases:           []string{"set", "activate"},
	Short:             "Activate a theme",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeThemeIDs,
	RunE:              runThemeUse,
}

var themeAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a custom theme",
	Long: `Add a custom theme. Colors start from --from (default: the active theme)
or from a JSON file of colors, and are overridden by the color flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeAdd,
}

var themeRemoveCmd = &cobra.Command{
	Use:               "remove THEME_ID",
	Aliases:           []string{"rm", "delete"},
	Short:             "Remove a custom theme",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeThemeIDs,
	RunE:              runThemeRemove,
}

var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default theme and layout, dropping custom themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeReset,
}

func init() {
	themeAddCmd.Flags().StringVar(&themeAddFlagID, "id", "", "Theme id (generated if omitted)")
	themeAddCmd.Flags().StringVar(&themeAddFlagFrom, "from", "", "Theme to copy colors from")
	themeAddCmd.Flags().StringVar(&themeAddFlagFile, "file", "", "JSON file with theme colors")
	themeAddCmd.MarkFlagsMutuallyExclusive("from", "file")
	themeAddCmd.RegisterFlagCompletionFunc("from", completeThemeIDs)
	for _, name := range []string{
		"primary", "secondary", "accent", "background", "surface", "text",
		"text-secondary", "border", "success", "warning", "error",
	} {
		v := new(string)
		themeColorFlags[name] = v
		themeAddCmd.Flags().StringVar(v, name, "", "Hex color for "+name)
	}

	themeResetCmd.Flags().BoolVarP(&themeResetFlagYes, "yes", "y", false, "Skip confirmation prompt")

	themeCmd.AddCommand(themeListCmd, themeShowCmd, themeUseCmd, themeAddCmd, themeRemoveCmd, themeResetCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	themes := ctx.Settings.Themes()
	active := ctx.Settings.CurrentTheme().ID

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewThemesResponse(themes, active, ctx.Settings.IsCustomTheme))
	}
	ctx.CLIFormatter().PrintThemes(themes, active, ctx.Settings.IsCustomTheme)
	return nil
}

func findTheme(id string) (model.Theme, error) {
	for _, t := range ctx.Settings.Themes() {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Theme{}, errors.NotFound(errors.ErrThemeNotFound, id)
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	theme := ctx.Settings.CurrentTheme()
	if len(args) > 0 {
		var err error
		if theme, err = findTheme(args[0]); err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(theme)
	}
	ctx.CLIFormatter().PrintTheme(theme)
	return nil
}

func runThemeUse(cmd *cobra.Command, args []string) error {
	if err := ctx.Settings.SetActiveTheme(args[0]); err != nil {
		return err
	}
	ctx.RefreshTheme()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus("ok", "active theme: "+args[0])
	}
	cli := ctx.CLIFormatter()
	cli.Success("Theme set to " + cli.Accent(ctx.Formatter.Theme.Name))
	return nil
}

func runThemeAdd(cmd *cobra.Command, args []string) error {
	base := ctx.Settings.CurrentTheme()
	if themeAddFlagFrom != "" {
		var err error
		if base, err = findTheme(themeAddFlagFrom); err != nil {
			return err
		}
	}

	theme := model.Theme{
		ID:     themeAddFlagID,
		Name:   args[0],
		Colors: base.Colors,
	}
	if themeAddFlagFile != "" {
		colors, err := readThemeColors(themeAddFlagFile)
		if err != nil {
			return err
		}
		theme.Colors = colors
	}

	colors := &theme.Colors
	for name, target := range map[string]*string{
		"primary": &colors.Primary, "secondary": &colors.Secondary, "accent": &colors.Accent,
		"background": &colors.Background, "surface": &colors.Surface, "text": &colors.Text,
		"text-secondary": &colors.TextSecondary, "border": &colors.Border,
		"success": &colors.Success, "warning": &colors.Warning, "error": &colors.Error,
	} {
		if cmd.Flags().Changed(name) {
			*target = *themeColorFlags[name]
		}
	}

	added, err := ctx.Settings.AddCustomTheme(theme)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("created", "theme", added)
	}
	cli := ctx.CLIFormatter()
	cli.Success("Added theme " + added.Name)
	cli.Field("ID", added.ID)
	cli.Muted("Activate it with 'workreport theme use " + added.ID + "'")
	return nil
}

// readThemeColors reads a theme file holding either a whole theme or just
// its colors object.
func readThemeColors(path string) (model.ThemeColors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ThemeColors{}, errors.NewUserErrorWithField("file", path, "cannot read theme file", err.Error())
	}

	var wrapped struct {
		Colors *model.ThemeColors `json:"colors"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Colors != nil {
		return *wrapped.Colors, nil
	}
	var colors model.ThemeColors
	if err := json.Unmarshal(data, &colors); err != nil {
		return model.ThemeColors{}, errors.NewUserErrorWithField("file", path, "theme file is not valid JSON", err.Error())
	}
	return colors, nil
}

func runThemeRemove(cmd *cobra.Command, args []string) error {
	if err := ctx.Settings.RemoveCustomTheme(args[0]); err != nil {
		return err
	}
	ctx.RefreshTheme()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted("theme", args[0])
	}
	ctx.CLIFormatter().Success("Theme removed")
	return nil
}

func runThemeReset(cmd *cobra.Command, args []string) error {
	if !themeResetFlagYes && !ctx.IsJSON() && isInteractive() {
		confirmed, err := promptConfirmation("Reset theme and layout and drop all custom themes? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.CLIFormatter().Muted("Cancelled")
			return nil
		}
	}

	if err := ctx.Settings.ResetToDefaults(); err != nil {
		return err
	}
	ctx.RefreshTheme()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus("ok", "design settings reset")
	}
	ctx.CLIFormatter().Success("Design settings reset to defaults")
	return nil
}
