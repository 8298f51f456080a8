package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// configEntry is one effective configuration value and the variable that
// overrides it.
type configEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Env   string `json:"env"`
}

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Show the effective configuration",
	Long: `Show the effective configuration. Values come from built-in defaults and
WORKREPORT_* environment variables.

Examples:
  workreport config
  workreport config get reports.start
  WORKREPORT_DEFAULT_BREAK=30 workreport report add ...`,
	Args: cobra.NoArgs,
	RunE: runConfigGet,
}

// configGetCmd gets configuration values.
var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get configuration value",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || ctx == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var keys []string
		for _, e := range configEntries() {
			keys = appendPrefixed(keys, toComplete, e.Key, e.Env)
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runConfigGet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

func configEntries() []configEntry {
	cfg := ctx.Config
	dbPath := cfg.Storage.Path
	if ctx.DB != nil {
		dbPath = ctx.DB.Path()
		if ctx.DB.InMemory() {
			dbPath = ":memory:"
		}
	}
	return []configEntry{
		{"storage.path", dbPath, "WORKREPORT_DATABASE"},
		{"storage.min-free-space", strconv.FormatUint(cfg.Storage.MinFreeSpace, 10), "WORKREPORT_MIN_FREE_SPACE"},
		{"storage.min-free-space-warning", strconv.FormatUint(cfg.Storage.MinFreeSpaceWarning, 10), "WORKREPORT_MIN_FREE_SPACE_WARNING"},
		{"reports.start", cfg.Reports.DefaultStart.String(), "WORKREPORT_DEFAULT_START"},
		{"reports.end", cfg.Reports.DefaultEnd.String(), "WORKREPORT_DEFAULT_END"},
		{"reports.break", worktime.FormatDecimal(cfg.Reports.DefaultBreakMinutes, 0), "WORKREPORT_DEFAULT_BREAK"},
		{"projects.hours", worktime.FormatDecimal(cfg.Registry.DefaultProjectHours, -1), "WORKREPORT_DEFAULT_PROJECT_HOURS"},
		{"dashboard.recent", strconv.Itoa(cfg.Dashboard.RecentCount), "WORKREPORT_RECENT_COUNT"},
		{"dashboard.weekly-target", worktime.FormatDecimal(cfg.Dashboard.WeeklyTargetHours, -1), "WORKREPORT_WEEKLY_TARGET"},
		{"debug", strconv.FormatBool(cfg.Debug), "WORKREPORT_DEBUG"},
	}
}

// runConfigGet handles the config get command.
func runConfigGet(cmd *cobra.Command, args []string) error {
	entries := configEntries()

	if len(args) > 0 {
		for _, e := range entries {
			if e.Key == args[0] {
				if ctx.IsJSON() {
					return ctx.Formatter.JSON(e)
				}
				ctx.Formatter.Println(e.Value)
				return nil
			}
		}
		return errors.NewUserErrorWithField("key", args[0], fmt.Sprintf("unknown config key: %s", args[0]),
			"Run 'workreport config' to list the keys")
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(entries)
	}

	cli := ctx.CLIFormatter()
	rows := make([]output.TableRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, output.TableRow{Columns: []string{e.Key, cli.Accent(e.Value), e.Env}})
	}
	cli.PrintTable([]string{"KEY", "VALUE", "ENVIRONMENT"}, rows)
	return nil
}
