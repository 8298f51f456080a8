package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard shows the cards of the active layout, in their configured
order and size:
  - Statistics with progress towards the weekly target
  - Navigation shortcuts
  - Recent reports

Keyboard Controls:
  a/l/c/w/p/t - Show the command for a section
  r           - Refresh data
  q           - Quit dashboard

Examples:
  workreport dashboard
  workreport tui`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	config := tui.DashboardConfig{
		Reports:     ctx.Reports,
		Colleagues:  ctx.Colleagues,
		Worksites:   ctx.Worksites,
		Projects:    ctx.Projects,
		Layout:      ctx.Settings.Settings().Layout,
		Theme:       ctx.Settings.CurrentTheme(),
		RecentCount: ctx.Config.Dashboard.RecentCount,
		WeekTarget:  ctx.Config.Dashboard.WeeklyTargetHours,
		Now:         ctx.Now,
	}

	ctx.Debugf("starting dashboard", "theme", config.Theme.ID)
	return tui.Run(config)
}
