package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/parser"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Stats command flags.
var statsFlagRange string

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "summary"},
	Short:   "Show report statistics",
	Long: `Show total reports, total hours, hours this week (Monday to Sunday),
today's report count and registry sizes.

With --range, hours of that range are also broken down by project.

Examples:
  workreport stats
  workreport stats --range "last month"
  workreport stats --format json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsFlagRange, "range", "r", "", "Break hours of this range down by project")
	statsCmd.RegisterFlagCompletionFunc("range", completeRanges)

	rootCmd.AddCommand(statsCmd)
}

// ProjectHours is the hours logged on one project.
type ProjectHours struct {
	Project string  `json:"project"`
	Reports int     `json:"reports"`
	Hours   float64 `json:"hours"`
}

func runStats(cmd *cobra.Command, args []string) error {
	summary := ctx.Summary()

	var breakdown []ProjectHours
	if cmd.Flags().Changed("range") {
		period, err := parser.ParsePeriod(statsFlagRange, ctx.Today())
		if err != nil {
			return inputError(err)
		}
		breakdown = projectBreakdown(ctx.Reports.List(storage.ListOptions{From: period.From, To: period.To}))
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			output.Summary
			ByProject []ProjectHours `json:"by_project,omitempty"`
		}{summary, breakdown})
	}

	cli := ctx.CLIFormatter()
	cli.PrintSummary(summary)
	if breakdown == nil {
		return nil
	}

	cli.Println()
	cli.Title("By project (" + statsFlagRange + ")")
	if len(breakdown) == 0 {
		cli.Muted("No reports in this range.")
		return nil
	}
	rows := make([]output.TableRow, 0, len(breakdown))
	for _, p := range breakdown {
		rows = append(rows, output.TableRow{Columns: []string{
			cli.ProjectName(p.Project),
			output.Plural(p.Reports, "report"),
			cli.Hours(worktime.FormatHours(p.Hours)),
		}})
	}
	cli.PrintTable([]string{"PROJECT", "REPORTS", "HOURS"}, rows)
	return nil
}

// projectBreakdown groups reports by case-insensitive project name, most
// hours first.
func projectBreakdown(reports []*model.WorkReport) []ProjectHours {
	byKey := map[string]*ProjectHours{}
	out := []ProjectHours{}
	var order []string
	for _, r := range reports {
		key := strings.ToLower(r.Project)
		p, ok := byKey[key]
		if !ok {
			p = &ProjectHours{Project: r.Project}
			byKey[key] = p
			order = append(order, key)
		}
		p.Reports++
		p.Hours += r.Hours
	}
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	return out
}
