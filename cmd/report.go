package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/parser"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Report command flags.
var (
	reportFlagDate        string
	reportFlagStart       string
	reportFlagEnd         string
	reportFlagBreak       string
	reportFlagProject     string
	reportFlagProjectID   string
	reportFlagWorksite    string
	reportFlagWorksiteID  string
	reportFlagColleagues  []string
	reportFlagDescription string

	reportListFlagSearch string
	reportListFlagRange  string
	reportListFlagSort   string

	reportDeleteFlagYes bool
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports", "r"},
	Short:   "Manage work reports",
	Long: `Add, edit, delete and list work reports.

Examples:
  workreport report add --start 8:00 --end 16:30 --break 30m --project Acme --description "Pump maintenance"
  workreport report add --date yesterday --start 9am --end 5pm --project-id 0190aa --colleague Ann -d "Survey"
  workreport report list --range week --sort hours
  workreport report show 0190aa11
  workreport report delete 0190aa11 --yes`,
	RunE: runReportList,
}

var reportAddCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"new", "log"},
	Short:   "Add a work report",
	Args:    cobra.NoArgs,
	RunE:    runReportAdd,
}

var reportEditCmd = &cobra.Command{
	Use:               "edit REPORT_ID",
	Short:             "Edit a work report",
	Long:              "Edit a work report. Only the given flags change; hours are recomputed.",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReportIDs,
	RunE:              runReportEdit,
}

var reportDeleteCmd = &cobra.Command{
	Use:               "delete REPORT_ID",
	Aliases:           []string{"rm", "del"},
	Short:             "Delete a work report",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReportIDs,
	RunE:              runReportDelete,
}

var reportListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List work reports",
	Long: `List work reports, newest first.

--range accepts today, yesterday, week, month, this/last week|month|year,
a single date, or all.`,
	Args: cobra.NoArgs,
	RunE: runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:               "show REPORT_ID",
	Short:             "Show a work report",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReportIDs,
	RunE:              runReportShow,
}

func addReportFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportFlagDate, "date", "", "Day of the work (default today; e.g. yesterday, 2024-03-15)")
	cmd.Flags().StringVarP(&reportFlagStart, "start", "s", "", "Start time (e.g. 08:00, 8am)")
	cmd.Flags().StringVarP(&reportFlagEnd, "end", "e", "", "End time (e.g. 16:30, 4:30pm)")
	cmd.Flags().StringVarP(&reportFlagBreak, "break", "b", "", "Break (e.g. 30, 30m, 1h)")
	cmd.Flags().StringVarP(&reportFlagProject, "project", "p", "", "Project name")
	cmd.Flags().StringVar(&reportFlagProjectID, "project-id", "", "Copy the name of a registered project")
	cmd.Flags().StringVarP(&reportFlagWorksite, "worksite", "w", "", "Worksite name")
	cmd.Flags().StringVar(&reportFlagWorksiteID, "worksite-id", "", "Copy the name of a registered worksite")
	cmd.Flags().StringArrayVarP(&reportFlagColleagues, "colleague", "c", nil, "Colleague id or name (repeatable)")
	cmd.Flags().StringVarP(&reportFlagDescription, "description", "d", "", "What was done")

	cmd.MarkFlagsMutuallyExclusive("project", "project-id")
	cmd.MarkFlagsMutuallyExclusive("worksite", "worksite-id")
	cmd.RegisterFlagCompletionFunc("project-id", completeProjectIDs)
	cmd.RegisterFlagCompletionFunc("worksite-id", completeWorksiteIDs)
	cmd.RegisterFlagCompletionFunc("colleague", completeColleagueIDs)
}

func init() {
	addReportFieldFlags(reportAddCmd)
	addReportFieldFlags(reportEditCmd)

	for _, c := range []*cobra.Command{reportCmd, reportListCmd} {
		c.Flags().StringVarP(&reportListFlagSearch, "search", "q", "", "Search project, description, worksite and colleagues")
		c.Flags().StringVarP(&reportListFlagRange, "range", "r", "all", "Date range (today, week, month, last week, all, ...)")
		c.Flags().StringVar(&reportListFlagSort, "sort", "date", "Sort by: date, hours, project")
		c.RegisterFlagCompletionFunc("range", completeRanges)
	}

	reportDeleteCmd.Flags().BoolVarP(&reportDeleteFlagYes, "yes", "y", false, "Skip confirmation prompt")

	reportCmd.AddCommand(reportAddCmd, reportEditCmd, reportDeleteCmd, reportListCmd, reportShowCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportAdd(cmd *cobra.Command, args []string) error {
	defaults := ctx.Config.Reports
	in := model.ReportInput{
		Date:         ctx.Today(),
		StartTime:    defaults.DefaultStart,
		EndTime:      defaults.DefaultEnd,
		BreakMinutes: defaults.DefaultBreakMinutes,
	}
	if err := applyReportFlags(cmd, &in); err != nil {
		return err
	}

	report, err := ctx.Reports.Create(in)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReport("created", report)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Logged %s on %s",
		cli.Hours(worktime.FormatHours(report.Hours)), cli.ProjectName(report.Project)))
	cli.Field("Date", report.Date.String())
	cli.Field("Time", fmt.Sprintf("%s-%s, break %s", report.StartTime, report.EndTime, parser.FormatBreak(report.BreakMinutes)))
	cli.Field("ID", report.ID)
	if report.EndTime.Before(report.StartTime) {
		cli.Warning("End time is before start time; the report counts 0h")
	}
	return nil
}

func runReportEdit(cmd *cobra.Command, args []string) error {
	id, err := ctx.Reports.Resolve(args[0])
	if err != nil {
		return err
	}
	current, err := ctx.Reports.Get(id)
	if err != nil {
		return err
	}

	in := current.Input()
	if err := applyReportFlags(cmd, &in); err != nil {
		return err
	}

	edited := *current
	edited.Date = in.Date
	edited.StartTime = in.StartTime
	edited.EndTime = in.EndTime
	edited.BreakMinutes = in.BreakMinutes
	edited.Project = in.Project
	edited.Worksite = in.Worksite
	edited.Description = in.Description
	edited.Colleagues = in.Colleagues

	report, err := ctx.Reports.Update(id, edited)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReport("updated", report)
	}
	cli := ctx.CLIFormatter()
	cli.Success("Report updated")
	cli.PrintReport(report)
	return nil
}

// applyReportFlags overwrites the fields of in whose flags were given.
func applyReportFlags(cmd *cobra.Command, in *model.ReportInput) error {
	flags := cmd.Flags()

	if flags.Changed("date") {
		d, err := parser.ParseDate(reportFlagDate, ctx.Now())
		if err != nil {
			return inputError(err)
		}
		in.Date = d
	}
	if flags.Changed("start") {
		c, err := parser.ParseClock(reportFlagStart)
		if err != nil {
			return inputError(err)
		}
		in.StartTime = c
	}
	if flags.Changed("end") {
		c, err := parser.ParseClock(reportFlagEnd)
		if err != nil {
			return inputError(err)
		}
		in.EndTime = c
	}
	if flags.Changed("break") {
		minutes, err := parser.ParseBreak(reportFlagBreak)
		if err != nil {
			return inputError(err)
		}
		in.BreakMinutes = minutes
	}

	switch {
	case flags.Changed("project-id"):
		p, err := ctx.Projects.Get(reportFlagProjectID)
		if err != nil {
			return err
		}
		in.Project = p.Name
	case flags.Changed("project"):
		in.Project = reportFlagProject
	}

	switch {
	case flags.Changed("worksite-id"):
		w, err := ctx.Worksites.Get(reportFlagWorksiteID)
		if err != nil {
			return err
		}
		in.Worksite = w.Name
	case flags.Changed("worksite"):
		in.Worksite = reportFlagWorksite
	}

	if flags.Changed("colleague") {
		colleagues, err := resolveColleagues(reportFlagColleagues)
		if err != nil {
			return err
		}
		in.Colleagues = colleagues
	}

	if flags.Changed("description") {
		in.Description = reportFlagDescription
	}
	return nil
}

// resolveColleagues snapshots colleagues given by id or by exact name.
func resolveColleagues(refs []string) ([]model.Colleague, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, err := ctx.Colleagues.Get(ref); err == nil {
			ids = append(ids, ref)
			continue
		}

		var matches []string
		for _, c := range ctx.Colleagues.List(ref) {
			if strings.EqualFold(c.Name, ref) {
				matches = append(matches, c.ID)
			}
		}
		switch len(matches) {
		case 0:
			return nil, errors.NotFound(errors.ErrColleagueNotFound, ref)
		case 1:
			ids = append(ids, matches[0])
		default:
			return nil, errors.NewUserErrorWithField("colleague", ref,
				"several colleagues have this name", "Pass the colleague id instead")
		}
	}
	return ctx.Colleagues.Snapshots(ids)
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	id, err := ctx.Reports.Resolve(args[0])
	if err != nil {
		return err
	}
	report, err := ctx.Reports.Get(id)
	if err != nil {
		return err
	}

	// Confirm deletion unless --yes is used
	if !reportDeleteFlagYes && !ctx.IsJSON() && isInteractive() {
		cli := ctx.CLIFormatter()
		cli.Printf("Delete report for %s on %s (%s)?\n",
			cli.ProjectName(report.Project), report.Date, worktime.FormatHours(report.Hours))

		confirmed, err := promptConfirmation("Delete this report? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			cli.Muted("Cancelled")
			return nil
		}
	}

	if err := ctx.Reports.Delete(id); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted("report", id)
	}
	ctx.CLIFormatter().Success("Report deleted")
	return nil
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptConfirmation prompts the user for a yes/no confirmation.
func promptConfirmation(prompt string) (bool, error) {
	fmt.Fprint(os.Stderr, prompt)
	var response string
	if _, err := fmt.Fscanln(os.Stdin, &response); err != nil {
		// Empty input (just Enter) means no
		return false, nil
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

func runReportList(cmd *cobra.Command, args []string) error {
	sortKey, ok := storage.ParseSortKey(reportListFlagSort)
	if !ok {
		return errors.NewUserErrorWithField("sort", reportListFlagSort, "Unknown sort key", "Use one of: date, hours, project")
	}

	period, err := parser.ParsePeriod(reportListFlagRange, ctx.Today())
	if err != nil {
		return inputError(err)
	}

	reports := ctx.Reports.List(storage.ListOptions{
		Query: reportListFlagSearch,
		From:  period.From,
		To:    period.To,
		Sort:  sortKey,
	})

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReports(reports)
	}
	ctx.CLIFormatter().PrintReports(reports)
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	id, err := ctx.Reports.Resolve(args[0])
	if err != nil {
		return err
	}
	report, err := ctx.Reports.Get(id)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReport("ok", report)
	}
	ctx.CLIFormatter().PrintReport(report)
	return nil
}

// inputError converts parser failures to user errors.
func inputError(err error) error {
	var ie *parser.InputError
	if errors.As(err, &ie) {
		return ie.ToUserError()
	}
	return err
}
