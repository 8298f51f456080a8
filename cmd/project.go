package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Project command flags.
var (
	projectFlagSearch       string
	projectFlagName         string
	projectFlagDescription  string
	projectFlagDefaultHours float64
)

// projectCmd represents the project command.
var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "proj", "pj"},
	Short:   "Manage projects",
	Long: `List and manage recurring projects. A report stores the project name, so
renaming or deleting a project leaves existing reports unchanged.

Examples:
  workreport project
  workreport project add Acme --description "Pump maintenance contract" --hours 7.5
  workreport project edit 0190aa11-... --name "Acme GmbH"
  workreport project delete 0190aa11-...`,
	Args: cobra.NoArgs,
	RunE: runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:     "add NAME",
	Aliases: []string{"create", "new"},
	Short:   "Add a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectAdd,
}

var projectEditCmd = &cobra.Command{
	Use:               "edit PROJECT_ID",
	Short:             "Edit a project",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeProjectIDs),
	RunE:              runProjectEdit,
}

var projectDeleteCmd = &cobra.Command{
	Use:               "delete PROJECT_ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a project",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeProjectIDs),
	RunE:              runProjectDelete,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Args:    cobra.NoArgs,
	RunE:    runProjectList,
}

func init() {
	for _, c := range []*cobra.Command{projectCmd, projectListCmd} {
		c.Flags().StringVarP(&projectFlagSearch, "search", "q", "", "Search name and description")
	}
	for _, c := range []*cobra.Command{projectAddCmd, projectEditCmd} {
		c.Flags().StringVarP(&projectFlagDescription, "description", "d", "", "Description")
		c.Flags().Float64Var(&projectFlagDefaultHours, "hours", model.DefaultProjectHours, "Planned hours per day (0-24)")
	}
	projectEditCmd.Flags().StringVarP(&projectFlagName, "name", "n", "", "New name")

	projectCmd.AddCommand(projectAddCmd, projectEditCmd, projectDeleteCmd, projectListCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	list := ctx.Projects.List(projectFlagSearch)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewListResponse("project", list))
	}
	ctx.CLIFormatter().PrintProjects(list)
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	hours := ctx.Config.Registry.DefaultProjectHours
	if cmd.Flags().Changed("hours") {
		hours = projectFlagDefaultHours
	}

	p, err := ctx.Projects.Create(model.ProjectFields{
		Name:         args[0],
		Description:  projectFlagDescription,
		DefaultHours: hours,
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("created", "project", p)
	}
	cli := ctx.CLIFormatter()
	cli.Success("Added project " + cli.ProjectName(p.Name))
	cli.Field("Default day", worktime.FormatHours(p.DefaultHours))
	cli.Field("ID", p.ID)
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	current, err := ctx.Projects.Get(args[0])
	if err != nil {
		return err
	}

	fields := model.ProjectFields{Name: current.Name, Description: current.Description, DefaultHours: current.DefaultHours}
	flags := cmd.Flags()
	if flags.Changed("name") {
		fields.Name = projectFlagName
	}
	if flags.Changed("description") {
		fields.Description = projectFlagDescription
	}
	if flags.Changed("hours") {
		fields.DefaultHours = projectFlagDefaultHours
	}

	p, err := ctx.Projects.Update(current.ID, fields)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("updated", "project", p)
	}
	ctx.CLIFormatter().Success("Updated project " + p.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if err := ctx.Projects.Delete(args[0]); err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted("project", args[0])
	}
	ctx.CLIFormatter().Success("Project deleted")
	return nil
}
