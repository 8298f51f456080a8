package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
)

// Colleague command flags.
var (
	colleagueFlagSearch     string
	colleagueFlagName       string
	colleagueFlagDepartment string
	colleagueFlagEmail      string
)

// colleagueCmd represents the colleague command.
var colleagueCmd = &cobra.Command{
	Use:     "colleague",
	Aliases: []string{"colleagues", "col"},
	Short:   "Manage colleagues",
	Long: `List and manage the colleagues that can be attached to reports.

Reports keep a copy of each attached colleague, so editing or deleting a
colleague never changes existing reports.

Examples:
  workreport colleague
  workreport colleague add "Ann Smith" --department Service --email ann@example.com
  workreport colleague edit 0190aa11-... --department Assembly
  workreport colleague delete 0190aa11-...`,
	Args: cobra.NoArgs,
	RunE: runColleagueList,
}

var colleagueAddCmd = &cobra.Command{
	Use:     "add NAME",
	Aliases: []string{"create", "new"},
	Short:   "Add a colleague",
	Args:    cobra.ExactArgs(1),
	RunE:    runColleagueAdd,
}

var colleagueEditCmd = &cobra.Command{
	Use:               "edit COLLEAGUE_ID",
	Short:             "Edit a colleague",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeColleagueIDs),
	RunE:              runColleagueEdit,
}

var colleagueDeleteCmd = &cobra.Command{
	Use:               "delete COLLEAGUE_ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a colleague",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeColleagueIDs),
	RunE:              runColleagueDelete,
}

var colleagueListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List colleagues",
	Args:    cobra.NoArgs,
	RunE:    runColleagueList,
}

func init() {
	for _, c := range []*cobra.Command{colleagueCmd, colleagueListCmd} {
		c.Flags().StringVarP(&colleagueFlagSearch, "search", "q", "", "Search name, department and email")
	}
	for _, c := range []*cobra.Command{colleagueAddCmd, colleagueEditCmd} {
		c.Flags().StringVar(&colleagueFlagDepartment, "department", "", "Department")
		c.Flags().StringVar(&colleagueFlagEmail, "email", "", "Email address")
	}
	colleagueEditCmd.Flags().StringVarP(&colleagueFlagName, "name", "n", "", "New name")

	colleagueCmd.AddCommand(colleagueAddCmd, colleagueEditCmd, colleagueDeleteCmd, colleagueListCmd)
	rootCmd.AddCommand(colleagueCmd)
}

func runColleagueList(cmd *cobra.Command, args []string) error {
	list := ctx.Colleagues.List(colleagueFlagSearch)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewListResponse("colleague", list))
	}
	ctx.CLIFormatter().PrintColleagues(list)
	return nil
}

func runColleagueAdd(cmd *cobra.Command, args []string) error {
	c, err := ctx.Colleagues.Create(model.ColleagueFields{
		Name:       args[0],
		Department: colleagueFlagDepartment,
		Email:      colleagueFlagEmail,
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("created", "colleague", c)
	}
	cli := ctx.CLIFormatter()
	cli.Success("Added colleague " + cli.ProjectName(c.Name))
	cli.Field("ID", c.ID)
	return nil
}

func runColleagueEdit(cmd *cobra.Command, args []string) error {
	current, err := ctx.Colleagues.Get(args[0])
	if err != nil {
		return err
	}

	fields := model.ColleagueFields{Name: current.Name, Department: current.Department, Email: current.Email}
	flags := cmd.Flags()
	if flags.Changed("name") {
		fields.Name = colleagueFlagName
	}
	if flags.Changed("department") {
		fields.Department = colleagueFlagDepartment
	}
	if flags.Changed("email") {
		fields.Email = colleagueFlagEmail
	}

	c, err := ctx.Colleagues.Update(current.ID, fields)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("updated", "colleague", c)
	}
	ctx.CLIFormatter().Success("Updated colleague " + c.Name)
	return nil
}

func runColleagueDelete(cmd *cobra.Command, args []string) error {
	if err := ctx.Colleagues.Delete(args[0]); err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted("colleague", args[0])
	}
	ctx.CLIFormatter().Success("Colleague deleted")
	return nil
}
