package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
)

// Worksite command flags.
var (
	worksiteFlagSearch      string
	worksiteFlagName        string
	worksiteFlagAddress     string
	worksiteFlagDescription string
)

// worksiteCmd represents the worksite command.
var worksiteCmd = &cobra.Command{
	Use:     "worksite",
	Aliases: []string{"worksites", "site", "ws"},
	Short:   "Manage worksites",
	Long: `List and manage the places where work is performed.

Examples:
  workreport worksite
  workreport worksite add Harbour --address "Pier 4, Hamburg"
  workreport worksite edit 0190aa11-... --description "Night shifts only"
  workreport worksite delete 0190aa11-...`,
	Args: cobra.NoArgs,
	RunE: runWorksiteList,
}

var worksiteAddCmd = &cobra.Command{
	Use:     "add NAME",
	Aliases: []string{"create", "new"},
	Short:   "Add a worksite",
	Args:    cobra.ExactArgs(1),
	RunE:    runWorksiteAdd,
}

var worksiteEditCmd = &cobra.Command{
	Use:               "edit WORKSITE_ID",
	Short:             "Edit a worksite",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeWorksiteIDs),
	RunE:              runWorksiteEdit,
}

var worksiteDeleteCmd = &cobra.Command{
	Use:               "delete WORKSITE_ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a worksite",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeWorksiteIDs),
	RunE:              runWorksiteDelete,
}

var worksiteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List worksites",
	Args:    cobra.NoArgs,
	RunE:    runWorksiteList,
}

func init() {
	for _, c := range []*cobra.Command{worksiteCmd, worksiteListCmd} {
		c.Flags().StringVarP(&worksiteFlagSearch, "search", "q", "", "Search name, address and description")
	}
	for _, c := range []*cobra.Command{worksiteAddCmd, worksiteEditCmd} {
		c.Flags().StringVar(&worksiteFlagAddress, "address", "", "Street address")
		c.Flags().StringVarP(&worksiteFlagDescription, "description", "d", "", "Description")
	}
	worksiteEditCmd.Flags().StringVarP(&worksiteFlagName, "name", "n", "", "New name")

	worksiteCmd.AddCommand(worksiteAddCmd, worksiteEditCmd, worksiteDeleteCmd, worksiteListCmd)
	rootCmd.AddCommand(worksiteCmd)
}

func runWorksiteList(cmd *cobra.Command, args []string) error {
	list := ctx.Worksites.List(worksiteFlagSearch)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewListResponse("worksite", list))
	}
	ctx.CLIFormatter().PrintWorksites(list)
	return nil
}

func runWorksiteAdd(cmd *cobra.Command, args []string) error {
	w, err := ctx.Worksites.Create(model.WorksiteFields{
		Name:        args[0],
		Address:     worksiteFlagAddress,
		Description: worksiteFlagDescription,
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("created", "worksite", w)
	}
	cli := ctx.CLIFormatter()
	cli.Success("Added worksite " + cli.Accent(w.Name))
	cli.Field("ID", w.ID)
	return nil
}

func runWorksiteEdit(cmd *cobra.Command, args []string) error {
	current, err := ctx.Worksites.Get(args[0])
	if err != nil {
		return err
	}

	fields := model.WorksiteFields{Name: current.Name, Address: current.Address, Description: current.Description}
	flags := cmd.Flags()
	if flags.Changed("name") {
		fields.Name = worksiteFlagName
	}
	if flags.Changed("address") {
		fields.Address = worksiteFlagAddress
	}
	if flags.Changed("description") {
		fields.Description = worksiteFlagDescription
	}

	w, err := ctx.Worksites.Update(current.ID, fields)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("updated", "worksite", w)
	}
	ctx.CLIFormatter().Success("Updated worksite " + w.Name)
	return nil
}

func runWorksiteDelete(cmd *cobra.Command, args []string) error {
	if err := ctx.Worksites.Delete(args[0]); err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted("worksite", args[0])
	}
	ctx.CLIFormatter().Success("Worksite deleted")
	return nil
}
