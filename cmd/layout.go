package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
)

// layoutCmd represents the layout command.
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Arrange form fields and dashboard cards",
	Long: `Show and change the order, visibility and size of the report form fields
and the dashboard cards.

Examples:
  workreport layout
  workreport layout move description date
  workreport layout hide-field worksite
  workreport layout width startTime third
  workreport layout card recentReports --size large
  workreport layout card navigation --hide`,
	Args: cobra.NoArgs,
	RunE: runLayoutShow,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the layout",
	Args:  cobra.NoArgs,
	RunE:  runLayoutShow,
}

var layoutMoveCmd = &cobra.Command{
	Use:   "move FIELD_ID TARGET_FIELD_ID",
	Short: "Move a form field to the position of another",
	Long: `Move a form field to the position of another field; the fields in
between shift by one. Orders are renumbered from 1.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= 2 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeFieldIDs(cmd, args, toComplete)
	},
	RunE: runLayoutMove,
}

var layoutShowFieldCmd = &cobra.Command{
	Use:               "show-field FIELD_ID",
	Short:             "Show a form field",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeFieldIDs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFieldVisibility(args[0], true)
	},
}

var layoutHideFieldCmd = &cobra.Command{
	Use:               "hide-field FIELD_ID",
	Short:             "Hide a form field",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFirstArg(completeFieldIDs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFieldVisibility(args[0], false)
	},
}

var layoutWidthCmd = &cobra.Command{
	Use:   "width FIELD_ID full|half|third",
	Short: "Set the width of a form field",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return completeFieldIDs(cmd, args, toComplete)
		case 1:
			return []string{string(model.WidthFull), string(model.WidthHalf), string(model.WidthThird)}, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runLayoutWidth,
}

// Card command flags.
var (
	layoutCardFlagShow bool
	layoutCardFlagHide bool
	layoutCardFlagSize string
)

var layoutCardCmd = &cobra.Command{
	Use:               "card CARD_ID",
	Short:             "Show, hide or resize a dashboard card",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCardIDs,
	RunE:              runLayoutCard,
}

func init() {
	layoutCardCmd.Flags().BoolVar(&layoutCardFlagShow, "show", false, "Show the card")
	layoutCardCmd.Flags().BoolVar(&layoutCardFlagHide, "hide", false, "Hide the card")
	layoutCardCmd.Flags().StringVar(&layoutCardFlagSize, "size", "", "Card size: small, medium, large")
	layoutCardCmd.MarkFlagsMutuallyExclusive("show", "hide")
	layoutCardCmd.MarkFlagsOneRequired("show", "hide", "size")

	layoutCmd.AddCommand(layoutShowCmd, layoutMoveCmd, layoutShowFieldCmd, layoutHideFieldCmd, layoutWidthCmd, layoutCardCmd)
	rootCmd.AddCommand(layoutCmd)
}

func runLayoutShow(cmd *cobra.Command, args []string) error {
	layout := ctx.Settings.Settings().Layout
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(layout)
	}
	ctx.CLIFormatter().PrintLayout(layout)
	return nil
}

// printLayoutChange acknowledges a layout mutation.
func printLayoutChange(message string) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(ctx.Settings.Settings().Layout)
	}
	ctx.CLIFormatter().Success(message)
	return nil
}

func runLayoutMove(cmd *cobra.Command, args []string) error {
	if err := ctx.Settings.MoveFormField(args[0], args[1]); err != nil {
		return err
	}
	return printLayoutChange(fmt.Sprintf("Moved %s to the position of %s", args[0], args[1]))
}

func setFieldVisibility(id string, visible bool) error {
	if err := ctx.Settings.SetFieldVisibility(id, visible); err != nil {
		return err
	}
	if visible {
		return printLayoutChange("Field " + id + " shown")
	}
	return printLayoutChange("Field " + id + " hidden")
}

func parseFieldWidth(s string) (model.FieldWidth, error) {
	switch w := model.FieldWidth(strings.ToLower(strings.TrimSpace(s))); w {
	case model.WidthFull, model.WidthHalf, model.WidthThird:
		return w, nil
	}
	return "", errors.NewUserErrorWithField("width", s, "Unknown field width", "Use one of: full, half, third")
}

func parseCardSize(s string) (model.CardSize, error) {
	switch size := model.CardSize(strings.ToLower(strings.TrimSpace(s))); size {
	case model.SizeSmall, model.SizeMedium, model.SizeLarge:
		return size, nil
	}
	return "", errors.NewUserErrorWithField("size", s, "Unknown card size", "Use one of: small, medium, large")
}

func runLayoutWidth(cmd *cobra.Command, args []string) error {
	width, err := parseFieldWidth(args[1])
	if err != nil {
		return err
	}
	if err := ctx.Settings.SetFieldWidth(args[0], width); err != nil {
		return err
	}
	return printLayoutChange(fmt.Sprintf("Field %s is now %s width", args[0], width))
}

func runLayoutCard(cmd *cobra.Command, args []string) error {
	id := args[0]
	var changes []string

	if layoutCardFlagShow || layoutCardFlagHide {
		if err := ctx.Settings.SetCardVisibility(id, layoutCardFlagShow); err != nil {
			return err
		}
		if layoutCardFlagShow {
			changes = append(changes, "shown")
		} else {
			changes = append(changes, "hidden")
		}
	}

	if cmd.Flags().Changed("size") {
		size, err := parseCardSize(layoutCardFlagSize)
		if err != nil {
			return err
		}
		if err := ctx.Settings.SetCardSize(id, size); err != nil {
			return err
		}
		changes = append(changes, string(size))
	}

	return printLayoutChange(fmt.Sprintf("Card %s: %s", id, strings.Join(changes, ", ")))
}
