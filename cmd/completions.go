package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/storage"
)

// The root PersistentPreRunE also runs for __complete, so ctx is available
// here. It stays nil when the database could not be opened.

// completeReportIDs returns the ids of recent reports matching the prefix.
func completeReportIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return recordCompletions(ctx.Reports.List(storage.ListOptions{}), toComplete,
		func(r *model.WorkReport) string { return r.Date.String() + " " + r.Project }), cobra.ShellCompDirectiveNoFileComp
}

// recordCompletions returns the ids of records starting with prefix, each
// described by desc.
func recordCompletions[T any, PT interface {
	*T
	model.Record
}](records []*T, prefix string, desc func(*T) string) []string {
	var completions []string
	for _, rec := range records {
		completions = appendPrefixed(completions, prefix, PT(rec).GetID(), desc(rec))
	}
	return completions
}

func completeColleagueIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return recordCompletions(ctx.Colleagues.List(""), toComplete,
		func(c *model.Colleague) string { return c.Name }), cobra.ShellCompDirectiveNoFileComp
}

func completeWorksiteIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return recordCompletions(ctx.Worksites.List(""), toComplete,
		func(w *model.Worksite) string { return w.Name }), cobra.ShellCompDirectiveNoFileComp
}

func completeProjectIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return recordCompletions(ctx.Projects.List(""), toComplete,
		func(p *model.Project) string { return p.Name }), cobra.ShellCompDirectiveNoFileComp
}

// completeFirstArg wraps fn so only the first positional argument completes.
func completeFirstArg(fn cobra.CompletionFunc) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return fn(cmd, args, toComplete)
	}
}

func completeThemeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, t := range ctx.Settings.Themes() {
		completions = appendPrefixed(completions, toComplete, t.ID, t.Name)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func completeFieldIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, f := range model.DefaultLayout().FormFields {
		completions = appendPrefixed(completions, toComplete, f.ID, f.Label)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func completeCardIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, c := range model.DefaultLayout().DashboardCards {
		completions = appendPrefixed(completions, toComplete, c.ID, c.Name)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeRanges suggests the named date ranges of --range.
func completeRanges(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ranges := []string{
		"all\tevery report",
		"today\ttoday's reports",
		"yesterday\tyesterday's reports",
		"week\tthis week",
		"month\tthis month",
		"last week\tprevious week",
		"last month\tprevious month",
	}

	var filtered []string
	for _, r := range ranges {
		if strings.HasPrefix(strings.Split(r, "\t")[0], toComplete) {
			filtered = append(filtered, r)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}

func appendPrefixed(completions []string, prefix, id, desc string) []string {
	if strings.HasPrefix(id, prefix) {
		return append(completions, id+"\t"+desc)
	}
	return completions
}
