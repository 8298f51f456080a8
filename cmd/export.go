package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/export"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/parser"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Export command flags.
var (
	exportFlagFormat string
	exportFlagOutput string
	exportFlagBackup bool
	exportFlagRange  string
	exportFlagSearch string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export reports or back up all data",
	Long: `Export work reports as JSON, CSV or XLSX, or write a full backup of every
collection and the design settings.

Without --output the export goes to stdout; XLSX needs --output unless stdout
is redirected. With --output and no --format, the format follows the file
extension; a directory gets a dated file name.

Examples:
  workreport export
  workreport export -F csv --range "last month" -o march.csv
  workreport export -o reports.xlsx
  workreport export --backup -o backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagFormat, "format", "F", "", "Export format: json, csv, xlsx (default json)")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.Flags().BoolVarP(&exportFlagBackup, "backup", "b", false, "Full database backup")
	exportCmd.Flags().StringVarP(&exportFlagRange, "range", "r", "all", "Only reports in this range")
	exportCmd.Flags().StringVarP(&exportFlagSearch, "search", "q", "", "Only reports matching this text")
	exportCmd.MarkFlagsMutuallyExclusive("backup", "format")
	exportCmd.RegisterFlagCompletionFunc("range", completeRanges)
	exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "csv", "xlsx"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFlagBackup {
		return runBackup(cmd)
	}

	formatFlag := exportFlagFormat
	if formatFlag == "" && exportFlagOutput != "" && !isDir(exportFlagOutput) {
		formatFlag = filepath.Ext(exportFlagOutput)
	}
	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if exportFlagOutput != "" && isDir(exportFlagOutput) {
		exportFlagOutput = filepath.Join(exportFlagOutput, export.DefaultFilename(format, ctx.Now(), exportFlagRange))
	}
	if format.Binary() && exportFlagOutput == "" && ctx.Formatter.IsTerminal() {
		return errors.NewUserErrorWithField("output", "", "XLSX cannot be written to a terminal",
			"Pass --output FILE or redirect stdout")
	}

	period, err := parser.ParsePeriod(exportFlagRange, ctx.Today())
	if err != nil {
		return inputError(err)
	}
	reports := ctx.Reports.List(storage.ListOptions{Query: exportFlagSearch, From: period.From, To: period.To})

	opts := export.Options{Now: ctx.Now(), Theme: ctx.Settings.CurrentTheme()}
	if exportFlagOutput == "" {
		return export.Write(cmd.OutOrStdout(), format, reports, opts)
	}
	if err := export.ToFile(exportFlagOutput, format, reports, opts); err != nil {
		return err
	}

	ctx.Debugf("export written", "path", exportFlagOutput, "format", string(format))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus("ok", exportFlagOutput)
	}
	var total float64
	for _, r := range reports {
		total += r.Hours
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Exported %s (%s) to %s",
		output.Plural(len(reports), "report"), worktime.FormatHours(total), exportFlagOutput))
	return nil
}

// isDir reports whether path names an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func runBackup(cmd *cobra.Command) error {
	backup, counts, err := export.CreateBackup(ctx.DB, ctx.Now())
	if err != nil {
		return err
	}

	if exportFlagOutput == "" {
		return export.WriteBackup(cmd.OutOrStdout(), backup)
	}

	if err := export.BackupToFile(exportFlagOutput, backup); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			Status string            `json:"status"`
			Path   string            `json:"path"`
			Keys   []export.KeyCount `json:"keys"`
		}{"ok", exportFlagOutput, counts})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Backup written to " + exportFlagOutput)
	for _, c := range counts {
		cli.Field(c.Key, output.Plural(c.Records, "record"))
	}
	return nil
}
