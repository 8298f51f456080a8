package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/export"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/storage"
)

// Import command flags.
var (
	importFlagDryRun bool
	importFlagYes    bool
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore a backup",
	Long: `Restore a backup written by 'workreport export --backup'.

Every collection present in the backup replaces the stored one; collections
missing from the backup are left untouched.

Examples:
  workreport import backup.json --dry-run
  workreport import backup.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importFlagDryRun, "dry-run", "n", false, "Preview without writing anything")
	importCmd.Flags().BoolVarP(&importFlagYes, "yes", "y", false, "Skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.NewUserErrorWithField("file", args[0], "cannot open backup file", err.Error())
	}
	defer f.Close()

	backup, err := export.ReadBackup(f)
	if err != nil {
		return err
	}

	cli := ctx.CLIFormatter()
	if importFlagDryRun {
		preview := make([]export.KeyCount, 0, len(backup.Data))
		for _, key := range model.CollectionKeys {
			data, ok := backup.Data[key]
			if !ok {
				continue
			}
			n, _ := storage.CountRecords(key, data)
			preview = append(preview, export.KeyCount{Key: key, Records: n})
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(struct {
				Status string            `json:"status"`
				Keys   []export.KeyCount `json:"keys"`
			}{"dry-run", preview})
		}
		cli.Title("Dry Run - Import Preview")
		cli.Field("Exported", backup.ExportedAt)
		for _, c := range preview {
			cli.Field(c.Key, output.Plural(c.Records, "record"))
		}
		return nil
	}

	if !importFlagYes && !ctx.IsJSON() && isInteractive() {
		confirmed, err := promptConfirmation("Replace the stored data with this backup? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			cli.Muted("Cancelled")
			return nil
		}
	}

	counts, err := export.Restore(ctx.DB, backup, ctx.Stores()...)
	if err != nil {
		return err
	}
	ctx.RefreshTheme()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			Status string            `json:"status"`
			Keys   []export.KeyCount `json:"keys"`
		}{"ok", counts})
	}
	cli.Success("Backup restored")
	for _, c := range counts {
		cli.Field(c.Key, output.Plural(c.Records, "record"))
	}
	return nil
}
