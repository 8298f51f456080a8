package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/storage"
)

// Doctor command flags.
var (
	doctorFlagBackup  bool
	doctorFlagRestore string
	doctorFlagYes     bool
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"check", "fsck"},
	Short:   "Check the database for unreadable data",
	Long: `Check that every stored collection and the design settings decode.
A collection that does not decode loads empty; restore it from a backup with
'workreport import'.

With --backup a snapshot of the whole database is written to the backups
directory next to it first. --restore loads such a snapshot back; keys the
snapshot does not hold are kept.

Examples:
  workreport doctor
  workreport doctor --backup
  workreport doctor --restore ~/.local/share/workreport/backups/db-20240316-183000.bak`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVarP(&doctorFlagBackup, "backup", "b", false, "Snapshot the database before checking")
	doctorCmd.Flags().StringVar(&doctorFlagRestore, "restore", "", "Load a database snapshot before checking")
	doctorCmd.Flags().BoolVarP(&doctorFlagYes, "yes", "y", false, "Skip confirmation prompt")
	doctorCmd.MarkFlagsMutuallyExclusive("backup", "restore")

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var (
		backupPath string
		restored   []string
	)
	if doctorFlagBackup {
		path, err := ctx.DB.Snapshot(ctx.Now())
		if err != nil {
			return err
		}
		backupPath = path
	}
	if doctorFlagRestore != "" {
		if !doctorFlagYes && !ctx.IsJSON() && isInteractive() {
			confirmed, err := promptConfirmation("Overwrite stored data with this snapshot? (y/N): ")
			if err != nil {
				return err
			}
			if !confirmed {
				ctx.CLIFormatter().Muted("Cancelled")
				return nil
			}
		}
		keys, err := ctx.DB.LoadSnapshot(doctorFlagRestore)
		if err != nil {
			return err
		}
		restored = keys
		for _, s := range ctx.Stores() {
			s.Reload()
		}
		ctx.RefreshTheme()
	}

	status := storage.CheckIntegrity(ctx.DB)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			*storage.RecoveryStatus
			Backup   string   `json:"backup,omitempty"`
			Restored []string `json:"restored,omitempty"`
		}{status, backupPath, restored})
	}

	cli := ctx.CLIFormatter()
	if backupPath != "" {
		cli.Success("Snapshot written to " + backupPath)
		cli.Println()
	}
	if doctorFlagRestore != "" {
		cli.Success(fmt.Sprintf("Restored %s from %s", output.Plural(len(restored), "key"), doctorFlagRestore))
		cli.Println()
	}
	if !ctx.DB.InMemory() {
		cli.Field("Database", ctx.DB.Path())
		if info, err := storage.GetDiskSpace(ctx.DB.Path()); err == nil {
			cli.Field("Free space", fmt.Sprintf("%s of %s (%.1f%%)",
				humanize.IBytes(info.FreeBytes), humanize.IBytes(info.TotalBytes), info.FreePercent()))
		}
		cli.Println()
	}
	cli.PrintIntegrity(status)
	if !status.Healthy {
		cli.Muted("Restore a backup with 'workreport import FILE'")
	}
	return nil
}
