// Package cmd provides the CLI commands for workreport.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// runStart is when the current command began, for the debug log.
var runStart time.Time

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "workreport",
	Short: "Log daily work reports from the command line",
	Long: `workreport records your work sessions: when you worked, your break, the
project, the worksite, who you worked with and what you did.

Examples:
  workreport report add --start 8:00 --end 16:30 --break 30m --project Acme --description "Pump maintenance"
  workreport report list --range week
  workreport stats
  workreport dashboard`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()

		runCtx := logging.NewRunContext(cmd.Context())
		cmd.SetContext(runCtx)
		runStart = time.Now()
		logging.DebugContext(runCtx, "command started", logging.KeyOperation, cmd.CommandPath())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if !runStart.IsZero() {
			logging.DebugContext(cmd.Context(), "command finished",
				logging.KeyOperation, cmd.CommandPath(),
				logging.KeyDuration, time.Since(runStart).Milliseconds())
		}
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: runSummary,
}

// runSummary shows the statistics and the latest reports.
func runSummary(cmd *cobra.Command, args []string) error {
	summary := ctx.Summary()
	recent := ctx.Reports.Recent(ctx.Config.Dashboard.RecentCount)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			output.Summary
			Recent []*model.WorkReport `json:"recent"`
		}{summary, recent})
	}

	cli := ctx.CLIFormatter()
	cli.PrintSummary(summary)
	cli.Println()
	cli.Title("Recent reports")
	cli.PrintReports(recent)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Errors are printed by Die.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		Die(err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("workreport %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// Die prints an error and exits with 1 for user errors and 2 for system
// errors.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() || flagFormat == string(output.FormatJSON) {
		jf := output.NewJSONFormatter(&output.Formatter{Writer: os.Stdout, Format: output.FormatJSON})
		jf.PrintError(err.Error(), runtime.ErrorField(err), runtime.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
	if ctx != nil {
		ctx.Close()
	}
	os.Exit(errors.Classify(err).ExitCode())
}
