// Package cmd provides the CLI commands for Workplan.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/logging"
	"github.com/manav03panchal/workplan/internal/output"
	"github.com/manav03panchal/workplan/internal/runtime"
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

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "workplan",
	Short: "A command-line project planner with working-day scheduling",
	Long: `Workplan is a command-line project planning tool. Projects contain
hierarchical tasks scheduled in working days (Monday through Saturday;
Sunday is the only non-working day), and moving a project's start date
reschedules every task while preserving its duration.

Examples:
  workplan project add website --start 2026-03-02
  workplan task add website "Design mockups" --duration 5
  workplan adjust website "next monday" --dry-run
  workplan timeline website`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: list projects
		return runProjectList(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
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
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("workplan %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// printError renders a top-level error in the active output format.
func printError(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.JSONFormatter().PrintError("error", err.Error(), runtime.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
}
