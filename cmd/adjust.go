package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/parser"
)

// Adjust command flags.
var (
	adjustFlagDryRun bool
)

// adjustCmd moves a project's anchor start date, cascading the shift
// to every task.
var adjustCmd = &cobra.Command{
	Use:   "adjust PROJECT DATE",
	Short: "Move a project's start date, rescheduling every task",
	Long: `Move a project's anchor start date. Every task is shifted by the same
working-day displacement and keeps its duration. The adjustment is
all-or-nothing: if any task cannot be rescheduled, nothing changes.

Examples:
  workplan adjust website 2026-04-01
  workplan adjust website "next monday" --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().BoolVar(&adjustFlagDryRun, "dry-run", false,
		"Validate the adjustment without applying it")

	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	newStart, err := parser.ParseDate(args[1])
	if err != nil {
		return err
	}
	project.Tasks, err = ctx.TaskRepo.ListByProject(project.ID)
	if err != nil {
		return err
	}

	// Always dry-run first so warnings surface before anything moves.
	validation := project.ValidateDateAdjustment(newStart)

	if adjustFlagDryRun {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintValidationReport(validation)
		}
		ctx.CLIFormatter().PrintValidationReport(validation)
		return nil
	}

	if !ctx.IsJSON() {
		cli := ctx.CLIFormatter()
		for _, w := range validation.Warnings {
			cli.Warning(w)
		}
	}

	report, err := project.AdjustProjectDates(newStart)
	if err != nil {
		if report != nil {
			if ctx.IsJSON() {
				ctx.JSONFormatter().PrintAdjustmentReport(report)
			} else {
				ctx.CLIFormatter().PrintAdjustmentReport(report)
			}
		}
		return err
	}

	// Persist the shifted schedule.
	if err := ctx.TaskRepo.UpdateAll(project.Tasks); err != nil {
		return err
	}
	project.RecalculateEndDate()
	if err := ctx.ProjectRepo.Update(project); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAdjustmentReport(report)
	}
	ctx.CLIFormatter().PrintAdjustmentReport(report)
	return nil
}
