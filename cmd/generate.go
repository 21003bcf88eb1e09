package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/genai"
	"github.com/manav03panchal/workplan/internal/parser"
)

// Generate command flags.
var (
	generateFlagStart  string
	generateFlagDryRun bool
)

// generateCmd drafts a project plan with an AI model.
var generateCmd = &cobra.Command{
	Use:     "generate PROMPT",
	Aliases: []string{"gen"},
	Short:   "Generate a project plan from a prompt",
	Long: `Generate a draft project plan using an OpenAI-compatible endpoint.
The endpoint is configured via WORKPLAN_AI_URL, WORKPLAN_AI_KEY and
WORKPLAN_AI_MODEL. Generated tasks are scheduled sequentially in
working days from the start date.

Examples:
  workplan generate "relaunch the company website" --start 2026-03-02
  workplan generate "migrate billing to the new provider" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFlagStart, "start", "today",
		"Plan start date")
	generateCmd.Flags().BoolVar(&generateFlagDryRun, "dry-run", false,
		"Print the generated plan without saving it")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start, err := parser.ParseDate(generateFlagStart)
	if err != nil {
		return err
	}

	planner := genai.NewPlanner(genai.ConfigFromEnv())
	project, err := planner.GeneratePlan(cmd.Context(), args[0], start)
	if err != nil {
		return err
	}

	if !generateFlagDryRun {
		if err := ctx.ProjectRepo.Create(project); err != nil {
			return err
		}
		if err := ctx.TaskRepo.UpdateAll(project.Tasks); err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProject(project)
	}
	cli := ctx.CLIFormatter()
	if generateFlagDryRun {
		cli.Warning("dry run: plan not saved")
	} else {
		cli.Success("generated project " + project.Name)
	}
	cli.PrintProject(project)
	cli.PrintTaskTable(project.Tasks)
	return nil
}
