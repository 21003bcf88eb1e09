package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/hierarchy"
	"github.com/manav03panchal/workplan/internal/model"
	"github.com/manav03panchal/workplan/internal/parser"
	"github.com/manav03panchal/workplan/internal/schedule"
	"github.com/manav03panchal/workplan/internal/validate"
)

// Project command flags.
var (
	projectFlagStart       string
	projectFlagDescription string
)

// projectCmd groups project management subcommands.
var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"proj", "p"},
	Short:   "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a new project",
	Long: `Create a new project anchored at a start date.

Examples:
  workplan project add website
  workplan project add website --start 2026-03-02 --description 'Company site relaunch'`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show PROJECT",
	Short: "Show a project and its task schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete PROJECT",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectRecalcCmd = &cobra.Command{
	Use:   "recalc PROJECT",
	Short: "Recalculate the project end date from its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRecalc,
}

func init() {
	projectAddCmd.Flags().StringVar(&projectFlagStart, "start", "today",
		"Project start date")
	projectAddCmd.Flags().StringVarP(&projectFlagDescription, "description", "d", "",
		"Project description")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectRecalcCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validate.ProjectName(name); err != nil {
		return err
	}
	if err := validate.Description(projectFlagDescription); err != nil {
		return err
	}

	start, err := parser.ParseDate(projectFlagStart)
	if err != nil {
		return err
	}

	project := model.NewProject(name, projectFlagDescription, start)
	if err := ctx.ProjectRepo.Create(project); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProject(project)
	}
	cli := ctx.CLIFormatter()
	cli.Success("created project " + project.Name)
	if working, werr := schedule.IsWorkingDay(start); werr == nil && !working {
		cli.Warning("start date falls on a non-working day")
	}
	cli.Muted("id: " + project.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	projects, err := ctx.ProjectRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProjects(projects)
	}

	cli := ctx.CLIFormatter()
	if len(projects) == 0 {
		cli.Muted("no projects - use 'workplan project add NAME' to create one")
		return nil
	}
	for _, p := range projects {
		cli.PrintProject(p)
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	project.Tasks, err = ctx.TaskRepo.ListByProject(project.ID)
	if err != nil {
		return err
	}
	tasks, err := hierarchy.Normalize(project.Tasks)
	if err != nil {
		return err
	}
	project.Tasks = tasks
	project.RecalculateEndDate()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProject(project)
	}
	cli := ctx.CLIFormatter()
	cli.PrintProject(project)
	cli.PrintTaskTable(tasks)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	if err := ctx.ProjectRepo.Delete(project.ID, ctx.TaskRepo); err != nil {
		return err
	}
	ctx.CLIFormatter().Success("deleted project " + project.Name)
	return nil
}

func runProjectRecalc(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	project.Tasks, err = ctx.TaskRepo.ListByProject(project.ID)
	if err != nil {
		return err
	}

	before := project.EndDate
	project.RecalculateEndDate()
	if err := ctx.ProjectRepo.Update(project); err != nil {
		return err
	}

	cli := ctx.CLIFormatter()
	if project.EndDate.Equal(before) || len(project.Tasks) == 0 {
		cli.Muted("project end date unchanged: " + parser.FormatDate(project.EndDate))
		return nil
	}
	cli.Success("project end date: " + parser.FormatDate(project.EndDate))
	return nil
}

// findProject resolves a project by id or name.
func findProject(ref string) (*model.Project, error) {
	return ctx.ProjectRepo.FindByName(ref)
}
