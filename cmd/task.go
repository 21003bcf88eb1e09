package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/hierarchy"
	"github.com/manav03panchal/workplan/internal/model"
	"github.com/manav03panchal/workplan/internal/parser"
	"github.com/manav03panchal/workplan/internal/validate"
)

// Task command flags.
var (
	taskFlagStart       string
	taskFlagEnd         string
	taskFlagDuration    int
	taskFlagParent      string
	taskFlagDescription string
	taskFlagAdjustStart bool
)

// taskCmd groups task management subcommands.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks within a project",
}

var taskAddCmd = &cobra.Command{
	Use:   "add PROJECT TITLE",
	Short: "Add a task to a project",
	Long: `Add a task to a project. A task is scheduled either by duration
(working days from its start date) or by an explicit end date.

Examples:
  workplan task add website "Design mockups" --duration 5
  workplan task add website "Review" --start 2026-03-09 --end 2026-03-11
  workplan task add website "Icons" --parent TASKID --duration 2`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list PROJECT",
	Aliases: []string{"ls"},
	Short:   "List the tasks of a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskList,
}

var taskSetStartCmd = &cobra.Command{
	Use:   "set-start PROJECT TASK DATE",
	Short: "Set a task's start date (duration is re-derived)",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskSetStart,
}

var taskSetEndCmd = &cobra.Command{
	Use:   "set-end PROJECT TASK DATE",
	Short: "Set a task's end date (duration is re-derived)",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskSetEnd,
}

var taskSetDurationCmd = &cobra.Command{
	Use:   "set-duration PROJECT TASK DAYS",
	Short: "Set a task's duration in working days",
	Long: `Set a task's duration. By default the start date stays fixed and the
end date is recomputed; with --adjust-start the end date stays fixed
and the start date moves instead.`,
	Args: cobra.ExactArgs(3),
	RunE: runTaskSetDuration,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete PROJECT TASK",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(2),
	RunE:    runTaskDelete,
}

func init() {
	taskAddCmd.Flags().StringVar(&taskFlagStart, "start", "",
		"Task start date (defaults to the project start date)")
	taskAddCmd.Flags().StringVar(&taskFlagEnd, "end", "",
		"Task end date (derives the duration)")
	taskAddCmd.Flags().IntVar(&taskFlagDuration, "duration", 1,
		"Duration in working days, inclusive of both endpoints")
	taskAddCmd.Flags().StringVar(&taskFlagParent, "parent", "",
		"Parent task id")
	taskAddCmd.Flags().StringVarP(&taskFlagDescription, "description", "d", "",
		"Task description")
	taskAddCmd.Flags().BoolVar(&taskFlagAdjustStart, "adjust-start", false,
		"Duration changes move the start date instead of the end date")

	taskSetDurationCmd.Flags().BoolVar(&taskFlagAdjustStart, "adjust-start", false,
		"Keep the end date fixed and move the start date")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskSetStartCmd)
	taskCmd.AddCommand(taskSetEndCmd)
	taskCmd.AddCommand(taskSetDurationCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	title := args[1]
	if err := validate.TaskTitle(title); err != nil {
		return err
	}
	if err := validate.Description(taskFlagDescription); err != nil {
		return err
	}

	start := project.StartDate
	if taskFlagStart != "" {
		start, err = parser.ParseDate(taskFlagStart)
		if err != nil {
			return err
		}
	}

	var task *model.Task
	if taskFlagEnd != "" {
		end, err := parser.ParseDate(taskFlagEnd)
		if err != nil {
			return err
		}
		task = model.NewTaskWithDates(project.ID, title, start, end)
	} else {
		if err := validate.Duration(taskFlagDuration); err != nil {
			return err
		}
		task = model.NewTask(project.ID, title, start, taskFlagDuration)
	}
	task.Description = taskFlagDescription
	task.AdjustStartDate = taskFlagAdjustStart

	if taskFlagParent != "" {
		parent, err := ctx.TaskRepo.Get(project.ID, taskFlagParent)
		if err != nil {
			return errors.Wrap(err, "parent task")
		}
		task.ParentTaskID = parent.ID
		task.Level = parent.Level + 1
	}

	if err := ctx.TaskRepo.Create(task); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(task)
	}
	cli := ctx.CLIFormatter()
	cli.Success("added task " + task.Title)
	cli.Muted("id: " + task.ID)
	cli.PrintTaskTable([]*model.Task{task})
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	taskList, err := ctx.TaskRepo.ListByProject(project.ID)
	if err != nil {
		return err
	}
	tasks, err := hierarchy.Normalize(taskList)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		project.Tasks = tasks
		return ctx.JSONFormatter().PrintProject(project)
	}
	ctx.CLIFormatter().PrintTaskTable(tasks)
	return nil
}

func runTaskSetStart(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0], args[1])
	if err != nil {
		return err
	}
	date, err := parser.ParseDate(args[2])
	if err != nil {
		return err
	}

	task.SetStartDate(date)
	if err := ctx.TaskRepo.Update(task); err != nil {
		return err
	}
	return printTaskResult(task)
}

func runTaskSetEnd(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0], args[1])
	if err != nil {
		return err
	}
	date, err := parser.ParseDate(args[2])
	if err != nil {
		return err
	}

	task.SetEndDate(date)
	if err := ctx.TaskRepo.Update(task); err != nil {
		return err
	}
	return printTaskResult(task)
}

func runTaskSetDuration(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0], args[1])
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.NewUserErrorWithField("duration", args[2],
			"Duration must be a number of working days", "Example: 5")
	}
	if err := validate.Duration(days); err != nil {
		return err
	}

	if cmd.Flags().Changed("adjust-start") {
		task.AdjustStartDate = taskFlagAdjustStart
	}
	task.SetDuration(days)
	if err := ctx.TaskRepo.Update(task); err != nil {
		return err
	}
	return printTaskResult(task)
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0], args[1])
	if err != nil {
		return err
	}
	if err := ctx.TaskRepo.Delete(task.ProjectID, task.ID); err != nil {
		return err
	}
	ctx.CLIFormatter().Success("deleted task " + task.Title)
	return nil
}

// findTask resolves a task by project reference and task id.
func findTask(projectRef, taskID string) (*model.Task, error) {
	project, err := findProject(projectRef)
	if err != nil {
		return nil, err
	}
	return ctx.TaskRepo.Get(project.ID, taskID)
}

// printTaskResult prints an updated task in the active format.
func printTaskResult(task *model.Task) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().JSON(task)
	}
	ctx.CLIFormatter().PrintTaskTable([]*model.Task{task})
	return nil
}
