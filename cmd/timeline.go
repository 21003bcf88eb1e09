package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/tui"
)

// timelineCmd shows an interactive working-day timeline of a project.
var timelineCmd = &cobra.Command{
	Use:     "timeline PROJECT",
	Aliases: []string{"tl"},
	Short:   "Show an interactive timeline of a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}

	return tui.Run(tui.TimelineConfig{
		ProjectRepo: ctx.ProjectRepo,
		TaskRepo:    ctx.TaskRepo,
		ProjectID:   project.ID,
	})
}
