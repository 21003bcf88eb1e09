package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/hierarchy"
	"github.com/manav03panchal/workplan/internal/model"
)

// Import command flags.
var (
	importFlagDryRun bool
	importFlagForce  bool
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"restore"},
	Short:   "Import projects from a JSON file",
	Long: `Import projects from JSON files. Supports Workplan backup files and
single-project exports. Imported tasks are normalized: hierarchy levels
are reassigned and missing durations recomputed.

Examples:
  workplan import backup.json
  workplan import website.json --dry-run
  workplan import backup.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false,
		"Preview import without making changes")
	importCmd.Flags().BoolVar(&importFlagForce, "force", false,
		"Overwrite existing projects on conflicts")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	backup, err := decodeImport(data)
	if err != nil {
		return err
	}

	// Group tasks by project and normalize each tree before writing.
	tasksByProject := make(map[string][]*model.Task)
	for _, t := range backup.Tasks {
		tasksByProject[t.ProjectID] = append(tasksByProject[t.ProjectID], t)
	}

	cli := ctx.CLIFormatter()
	imported, skipped := 0, 0

	for _, project := range backup.Projects {
		tasks, err := hierarchy.Normalize(tasksByProject[project.ID])
		if err != nil {
			return fmt.Errorf("project %q: %w", project.Name, err)
		}

		exists, err := ctx.ProjectRepo.Exists(project.ID)
		if err != nil {
			return err
		}
		if exists && !importFlagForce {
			skipped++
			cli.Warning(fmt.Sprintf("skipping existing project %q (use --force to overwrite)",
				project.Name))
			continue
		}

		if importFlagDryRun {
			imported++
			cli.Muted(fmt.Sprintf("would import %q with %d task(s)", project.Name, len(tasks)))
			continue
		}

		project.Tasks = nil
		if err := ctx.ProjectRepo.Create(project); err != nil {
			return err
		}
		for _, t := range tasks {
			if err := ctx.TaskRepo.Create(t); err != nil {
				return err
			}
		}
		imported++
	}

	if importFlagDryRun {
		cli.Success(fmt.Sprintf("dry run: %d project(s) would be imported, %d skipped",
			imported, skipped))
		return nil
	}
	cli.Success(fmt.Sprintf("imported %d project(s), skipped %d", imported, skipped))
	return nil
}

// decodeImport accepts either a full backup or a single exported
// project with nested tasks.
func decodeImport(data []byte) (*Backup, error) {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err == nil &&
		backup.Version != "" && len(backup.Projects) > 0 {
		return &backup, nil
	}

	var project model.Project
	if err := json.Unmarshal(data, &project); err == nil &&
		project.ID != "" && project.Name != "" {
		tasks := project.Tasks
		project.Tasks = nil
		return &Backup{
			Version:  BackupVersion,
			Projects: []*model.Project{&project},
			Tasks:    tasks,
		}, nil
	}

	return nil, fmt.Errorf("unrecognized file format")
}
