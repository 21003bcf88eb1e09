package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workplan/internal/hierarchy"
	"github.com/manav03panchal/workplan/internal/model"
)

// Export command flags.
var (
	exportFlagBackup bool
	exportFlagOutput string
)

// BackupVersion identifies the backup file format.
const BackupVersion = "1"

// Backup represents a full Workplan backup.
type Backup struct {
	Version    string           `json:"version"`
	ExportedAt string           `json:"exported_at"`
	Projects   []*model.Project `json:"projects"`
	Tasks      []*model.Task    `json:"tasks"`
}

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export [PROJECT]",
	Aliases: []string{"dump"},
	Short:   "Export projects as JSON",
	Long: `Export a single project (with its tasks nested) or, with --backup,
a full database backup.

Examples:
  workplan export website -o website.json
  workplan export --backup -o backup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVarP(&exportFlagBackup, "backup", "b", false,
		"Full database backup")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "",
		"Output file (stdout if omitted)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	var doc interface{}

	switch {
	case exportFlagBackup:
		backup, err := buildBackup()
		if err != nil {
			return err
		}
		doc = backup

	case len(args) == 1:
		project, err := findProject(args[0])
		if err != nil {
			return err
		}
		taskList, err := ctx.TaskRepo.ListByProject(project.ID)
		if err != nil {
			return err
		}
		project.Tasks, err = hierarchy.Normalize(taskList)
		if err != nil {
			return err
		}
		doc = project

	default:
		return cmd.Help()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if exportFlagOutput == "" {
		ctx.Formatter.Print(string(data))
		return nil
	}
	if err := os.WriteFile(exportFlagOutput, data, 0644); err != nil {
		return err
	}
	ctx.CLIFormatter().Success("exported to " + exportFlagOutput)
	return nil
}

func buildBackup() (*Backup, error) {
	projects, err := ctx.ProjectRepo.List()
	if err != nil {
		return nil, err
	}
	tasks, err := ctx.TaskRepo.List()
	if err != nil {
		return nil, err
	}
	return &Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Projects:   projects,
		Tasks:      tasks,
	}, nil
}
