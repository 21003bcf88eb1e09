package output

import (
	"time"

	"github.com/manav03panchal/workplan/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// TaskOutput represents a task in JSON output.
type TaskOutput struct {
	ID              string `json:"id"`
	ProjectID       string `json:"project_id"`
	ParentTaskID    string `json:"parent_task_id,omitempty"`
	Level           int    `json:"level"`
	Title           string `json:"title"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Duration        int    `json:"duration"`
	AdjustStartDate bool   `json:"adjust_start_date"`
}

// NewTaskOutput creates a TaskOutput from a Task.
func NewTaskOutput(t *model.Task) *TaskOutput {
	return &TaskOutput{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		ParentTaskID:    t.ParentTaskID,
		Level:           t.Level,
		Title:           t.Title,
		StartDate:       formatDate(t.StartDate),
		EndDate:         formatDate(t.EndDate),
		Duration:        t.Duration,
		AdjustStartDate: t.AdjustStartDate,
	}
}

// ProjectOutput represents a project in JSON output.
type ProjectOutput struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date,omitempty"`
	Tasks     []*TaskOutput `json:"tasks,omitempty"`
}

// NewProjectOutput creates a ProjectOutput from a Project.
func NewProjectOutput(p *model.Project) *ProjectOutput {
	out := &ProjectOutput{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: formatDate(p.StartDate),
		EndDate:   formatDate(p.EndDate),
	}
	for _, t := range p.Tasks {
		out.Tasks = append(out.Tasks, NewTaskOutput(t))
	}
	return out
}

// ProjectsResponse represents the project list output in JSON.
type ProjectsResponse struct {
	Projects   []*ProjectOutput `json:"projects"`
	TotalCount int              `json:"total_count"`
}

// ValidationResponse wraps a dry-run adjustment report in JSON.
type ValidationResponse struct {
	Status string                  `json:"status"`
	Report *model.ValidationReport `json:"report"`
}

// AdjustmentResponse wraps an adjustment report in JSON.
type AdjustmentResponse struct {
	Status string                  `json:"status"`
	Report *model.AdjustmentReport `json:"report"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintProject outputs a single project.
func (j *JSONFormatter) PrintProject(p *model.Project) error {
	return j.JSON(NewProjectOutput(p))
}

// PrintProjects outputs a project list.
func (j *JSONFormatter) PrintProjects(projects []*model.Project) error {
	resp := &ProjectsResponse{Projects: []*ProjectOutput{}, TotalCount: len(projects)}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, NewProjectOutput(p))
	}
	return j.JSON(resp)
}

// PrintValidationReport outputs a dry-run adjustment report.
func (j *JSONFormatter) PrintValidationReport(r *model.ValidationReport) error {
	status := "invalid"
	if r.IsValid {
		status = "valid"
	}
	return j.JSON(&ValidationResponse{Status: status, Report: r})
}

// PrintAdjustmentReport outputs an adjustment report.
func (j *JSONFormatter) PrintAdjustmentReport(r *model.AdjustmentReport) error {
	status := "failed"
	if r.Success {
		status = "adjusted"
	}
	return j.JSON(&AdjustmentResponse{Status: status, Report: r})
}

// PrintError outputs an error response.
func (j *JSONFormatter) PrintError(kind, message, suggestion string) error {
	return j.JSON(&ErrorResponse{Status: "error", Error: kind, Message: message + suggestionSuffix(suggestion)})
}

func suggestionSuffix(s string) string {
	if s == "" {
		return ""
	}
	return " (" + s + ")"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
