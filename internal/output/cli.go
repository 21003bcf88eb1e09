package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workplan/internal/model"
	"github.com/manav03panchal/workplan/internal/parser"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleProject = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleTask = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleDuration = lipgloss.NewStyle().
			Bold(true)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "! "+text))
}

// ErrorMsg prints an error message.
func (c *CLIFormatter) ErrorMsg(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints secondary information.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// PrintProject prints a project header with its schedule summary.
func (c *CLIFormatter) PrintProject(p *model.Project) {
	c.Println(c.render(styleProject, p.Name))
	if p.Description != "" {
		c.Muted(p.Description)
	}
	c.Printf("  start: %s", parser.FormatDate(p.StartDate))
	if !p.EndDate.IsZero() {
		c.Printf("  end: %s", parser.FormatDate(p.EndDate))
	}
	c.Printf("  tasks: %d\n", len(p.Tasks))
}

// PrintTaskTable prints tasks as an aligned table, indenting titles by
// hierarchy level. Tasks are printed in the order given; callers pass
// the pre-order flattening for tree display.
func (c *CLIFormatter) PrintTaskTable(tasks []*model.Task) {
	if len(tasks) == 0 {
		c.Muted("no tasks")
		return
	}

	titleWidth := 0
	for _, t := range tasks {
		w := lipgloss.Width(t.Title) + 2*t.Level
		if w > titleWidth {
			titleWidth = w
		}
	}

	for _, t := range tasks {
		title := strings.Repeat("  ", t.Level) + t.Title
		pad := strings.Repeat(" ", titleWidth-lipgloss.Width(title)+2)
		days := fmt.Sprintf("%dd", t.Duration)
		c.Printf("%s%s%s → %s  %s  %s\n",
			c.render(styleTask, title), pad,
			parser.FormatDate(t.StartDate),
			parser.FormatDate(t.EndDate),
			c.render(styleDuration, days),
			c.render(styleMuted, shortID(t.ID)))
	}
}

// shortID abbreviates a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PrintValidationReport prints a dry-run adjustment report.
func (c *CLIFormatter) PrintValidationReport(r *model.ValidationReport) {
	if r.IsValid {
		c.Success(fmt.Sprintf("adjustment valid: %d working day(s), %d task(s) affected",
			r.DaysDifference, r.AffectedTasks))
	} else {
		c.ErrorMsg("adjustment is not valid")
	}
	for _, e := range r.Errors {
		c.ErrorMsg(e)
	}
	for _, w := range r.Warnings {
		c.Warning(w)
	}
}

// PrintAdjustmentReport prints the result of a project date adjustment.
func (c *CLIFormatter) PrintAdjustmentReport(r *model.AdjustmentReport) {
	direction := "backward"
	if r.IsMovingForward {
		direction = "forward"
	}
	if r.Success {
		c.Success(fmt.Sprintf("moved %s by %d working day(s): %d task(s) rescheduled",
			direction, r.DaysDifference, r.AdjustedTasks))
		return
	}
	c.ErrorMsg(fmt.Sprintf("adjustment blocked: %d task(s) failed", len(r.FailedTasks)))
	for _, f := range r.FailedTasks {
		c.ErrorMsg(fmt.Sprintf("  %s (%s): %s", f.Title, f.TaskID, f.Reason))
	}
}
