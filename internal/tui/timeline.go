package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/manav03panchal/workplan/internal/hierarchy"
	"github.com/manav03panchal/workplan/internal/model"
	"github.com/manav03panchal/workplan/internal/parser"
	"github.com/manav03panchal/workplan/internal/schedule"
	"github.com/manav03panchal/workplan/internal/storage"
)

// refreshMsg is sent when data needs to be reloaded.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// TimelineConfig holds configuration for the timeline view.
type TimelineConfig struct {
	ProjectRepo *storage.ProjectRepo
	TaskRepo    *storage.TaskRepo
	ProjectID   string
}

// TimelineModel is the bubbletea model rendering a project's tasks as
// working-day bars.
type TimelineModel struct {
	config  TimelineConfig
	project *model.Project
	tasks   []*model.Task

	width  int
	height int
	err    error
}

// NewTimelineModel creates a new timeline model.
func NewTimelineModel(config TimelineConfig) *TimelineModel {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return &TimelineModel{
		config: config,
		width:  width,
		height: height,
	}
}

// Init initializes the model.
func (m *TimelineModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m *TimelineModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Update handles messages and updates the model.
func (m *TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refreshCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// loadData reloads the project and its tasks in display order.
func (m *TimelineModel) loadData() {
	project, err := m.config.ProjectRepo.Load(m.config.ProjectID, m.config.TaskRepo)
	if err != nil {
		m.err = err
		return
	}
	tasks, err := hierarchy.Normalize(project.Tasks)
	if err != nil {
		m.err = err
		return
	}
	m.project = project
	m.tasks = tasks
	m.err = nil
}

// View renders the timeline.
func (m *TimelineModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(StyleError.Render("error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render("r refresh · q quit"))
		return b.String()
	}
	if m.project == nil {
		return StyleSubtitle.Render("loading...")
	}

	b.WriteString(StyleTitle.Render(m.project.Name))
	b.WriteString("\n")
	b.WriteString(StyleSubtitle.Render(fmt.Sprintf("anchored %s · %d tasks",
		parser.FormatDate(m.project.StartDate), len(m.tasks))))
	b.WriteString("\n\n")

	b.WriteString(StyleFrame.Render(m.renderRows()))
	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("r refresh · q quit"))
	return b.String()
}

// renderRows draws one row per task: indented title, then a bar whose
// offset and length are working-day counts relative to the project
// anchor.
func (m *TimelineModel) renderRows() string {
	if len(m.tasks) == 0 {
		return StyleSubtitle.Render("no tasks")
	}

	titleWidth := 0
	for _, t := range m.tasks {
		if w := lipgloss.Width(t.Title) + 2*t.Level; w > titleWidth {
			titleWidth = w
		}
	}
	barArea := m.width - titleWidth - 10
	if barArea < 10 {
		barArea = 10
	}

	hasChildren := make(map[string]bool)
	for _, t := range m.tasks {
		if t.ParentTaskID != "" {
			hasChildren[t.ParentTaskID] = true
		}
	}

	var rows []string
	for _, t := range m.tasks {
		title := strings.Repeat("  ", t.Level) + t.Title
		pad := strings.Repeat(" ", titleWidth-lipgloss.Width(title)+1)

		offset, err := schedule.Displacement(m.project.StartDate, t.StartDate)
		if err != nil || offset < 0 {
			offset = 0
		}
		length := t.Duration
		if length < 1 {
			length = 1
		}
		if offset > barArea {
			offset = barArea
		}
		if offset+length > barArea {
			length = barArea - offset
		}

		bar := strings.Repeat(" ", offset) + strings.Repeat("█", length)
		style := StyleBar
		if hasChildren[t.ID] {
			style = StyleBarParent
		}
		rows = append(rows, StyleTask.Render(title)+pad+style.Render(bar)+
			" "+StyleSubtitle.Render(fmt.Sprintf("%dd", t.Duration)))
	}
	return strings.Join(rows, "\n")
}

// Run starts the timeline program and blocks until it exits.
func Run(config TimelineConfig) error {
	p := tea.NewProgram(NewTimelineModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
