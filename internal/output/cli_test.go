package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workplan/internal/model"
)

func testCLI(buf *bytes.Buffer) *CLIFormatter {
	f := NewFormatter()
	f.Writer = buf
	f.ColorMode = ColorNever
	return NewCLIFormatter(f)
}

func TestPrintTaskTableAlignsWideTitles(t *testing.T) {
	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*model.Task{
		model.NewTask("p1", "日本語のタスク", monday, 2),
		model.NewTask("p1", "ascii", monday, 3),
	}

	var buf bytes.Buffer
	testCLI(&buf).PrintTaskTable(tasks)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	// The date column must start at the same display column regardless
	// of the title's byte length.
	widths := make([]int, len(lines))
	for i, line := range lines {
		idx := strings.Index(line, "Mon 2024-01-01")
		require.NotEqual(t, -1, idx, "line %q", line)
		widths[i] = lipgloss.Width(line[:idx])
	}
	assert.Equal(t, widths[0], widths[1])
}

func TestPrintTaskTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	testCLI(&buf).PrintTaskTable(nil)
	assert.Contains(t, buf.String(), "no tasks")
}
