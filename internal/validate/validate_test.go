package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/workplan/internal/errors"
)

func TestProjectName(t *testing.T) {
	assert.NoError(t, ProjectName("website"))
	assert.Error(t, ProjectName(""))
	assert.Error(t, ProjectName(strings.Repeat("x", MaxNameLength+1)))
	assert.True(t, errors.IsUserError(ProjectName("")))
}

func TestTaskTitle(t *testing.T) {
	assert.NoError(t, TaskTitle("design mockups"))
	assert.Error(t, TaskTitle(""))
	assert.Error(t, TaskTitle(strings.Repeat("x", MaxTitleLength+1)))
}

func TestDescription(t *testing.T) {
	assert.NoError(t, Description(""))
	assert.NoError(t, Description("short"))
	assert.Error(t, Description(strings.Repeat("x", MaxDescriptionLength+1)))
}

func TestDuration(t *testing.T) {
	assert.NoError(t, Duration(1))
	assert.NoError(t, Duration(MaxDuration))
	assert.Error(t, Duration(0))
	assert.Error(t, Duration(-3))
	assert.Error(t, Duration(MaxDuration+1))
}
