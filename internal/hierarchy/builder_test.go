package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/model"
)

func task(id, parent string) *model.Task {
	return &model.Task{ID: id, ProjectID: "p1", Title: id, ParentTaskID: parent}
}

func ids(tasks []*model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestBuildAndFlatten(t *testing.T) {
	tasks := []*model.Task{
		task("b", ""),
		task("a", ""),
		task("a2", "a"),
		task("a1", "a"),
		task("a1x", "a1"),
	}

	tree, err := Build(tasks)
	require.NoError(t, err)

	// Pre-order with sorted siblings: parents directly before their
	// subtree.
	assert.Equal(t, []string{"a", "a1", "a1x", "a2", "b"}, ids(tree.Flatten()))
}

func TestAssignLevels(t *testing.T) {
	tasks := []*model.Task{
		task("root", ""),
		task("child", "root"),
		task("grandchild", "child"),
	}
	// Stale levels from an import must be overwritten.
	tasks[0].Level = 7

	tree, err := Build(tasks)
	require.NoError(t, err)
	tree.AssignLevels()

	assert.Equal(t, 0, tasks[0].Level)
	assert.Equal(t, 1, tasks[1].Level)
	assert.Equal(t, 2, tasks[2].Level)
}

func TestBuildMissingParent(t *testing.T) {
	tasks := []*model.Task{
		task("a", ""),
		task("orphan", "nope"),
	}

	_, err := Build(tasks)
	assert.ErrorIs(t, err, errors.ErrParentNotFound)
}

func TestBuildCycle(t *testing.T) {
	tasks := []*model.Task{
		task("a", "b"),
		task("b", "a"),
	}

	_, err := Build(tasks)
	assert.ErrorIs(t, err, errors.ErrHierarchyCycle)
}

func TestTreeAccessors(t *testing.T) {
	tasks := []*model.Task{
		task("a", ""),
		task("a1", "a"),
	}

	tree, err := Build(tasks)
	require.NoError(t, err)

	got, ok := tree.Get("a1")
	require.True(t, ok)
	assert.Equal(t, "a1", got.ID)

	_, ok = tree.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a1"}, tree.Children("a"))
	assert.Empty(t, tree.Children("a1"))
}

func TestNormalize(t *testing.T) {
	tasks := []*model.Task{
		task("child", "root"),
		task("root", ""),
	}

	ordered, err := Normalize(tasks)
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "child"}, ids(ordered))
	assert.Equal(t, 0, ordered[0].Level)
	assert.Equal(t, 1, ordered[1].Level)
}

func TestNormalizeEmpty(t *testing.T) {
	ordered, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, ordered)
}
