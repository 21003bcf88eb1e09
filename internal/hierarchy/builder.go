// Package hierarchy builds and validates the parent/child structure of
// a project's task list. The scheduling core treats the task list as
// flat; this package owns level assignment and ordering.
package hierarchy

import (
	"sort"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/model"
)

// Tree is an arena of tasks addressed by id with a separate child
// index. Tasks keep their parent references; the tree never owns
// nested child slices, so walks are iterative rather than recursive.
type Tree struct {
	arena    map[string]*model.Task
	children map[string][]string
	roots    []string
}

// Build indexes tasks by id, verifies every parent reference resolves,
// and rejects cycles. Root tasks are those with an empty ParentTaskID.
func Build(tasks []*model.Task) (*Tree, error) {
	tree := &Tree{
		arena:    make(map[string]*model.Task, len(tasks)),
		children: make(map[string][]string),
	}

	for _, t := range tasks {
		tree.arena[t.ID] = t
	}

	for _, t := range tasks {
		if t.ParentTaskID == "" {
			tree.roots = append(tree.roots, t.ID)
			continue
		}
		if _, ok := tree.arena[t.ParentTaskID]; !ok {
			return nil, errors.Wrapf(errors.ErrParentNotFound,
				"task %q references parent %s", t.Title, t.ParentTaskID)
		}
		tree.children[t.ParentTaskID] = append(tree.children[t.ParentTaskID], t.ID)
	}

	// Keep sibling order deterministic.
	sort.Strings(tree.roots)
	for _, ids := range tree.children {
		sort.Strings(ids)
	}

	if err := tree.checkCycles(); err != nil {
		return nil, err
	}
	return tree, nil
}

// checkCycles verifies every task is reachable from a root. A task
// unreachable from any root sits on a parent cycle.
func (tr *Tree) checkCycles() error {
	seen := make(map[string]bool, len(tr.arena))
	stack := append([]string(nil), tr.roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, tr.children[id]...)
	}
	if len(seen) != len(tr.arena) {
		return errors.ErrHierarchyCycle
	}
	return nil
}

// Get returns the task with the given id, if present.
func (tr *Tree) Get(id string) (*model.Task, bool) {
	t, ok := tr.arena[id]
	return t, ok
}

// Children returns the ids of the direct children of id.
func (tr *Tree) Children(id string) []string {
	return tr.children[id]
}

// AssignLevels walks the tree pre-order and sets each task's Level to
// its depth (0 for roots), overwriting whatever the records carried.
func (tr *Tree) AssignLevels() {
	type frame struct {
		id    string
		level int
	}
	stack := make([]frame, 0, len(tr.roots))
	for i := len(tr.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{tr.roots[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		tr.arena[f.id].Level = f.level
		kids := tr.children[f.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.level + 1})
		}
	}
}

// Flatten returns the tasks in pre-order: each parent immediately
// followed by its subtree. This is the display and export order.
func (tr *Tree) Flatten() []*model.Task {
	out := make([]*model.Task, 0, len(tr.arena))
	stack := make([]string, 0, len(tr.roots))
	for i := len(tr.roots) - 1; i >= 0; i-- {
		stack = append(stack, tr.roots[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, tr.arena[id])
		kids := tr.children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// Normalize builds a tree from tasks, assigns levels, and returns the
// pre-order flattening. Convenience for import and generation paths.
func Normalize(tasks []*model.Task) ([]*model.Task, error) {
	tree, err := Build(tasks)
	if err != nil {
		return nil, err
	}
	tree.AssignLevels()
	return tree.Flatten(), nil
}
