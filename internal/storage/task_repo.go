package storage

import (
	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/model"
)

// TaskRepo provides operations for Task entities.
type TaskRepo struct {
	db *DB
}

// NewTaskRepo creates a new task repository.
func NewTaskRepo(db *DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create creates a new task record.
func (r *TaskRepo) Create(task *model.Task) error {
	task.Key = model.GenerateTaskKey(task.ProjectID, task.ID)
	return r.db.Set(task)
}

// Get retrieves a task by project id and task id.
func (r *TaskRepo) Get(projectID, taskID string) (*model.Task, error) {
	task := &model.Task{}
	key := model.GenerateTaskKey(projectID, taskID)
	if err := r.db.Get(key, task); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Update updates an existing task record.
func (r *TaskRepo) Update(task *model.Task) error {
	return r.db.Set(task)
}

// UpdateAll persists a batch of task records.
func (r *TaskRepo) UpdateAll(tasks []*model.Task) error {
	for _, task := range tasks {
		if err := r.Update(task); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a task record.
func (r *TaskRepo) Delete(projectID, taskID string) error {
	return r.db.Delete(model.GenerateTaskKey(projectID, taskID))
}

// DeleteByProject removes all task records belonging to a project.
func (r *TaskRepo) DeleteByProject(projectID string) error {
	return r.db.DeleteByPrefix(model.PrefixTask + ":" + projectID + ":")
}

// List retrieves all tasks across projects.
func (r *TaskRepo) List() ([]*model.Task, error) {
	return GetAllByPrefix(r.db, model.PrefixTask+":", func() *model.Task {
		return &model.Task{}
	})
}

// ListByProject retrieves all tasks for a specific project.
func (r *TaskRepo) ListByProject(projectID string) ([]*model.Task, error) {
	prefix := model.PrefixTask + ":" + projectID + ":"
	return GetAllByPrefix(r.db, prefix, func() *model.Task {
		return &model.Task{}
	})
}

// Exists checks if a task exists.
func (r *TaskRepo) Exists(projectID, taskID string) (bool, error) {
	return r.db.Exists(model.GenerateTaskKey(projectID, taskID))
}
