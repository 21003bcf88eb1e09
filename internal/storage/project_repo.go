package storage

import (
	"strings"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/model"
)

// ProjectRepo provides operations for Project entities.
//
// Projects are stored without their task list; tasks live under their
// own keys so they can be scanned and updated independently. Load
// reassembles the aggregate.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new project repository.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create creates a new project record.
func (r *ProjectRepo) Create(project *model.Project) error {
	project.Key = model.GenerateProjectKey(project.ID)
	return r.Update(project)
}

// Get retrieves a project by id, without its tasks.
func (r *ProjectRepo) Get(id string) (*model.Project, error) {
	project := &model.Project{}
	key := model.GenerateProjectKey(id)
	if err := r.db.Get(key, project); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Load retrieves a project by id with its task list populated from the
// task repository.
func (r *ProjectRepo) Load(id string, tasks *TaskRepo) (*model.Project, error) {
	project, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	project.Tasks, err = tasks.ListByProject(id)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update persists a project record. The task list is not stored here;
// use TaskRepo for task records.
func (r *ProjectRepo) Update(project *model.Project) error {
	stripped := *project
	stripped.Tasks = nil
	return r.db.Set(&stripped)
}

// Delete removes a project and all of its task records.
func (r *ProjectRepo) Delete(id string, tasks *TaskRepo) error {
	if err := tasks.DeleteByProject(id); err != nil {
		return err
	}
	return r.db.Delete(model.GenerateProjectKey(id))
}

// List retrieves all projects, without their tasks.
func (r *ProjectRepo) List() ([]*model.Project, error) {
	return GetAllByPrefix(r.db, model.PrefixProject+":", func() *model.Project {
		return &model.Project{}
	})
}

// FindByName retrieves a project by exact id or case-insensitive name.
func (r *ProjectRepo) FindByName(name string) (*model.Project, error) {
	if project, err := r.Get(name); err == nil {
		return project, nil
	}

	projects, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, errors.ErrProjectNotFound
}

// Exists checks if a project exists by id.
func (r *ProjectRepo) Exists(id string) (bool, error) {
	return r.db.Exists(model.GenerateProjectKey(id))
}
