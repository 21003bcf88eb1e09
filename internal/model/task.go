package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/workplan/internal/logging"
	"github.com/manav03panchal/workplan/internal/schedule"
)

// Task represents one unit of schedulable work within a project.
//
// The three schedule fields always satisfy
// Duration == schedule.CountWorkingDays(StartDate, EndDate) after every
// public mutation; duration is an inclusive working-day span, so a
// one-day task starts and ends on the same date.
type Task struct {
	Key          string `json:"key"`
	ID           string `json:"id" validate:"required"`
	ProjectID    string `json:"project_id" validate:"required"`
	ParentTaskID string `json:"parent_task_id,omitempty"`
	Level        int    `json:"level"`
	Title        string `json:"title" validate:"required,max=128"`
	Description  string `json:"description,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Duration  int       `json:"duration"`
	// AdjustStartDate selects which endpoint SetDuration recomputes:
	// false keeps the start date fixed, true keeps the end date fixed.
	AdjustStartDate bool `json:"adjust_start_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetKey sets the database key for this task.
func (t *Task) SetKey(key string) {
	t.Key = key
}

// GetKey returns the database key for this task.
func (t *Task) GetKey() string {
	return t.Key
}

// GenerateTaskKey generates a database key for a task.
func GenerateTaskKey(projectID, taskID string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixTask, projectID, taskID)
}

// NewTask creates a task starting on start and spanning duration
// working days. The end date is derived from the duration.
func NewTask(projectID, title string, start time.Time, duration int) *Task {
	id := uuid.NewString()
	now := time.Now()
	t := &Task{
		Key:       GenerateTaskKey(projectID, id),
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		StartDate: start,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.SetDuration(duration)
	return t
}

// NewTaskWithDates creates a task from two explicit dates; the duration
// is derived from the inclusive working-day span between them.
func NewTaskWithDates(projectID, title string, start, end time.Time) *Task {
	id := uuid.NewString()
	now := time.Now()
	t := &Task{
		Key:       GenerateTaskKey(projectID, id),
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.refreshDuration()
	return t
}

// SetStartDate sets the start date and recomputes the duration from
// the (start, end) span. The end date is left untouched. An inverted
// or invalid range degrades the duration to 0 instead of failing;
// task setters never return errors.
func (t *Task) SetStartDate(start time.Time) {
	t.StartDate = start
	t.refreshDuration()
	t.touch()
}

// SetEndDate sets the end date and recomputes the duration from the
// (start, end) span. The start date is left untouched.
func (t *Task) SetEndDate(end time.Time) {
	t.EndDate = end
	t.refreshDuration()
	t.touch()
}

// SetDuration sets the duration directly and recomputes one endpoint:
// the start date when AdjustStartDate is true (end date fixed), the
// end date otherwise (start date fixed). A calendar failure degrades
// the recomputed date to a copy of its counterpart.
func (t *Task) SetDuration(duration int) {
	t.Duration = duration
	if t.AdjustStartDate {
		start, err := schedule.SpanStart(t.EndDate, duration)
		if err != nil {
			logging.Warn("task start date degraded to end date",
				"task", t.ID, "duration", duration, "error", err)
			start = t.EndDate
		}
		t.StartDate = start
	} else {
		end, err := schedule.SpanEnd(t.StartDate, duration)
		if err != nil {
			logging.Warn("task end date degraded to start date",
				"task", t.ID, "duration", duration, "error", err)
			end = t.StartDate
		}
		t.EndDate = end
	}
	t.touch()
}

// refreshDuration re-derives Duration from the current date span,
// degrading to 0 on an inverted or invalid range.
func (t *Task) refreshDuration() {
	d, err := schedule.CountWorkingDays(t.StartDate, t.EndDate)
	if err != nil {
		logging.Warn("task duration degraded to 0",
			"task", t.ID, "error", err)
		d = 0
	}
	t.Duration = d
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now()
}

// Normalize repairs a task reconstructed from external data: a missing
// database key is rebuilt from the ids. AdjustStartDate already
// defaults to false through the zero value.
func (t *Task) Normalize() {
	if t.Key == "" && t.ID != "" {
		t.Key = GenerateTaskKey(t.ProjectID, t.ID)
	}
}

// UnmarshalJSON decodes a task and normalizes derived fields. A record
// without a duration field gets one recomputed from its date span; an
// explicit duration is kept as written, including a degraded zero.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		Duration *int `json:"duration"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Duration != nil {
		t.Duration = *aux.Duration
	} else if !t.StartDate.IsZero() && !t.EndDate.IsZero() {
		t.refreshDuration()
	}
	t.Normalize()
	return nil
}
