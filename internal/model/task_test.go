package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workplan/internal/schedule"
)

// January 2024: Mon 1st ... Sat 6th, Sun 7th, Mon 8th.
func date(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

// assertInvariant checks the core schedule invariant: duration always
// equals the inclusive working-day span between the task's dates.
func assertInvariant(t *testing.T, task *Task) {
	t.Helper()
	count, err := schedule.CountWorkingDays(task.StartDate, task.EndDate)
	require.NoError(t, err)
	assert.Equal(t, task.Duration, count)
}

func TestNewTask(t *testing.T) {
	task := NewTask("proj1", "Design mockups", date(1), 5)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "proj1", task.ProjectID)
	assert.Equal(t, "Design mockups", task.Title)
	assert.Equal(t, date(1), task.StartDate)
	assert.Equal(t, date(5), task.EndDate) // Mon + 5 inclusive = Fri
	assert.Equal(t, 5, task.Duration)
	assert.False(t, task.AdjustStartDate)
	assertInvariant(t, task)
}

func TestNewTaskSpansWeekend(t *testing.T) {
	// Friday + 3 inclusive working days: Fri, Sat, Mon.
	task := NewTask("proj1", "Review", date(5), 3)
	assert.Equal(t, date(8), task.EndDate)
	assertInvariant(t, task)
}

func TestNewTaskSundayStart(t *testing.T) {
	// A start on the non-working day contributes nothing to the span,
	// so five working days from Sunday the 7th end on Friday the 12th.
	task := NewTask("proj1", "Kickoff", date(7), 5)

	assert.Equal(t, date(7), task.StartDate)
	assert.Equal(t, date(12), task.EndDate)
	assert.Equal(t, 5, task.Duration)
	assertInvariant(t, task)
}

func TestSetDurationAdjustStartSundayEnd(t *testing.T) {
	task := NewTaskWithDates("proj1", "Wrap-up", date(5), date(7))
	task.AdjustStartDate = true

	task.SetDuration(2)

	assert.Equal(t, date(7), task.EndDate)
	assert.Equal(t, date(5), task.StartDate)
	assert.Equal(t, 2, task.Duration)
	assertInvariant(t, task)
}

func TestNewTaskWithDates(t *testing.T) {
	task := NewTaskWithDates("proj1", "Review", date(1), date(9))
	assert.Equal(t, 8, task.Duration) // Jan 1-9 minus Sunday the 7th
	assertInvariant(t, task)
}

func TestTaskSetGetKey(t *testing.T) {
	task := &Task{}
	task.SetKey("task:p1:t1")
	assert.Equal(t, "task:p1:t1", task.GetKey())
}

func TestGenerateTaskKey(t *testing.T) {
	assert.Equal(t, "task:p1:t1", GenerateTaskKey("p1", "t1"))
}

func TestSetStartDate(t *testing.T) {
	task := NewTask("proj1", "Build", date(1), 5)
	before := task.UpdatedAt

	task.SetStartDate(date(3))

	assert.Equal(t, date(3), task.StartDate)
	assert.Equal(t, date(5), task.EndDate, "end date must be untouched")
	assert.Equal(t, 3, task.Duration)
	assert.True(t, !task.UpdatedAt.Before(before))
	assertInvariant(t, task)
}

func TestSetStartDateInvertedRangeDegradesToZero(t *testing.T) {
	task := NewTask("proj1", "Build", date(1), 3)

	// Start after end: setter must not fail, duration degrades to 0.
	task.SetStartDate(date(10))

	assert.Equal(t, date(10), task.StartDate)
	assert.Equal(t, date(3), task.EndDate)
	assert.Equal(t, 0, task.Duration)
}

func TestSetEndDate(t *testing.T) {
	task := NewTask("proj1", "Build", date(1), 5)

	task.SetEndDate(date(9))

	assert.Equal(t, date(1), task.StartDate, "start date must be untouched")
	assert.Equal(t, 8, task.Duration)
	assertInvariant(t, task)
}

func TestSetDurationKeepsStartFixed(t *testing.T) {
	// Monday with duration 5, then shrink to 3: the end lands on the
	// 3rd working day counted from Monday itself, i.e. Wednesday.
	task := NewTask("proj1", "Build", date(1), 5)

	task.SetDuration(3)

	assert.Equal(t, date(1), task.StartDate)
	assert.Equal(t, date(3), task.EndDate)
	assert.Equal(t, 3, task.Duration)
	assertInvariant(t, task)
}

func TestSetDurationAdjustStartKeepsEndFixed(t *testing.T) {
	task := NewTask("proj1", "Build", date(1), 5)
	task.AdjustStartDate = true

	task.SetDuration(3)

	assert.Equal(t, date(5), task.EndDate)
	assert.Equal(t, date(3), task.StartDate)
	assert.Equal(t, 3, task.Duration)
	assertInvariant(t, task)
}

func TestSetDurationInvalidDegradesToCounterpart(t *testing.T) {
	task := NewTask("proj1", "Build", date(1), 5)

	// A non-positive duration cannot be laid out; the recomputed end
	// date falls back to a copy of the start date.
	task.SetDuration(0)

	assert.Equal(t, 0, task.Duration)
	assert.Equal(t, task.StartDate, task.EndDate)
}

func TestSettersNeverPanicOnZeroDates(t *testing.T) {
	task := &Task{ID: "t1"}

	assert.NotPanics(t, func() {
		task.SetStartDate(time.Time{})
		task.SetEndDate(time.Time{})
		task.SetDuration(4)
	})
	assert.Equal(t, 4, task.Duration)
}

func TestTaskUnmarshalRecomputesMissingDuration(t *testing.T) {
	raw := `{
		"id": "t1",
		"project_id": "p1",
		"title": "Imported",
		"start_date": "2024-01-01T00:00:00Z",
		"end_date": "2024-01-05T00:00:00Z"
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))

	assert.Equal(t, 5, task.Duration)
	assert.False(t, task.AdjustStartDate, "adjust_start_date defaults to false")
	assert.Equal(t, "task:p1:t1", task.Key)
}

func TestTaskUnmarshalKeepsExplicitZeroDuration(t *testing.T) {
	// A written zero duration is a degraded schedule, not a missing
	// field; import must not repair it from the date span.
	raw := `{
		"id": "t1",
		"project_id": "p1",
		"title": "Degraded",
		"start_date": "2024-01-01T00:00:00Z",
		"end_date": "2024-01-05T00:00:00Z",
		"duration": 0
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))

	assert.Equal(t, 0, task.Duration)
}

func TestTaskJSONRoundTripPreservesHierarchyFields(t *testing.T) {
	task := NewTask("proj1", "Child", date(1), 2)
	task.ParentTaskID = "parent-1"
	task.Level = 2

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var got Task
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "parent-1", got.ParentTaskID)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, task.Duration, got.Duration)
}
