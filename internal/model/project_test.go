package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/schedule"
)

func newTestProject(taskDurations ...int) *Project {
	project := NewProject("website", "", date(1)) // Mon Jan 1 2024
	for i, d := range taskDurations {
		// Stagger task starts across the first week.
		task := NewTask(project.ID, "task", date(1+i), d)
		project.Tasks = append(project.Tasks, task)
	}
	return project
}

func TestNewProject(t *testing.T) {
	project := NewProject("website", "relaunch", date(1))

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "website", project.Name)
	assert.Equal(t, date(1), project.StartDate)
	assert.True(t, project.EndDate.IsZero())
	assert.Equal(t, "project:"+project.ID, project.Key)
}

func TestValidateDateAdjustmentForward(t *testing.T) {
	project := newTestProject(5, 3)

	report := project.ValidateDateAdjustment(date(8)) // Mon -> next Mon

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 6, report.DaysDifference)
	assert.Equal(t, 2, report.AffectedTasks)
}

func TestValidateDateAdjustmentMissingDate(t *testing.T) {
	project := newTestProject(5)

	report := project.ValidateDateAdjustment(time.Time{})

	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "missing")
	assert.Equal(t, 0, report.AffectedTasks)
}

func TestValidateDateAdjustmentWarnsOnSunday(t *testing.T) {
	project := newTestProject(2)

	report := project.ValidateDateAdjustment(date(7)) // Sunday

	assert.True(t, report.IsValid, "non-working start is a warning, not an error")
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "non-working day")
}

func TestValidateDateAdjustmentWarnsPastEndDate(t *testing.T) {
	project := newTestProject(2)
	project.RecalculateEndDate()

	report := project.ValidateDateAdjustment(date(29))

	assert.True(t, report.IsValid)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "end date")
}

func TestValidateDateAdjustmentReportsBrokenTasks(t *testing.T) {
	project := newTestProject(3)
	broken := NewTask(project.ID, "broken", date(2), 2)
	broken.StartDate = time.Time{}
	project.Tasks = append(project.Tasks, broken)

	report := project.ValidateDateAdjustment(date(8))

	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "broken")
	// The dry run must not mutate anything.
	assert.Equal(t, date(1), project.Tasks[0].StartDate)
	assert.Equal(t, date(1), project.StartDate)
}

func TestAdjustProjectDatesForward(t *testing.T) {
	project := newTestProject(5, 3, 1)
	durationsBefore := []int{5, 3, 1}

	report, err := project.AdjustProjectDates(date(8)) // forward by 6 working days
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.True(t, report.IsMovingForward)
	assert.Equal(t, 6, report.DaysDifference)
	assert.Equal(t, 3, report.AdjustedTasks)
	assert.Empty(t, report.FailedTasks)

	assert.Equal(t, date(8), project.StartDate)
	// Every start moves forward 6 working days; durations are invariant.
	assert.Equal(t, date(8), project.Tasks[0].StartDate)  // Mon 1 -> Mon 8
	assert.Equal(t, date(9), project.Tasks[1].StartDate)  // Tue 2 -> Tue 9
	assert.Equal(t, date(10), project.Tasks[2].StartDate) // Wed 3 -> Wed 10
	for i, task := range project.Tasks {
		assert.Equal(t, durationsBefore[i], task.Duration)
	}
}

func TestAdjustProjectDatesBackward(t *testing.T) {
	project := newTestProject(4)
	_, err := project.AdjustProjectDates(date(8))
	require.NoError(t, err)

	report, err := project.AdjustProjectDates(date(1))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.False(t, report.IsMovingForward)
	assert.Equal(t, 6, report.DaysDifference)
	assert.Equal(t, date(1), project.StartDate)
	assert.Equal(t, date(1), project.Tasks[0].StartDate)
	assert.Equal(t, 4, project.Tasks[0].Duration)
}

func TestAdjustProjectDatesMissingDate(t *testing.T) {
	project := newTestProject(5)

	report, err := project.AdjustProjectDates(time.Time{})

	assert.ErrorIs(t, err, errors.ErrMissingDate)
	assert.Nil(t, report)
	assert.Equal(t, date(1), project.StartDate, "anchor must be unchanged")
	assert.Equal(t, date(1), project.Tasks[0].StartDate)
}

func TestAdjustProjectDatesCommitsNothingOnFailure(t *testing.T) {
	project := newTestProject(5, 3)
	broken := NewTask(project.ID, "broken", date(3), 2)
	broken.StartDate = time.Time{}
	project.Tasks = append(project.Tasks, broken)

	report, err := project.AdjustProjectDates(date(8))

	assert.ErrorIs(t, err, errors.ErrAdjustBlocked)
	require.NotNil(t, report)
	assert.False(t, report.Success)
	assert.Equal(t, 0, report.AdjustedTasks)
	require.Len(t, report.FailedTasks, 1)
	assert.Equal(t, broken.ID, report.FailedTasks[0].TaskID)
	assert.Equal(t, "broken", report.FailedTasks[0].Title)

	// Two-phase commit: the healthy tasks and the anchor are untouched.
	assert.Equal(t, date(1), project.StartDate)
	assert.Equal(t, date(1), project.Tasks[0].StartDate)
	assert.Equal(t, date(2), project.Tasks[1].StartDate)
}

func TestAdjustProjectDatesSundayStartTaskKeepsDuration(t *testing.T) {
	project := newTestProject()
	sunday := NewTask(project.ID, "kickoff", date(7), 3)
	project.Tasks = append(project.Tasks, sunday)

	// A zero-displacement adjustment leaves the Sunday anchor in place;
	// the recomputed end must still match the duration.
	report, err := project.AdjustProjectDates(date(1))
	require.NoError(t, err)
	assert.Equal(t, 0, report.DaysDifference)
	assert.Equal(t, date(7), sunday.StartDate)
	assert.Equal(t, date(10), sunday.EndDate)

	count, err := schedule.CountWorkingDays(sunday.StartDate, sunday.EndDate)
	require.NoError(t, err)
	assert.Equal(t, sunday.Duration, count)

	// A forward move lands the task on a working day and keeps the
	// duration.
	_, err = project.AdjustProjectDates(date(8))
	require.NoError(t, err)
	assert.Equal(t, 3, sunday.Duration)

	count, err = schedule.CountWorkingDays(sunday.StartDate, sunday.EndDate)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAdjustProjectDatesIsIdempotentForSameTarget(t *testing.T) {
	project := newTestProject(5)

	_, err := project.AdjustProjectDates(date(8))
	require.NoError(t, err)
	firstStart := project.Tasks[0].StartDate

	report, err := project.AdjustProjectDates(date(8))
	require.NoError(t, err)

	assert.Equal(t, 0, report.DaysDifference)
	assert.Equal(t, firstStart, project.Tasks[0].StartDate)
}

func TestRecalculateEndDate(t *testing.T) {
	project := newTestProject(5, 8, 2)

	project.RecalculateEndDate()

	latest := project.Tasks[1].EndDate // duration 8 starting Tue 2nd
	assert.Equal(t, latest, project.EndDate)
}

func TestRecalculateEndDateEmptyProject(t *testing.T) {
	project := NewProject("empty", "", date(1))

	project.RecalculateEndDate()

	assert.True(t, project.EndDate.IsZero())
}
