package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/schedule"
)

// Project aggregates tasks under a single anchor start date.
//
// EndDate is derived, not independently authoritative: it is only
// refreshed when RecalculateEndDate is called.
type Project struct {
	Key         string    `json:"key"`
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=128"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Tasks       []*Task   `json:"tasks,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetKey sets the database key for this project.
func (p *Project) SetKey(key string) {
	p.Key = key
}

// GetKey returns the database key for this project.
func (p *Project) GetKey() string {
	return p.Key
}

// GenerateProjectKey generates a database key for a project.
func GenerateProjectKey(id string) string {
	return fmt.Sprintf("%s:%s", PrefixProject, id)
}

// NewProject creates a new project anchored at start.
func NewProject(name, description string, start time.Time) *Project {
	id := uuid.NewString()
	now := time.Now()
	return &Project{
		Key:         GenerateProjectKey(id),
		ID:          id,
		Name:        name,
		Description: description,
		StartDate:   start,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidationReport is the structured result of a dry-run date
// adjustment. It is one of the two shapes a front end renders, so it
// must stay serializable and stable.
type ValidationReport struct {
	IsValid        bool     `json:"is_valid"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	DaysDifference int      `json:"days_difference"`
	AffectedTasks  int      `json:"affected_tasks"`
}

// TaskFailure records one task that could not be rescheduled.
type TaskFailure struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// AdjustmentReport is the structured result of a mutating date
// adjustment.
type AdjustmentReport struct {
	Success         bool          `json:"success"`
	AdjustedTasks   int           `json:"adjusted_tasks"`
	FailedTasks     []TaskFailure `json:"failed_tasks"`
	DaysDifference  int           `json:"days_difference"`
	IsMovingForward bool          `json:"is_moving_forward"`
}

// proposal is a staged new schedule for one task. Proposals are only
// applied once every task in the project has one.
type proposal struct {
	start time.Time
	end   time.Time
}

// shiftParams computes the direction and working-day displacement of a
// move from the project anchor to newStart. The displacement excludes
// the earlier anchor day itself, so applying it with AddWorkingDays
// reproduces the move.
func (p *Project) shiftParams(newStart time.Time) (forward bool, delta int, err error) {
	if newStart.IsZero() {
		return false, 0, errors.Wrap(errors.ErrMissingDate, "new start date")
	}
	if p.StartDate.IsZero() {
		return false, 0, errors.Wrap(errors.ErrInvalidDate, "project start date")
	}

	forward = !schedule.DateOnly(newStart).Before(schedule.DateOnly(p.StartDate))
	if forward {
		delta, err = schedule.Displacement(p.StartDate, newStart)
	} else {
		delta, err = schedule.Displacement(newStart, p.StartDate)
	}
	if err != nil {
		return false, 0, err
	}
	return forward, delta, nil
}

// proposeShift simulates moving one task by delta working days in the
// given direction, recomputing its end date from its own duration.
// The task is not mutated.
func proposeShift(t *Task, forward bool, delta int) (proposal, error) {
	var start time.Time
	var err error
	if forward {
		start, err = schedule.AddWorkingDays(t.StartDate, delta)
	} else {
		start, err = schedule.SubWorkingDays(t.StartDate, delta)
	}
	if err != nil {
		return proposal{}, errors.Wrap(err, "start date")
	}

	end := start
	if t.Duration >= 1 {
		end, err = schedule.SpanEnd(start, t.Duration)
		if err != nil {
			return proposal{}, errors.Wrap(err, "end date")
		}
	}
	return proposal{start: start, end: end}, nil
}

// ValidateDateAdjustment dry-runs a move of the project anchor to
// newStart. A missing or invalid anchor is a hard error; a new start
// past the project end date or on a non-working day is a warning.
// Every task is simulated without mutation and each failure becomes a
// report error. The report is always returned, never an error.
func (p *Project) ValidateDateAdjustment(newStart time.Time) *ValidationReport {
	report := &ValidationReport{
		Errors:   []string{},
		Warnings: []string{},
	}

	forward, delta, err := p.shiftParams(newStart)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	report.DaysDifference = delta

	if !p.EndDate.IsZero() && schedule.DateOnly(newStart).After(schedule.DateOnly(p.EndDate)) {
		report.Warnings = append(report.Warnings,
			"new start date is later than the current project end date")
	}
	if working, werr := schedule.IsWorkingDay(newStart); werr == nil && !working {
		report.Warnings = append(report.Warnings,
			"new start date falls on a non-working day")
	}

	for _, t := range p.Tasks {
		if _, perr := proposeShift(t, forward, delta); perr != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("task %q (%s): %v", t.Title, t.ID, perr))
		}
	}

	report.AffectedTasks = len(p.Tasks)
	report.IsValid = len(report.Errors) == 0
	return report
}

// AdjustProjectDates moves the project anchor to newStart and shifts
// every task by the same working-day displacement, preserving each
// task's duration.
//
// The operation is two-phase: all new task schedules are computed into
// a staging slice first, and nothing — neither tasks nor the project
// anchor — is mutated unless every task validates. On failure the
// returned report lists the failing tasks and the error names the
// failure count.
func (p *Project) AdjustProjectDates(newStart time.Time) (*AdjustmentReport, error) {
	forward, delta, err := p.shiftParams(newStart)
	if err != nil {
		return nil, err
	}

	report := &AdjustmentReport{
		FailedTasks:     []TaskFailure{},
		DaysDifference:  delta,
		IsMovingForward: forward,
	}

	proposals := make([]proposal, len(p.Tasks))
	for i, t := range p.Tasks {
		prop, perr := proposeShift(t, forward, delta)
		if perr != nil {
			report.FailedTasks = append(report.FailedTasks, TaskFailure{
				TaskID: t.ID,
				Title:  t.Title,
				Reason: perr.Error(),
			})
			continue
		}
		proposals[i] = prop
	}

	if len(report.FailedTasks) > 0 {
		return report, errors.Wrapf(errors.ErrAdjustBlocked,
			"%d of %d tasks failed validation", len(report.FailedTasks), len(p.Tasks))
	}

	now := time.Now()
	for i, t := range p.Tasks {
		t.StartDate = proposals[i].start
		t.EndDate = proposals[i].end
		t.UpdatedAt = now
	}
	p.StartDate = newStart
	p.UpdatedAt = now

	report.Success = true
	report.AdjustedTasks = len(p.Tasks)
	return report, nil
}

// RecalculateEndDate sets the project end date to the latest task end
// date. No-op on an empty task list.
func (p *Project) RecalculateEndDate() {
	if len(p.Tasks) == 0 {
		return
	}
	latest := p.Tasks[0].EndDate
	for _, t := range p.Tasks[1:] {
		if t.EndDate.After(latest) {
			latest = t.EndDate
		}
	}
	p.EndDate = latest
	p.UpdatedAt = time.Now()
}
