// Package validate provides input validation helpers for the Workplan CLI.
package validate

import (
	"unicode/utf8"

	"github.com/manav03panchal/workplan/internal/errors"
)

const (
	// MaxNameLength is the maximum length for a project name.
	MaxNameLength = 128
	// MaxTitleLength is the maximum length for a task title.
	MaxTitleLength = 128
	// MaxDescriptionLength is the maximum length for a description.
	MaxDescriptionLength = 4096
	// MaxDuration is the largest accepted working-day duration.
	// Day-by-day calendar walks make absurd spans expensive.
	MaxDuration = 3650
)

// ProjectName validates a project name.
func ProjectName(name string) error {
	if name == "" {
		return errors.NewUserError("Project name cannot be empty", "Provide a project name")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Project name too long",
			"Project names must be 128 characters or fewer")
	}
	return nil
}

// TaskTitle validates a task title.
func TaskTitle(title string) error {
	if title == "" {
		return errors.NewUserError("Task title cannot be empty", "Provide a task title")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField("title", title,
			"Task title too long",
			"Task titles must be 128 characters or fewer")
	}
	return nil
}

// Description validates a description field.
func Description(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return errors.NewUserError(
			"Description too long",
			"Descriptions must be 4096 characters or fewer")
	}
	return nil
}

// Duration validates a working-day duration.
func Duration(days int) error {
	if days < 1 {
		return errors.NewUserError(
			"Duration must be at least 1 working day",
			"Use a positive number of working days")
	}
	if days > MaxDuration {
		return errors.NewUserError(
			"Duration too large",
			"Durations must be 3650 working days or fewer")
	}
	return nil
}
