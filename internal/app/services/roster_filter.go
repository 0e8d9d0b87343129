package services

import (
	"fmt"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

// RosterFilter selects which roster rows are shown. Exactly one filter is in
// effect at a time.
type RosterFilter string

const (
	// FilterAll shows every student.
	FilterAll RosterFilter = "all"
	// FilterNoGrader shows students without an assigned grader.
	FilterNoGrader RosterFilter = "no_grader"
	// FilterHasGrader shows students with an assigned grader.
	FilterHasGrader RosterFilter = "has_grader"
	// FilterNotGraded shows students with at least one submitted submission
	// awaiting grading.
	FilterNotGraded RosterFilter = "not_graded"
)

// ParseRosterFilter maps the query parameter onto a filter. An absent value
// means all; an unknown value is rejected rather than silently widened.
func ParseRosterFilter(value string) (RosterFilter, error) {
	switch RosterFilter(value) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterNoGrader, FilterHasGrader, FilterNotGraded:
		return RosterFilter(value), nil
	default:
		return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown roster filter: %q", value))
	}
}

// ApplyRosterFilter returns the rows the filter keeps, in their original
// order. The input is never modified.
func ApplyRosterFilter(rows []models.RosterRow, filter RosterFilter) []models.RosterRow {
	if filter == FilterAll {
		return rows
	}

	kept := make([]models.RosterRow, 0, len(rows))
	for _, row := range rows {
		var match bool
		switch filter {
		case FilterNoGrader:
			match = !row.HasGrader()
		case FilterHasGrader:
			match = row.HasGrader()
		case FilterNotGraded:
			match = row.NotGradedCount > 0
		}
		if match {
			kept = append(kept, row)
		}
	}
	return kept
}

// RosterHeading returns the page heading for a roster view. The heading
// reflects the view's scope, not the active filter: the course-wide roster is
// always "(All)", a grader-scoped roster names the grader.
func RosterHeading(graderName string) string {
	if graderName == "" {
		return "Student List (All)"
	}
	return fmt.Sprintf("Student List (Grader: %s)", graderName)
}
