package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models"
)

// rosterFixture covers the three interesting student shapes: assigned with
// ungraded work, unassigned with ungraded work, and assigned with nothing
// pending.
func rosterFixture() []models.RosterRow {
	grace := &models.RosterGrader{UserID: 7, FullName: "Grace Hall"}
	return []models.RosterRow{
		{StudentID: 1, UserID: 10, Username: "student_a", FullName: "Ann Lee", Grader: grace, NotGradedCount: 2},
		{StudentID: 2, UserID: 11, Username: "student_b", FullName: "Bob Reyes", Grader: nil, NotGradedCount: 1},
		{StudentID: 3, UserID: 12, Username: "student_c", FullName: "Cam Diaz", Grader: grace, NotGradedCount: 0},
	}
}

func TestParseRosterFilter(t *testing.T) {
	tests := []struct {
		value   string
		want    RosterFilter
		wantErr bool
	}{
		{value: "", want: FilterAll},
		{value: "all", want: FilterAll},
		{value: "no_grader", want: FilterNoGrader},
		{value: "has_grader", want: FilterHasGrader},
		{value: "not_graded", want: FilterNotGraded},
		{value: "bogus", wantErr: true},
		{value: "ALL", wantErr: true},
		{value: "not graded", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			got, err := ParseRosterFilter(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyRosterFilter(t *testing.T) {
	rows := rosterFixture()

	tests := []struct {
		name   string
		filter RosterFilter
		want   []string
	}{
		{name: "all keeps everyone", filter: FilterAll, want: []string{"student_a", "student_b", "student_c"}},
		{name: "no_grader keeps unassigned", filter: FilterNoGrader, want: []string{"student_b"}},
		{name: "has_grader keeps assigned", filter: FilterHasGrader, want: []string{"student_a", "student_c"}},
		{name: "not_graded keeps pending work", filter: FilterNotGraded, want: []string{"student_a", "student_b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRosterFilter(rows, tt.filter)
			usernames := make([]string, 0, len(got))
			for _, row := range got {
				usernames = append(usernames, row.Username)
			}
			assert.Equal(t, tt.want, usernames)
		})
	}
}

// Every student is matched by exactly one of no_grader / has_grader, so the
// two filters partition the roster.
func TestApplyRosterFilterPartition(t *testing.T) {
	rows := rosterFixture()

	noGrader := ApplyRosterFilter(rows, FilterNoGrader)
	hasGrader := ApplyRosterFilter(rows, FilterHasGrader)

	assert.Equal(t, len(rows), len(noGrader)+len(hasGrader))
	for _, row := range noGrader {
		assert.Nil(t, row.Grader)
	}
	for _, row := range hasGrader {
		assert.NotNil(t, row.Grader)
	}
}

func TestApplyRosterFilterPreservesOrderAndInput(t *testing.T) {
	rows := rosterFixture()

	got := ApplyRosterFilter(rows, FilterNotGraded)
	require.Len(t, got, 2)
	assert.Equal(t, "student_a", got[0].Username)
	assert.Equal(t, "student_b", got[1].Username)

	// The input slice is untouched.
	assert.Len(t, rows, 3)
	assert.Equal(t, "student_a", rows[0].Username)
}

func TestApplyRosterFilterEmptyRoster(t *testing.T) {
	for _, filter := range []RosterFilter{FilterAll, FilterNoGrader, FilterHasGrader, FilterNotGraded} {
		assert.Empty(t, ApplyRosterFilter(nil, filter))
	}
}

func TestRosterHeading(t *testing.T) {
	assert.Equal(t, "Student List (All)", RosterHeading(""))
	assert.Equal(t, "Student List (Grader: Grace Hall)", RosterHeading("Grace Hall"))
}
