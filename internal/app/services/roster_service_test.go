package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

type fakeRosterStore struct {
	byCourse map[int64][]models.RosterRow
	byGrader map[int64][]models.RosterRow
}

func (f *fakeRosterStore) RosterByCourse(_ context.Context, courseID int64) ([]models.RosterRow, error) {
	return f.byCourse[courseID], nil
}

func (f *fakeRosterStore) RosterByGrader(_ context.Context, _ int64, graderID int64) ([]models.RosterRow, error) {
	return f.byGrader[graderID], nil
}

type fakeGraderLookup struct {
	byID   map[int64]*models.GraderStatus
	byUser map[int64]*models.GraderStatus
}

func (f *fakeGraderLookup) GetByID(_ context.Context, id int64) (*models.GraderStatus, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrGraderNotFound
	}
	return g, nil
}

func (f *fakeGraderLookup) GetByCourseAndUser(_ context.Context, _ int64, userID int64) (*models.GraderStatus, error) {
	g, ok := f.byUser[userID]
	if !ok {
		return nil, apperrors.ErrGraderNotFound
	}
	return g, nil
}

func graderStatusFixture(id, userID int64, first, last string, maxStudents, studentCount int) *models.GraderStatus {
	return &models.GraderStatus{
		Grader: models.Grader{
			ID:          id,
			CourseID:    1,
			UserID:      userID,
			MaxStudents: maxStudents,
			User:        &models.User{ID: userID, Username: "grader", FirstName: first, LastName: last},
		},
		StudentCount: studentCount,
	}
}

func TestGetCourseRoster(t *testing.T) {
	students := &fakeRosterStore{byCourse: map[int64][]models.RosterRow{1: rosterFixture()}}
	svc := NewRosterService(students, &fakeGraderLookup{})

	resp, err := svc.GetCourseRoster(context.Background(), 1, FilterNoGrader)
	require.NoError(t, err)

	assert.Equal(t, "Student List (All)", resp.Heading)
	assert.Equal(t, "no_grader", resp.Filter)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "student_b", resp.Rows[0].Username)
}

// The heading reflects the roster scope, not the display filter.
func TestGetCourseRosterHeadingIgnoresFilter(t *testing.T) {
	students := &fakeRosterStore{byCourse: map[int64][]models.RosterRow{1: rosterFixture()}}
	svc := NewRosterService(students, &fakeGraderLookup{})

	for _, filter := range []RosterFilter{FilterAll, FilterNoGrader, FilterHasGrader, FilterNotGraded} {
		resp, err := svc.GetCourseRoster(context.Background(), 1, filter)
		require.NoError(t, err)
		assert.Equal(t, "Student List (All)", resp.Heading)
	}
}

func TestGetGraderRoster(t *testing.T) {
	grace := graderStatusFixture(5, 7, "Grace", "Hall", 10, 2)
	students := &fakeRosterStore{byGrader: map[int64][]models.RosterRow{
		5: {
			{StudentID: 1, Username: "student_a", Grader: &models.RosterGrader{UserID: 7, FullName: "Grace Hall"}, NotGradedCount: 2},
			{StudentID: 3, Username: "student_c", Grader: &models.RosterGrader{UserID: 7, FullName: "Grace Hall"}},
		},
	}}
	svc := NewRosterService(students, &fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: grace}})

	resp, err := svc.GetGraderRoster(context.Background(), 1, 5, FilterAll)
	require.NoError(t, err)
	assert.Equal(t, "Student List (Grader: Grace Hall)", resp.Heading)
	assert.Len(t, resp.Rows, 2)

	resp, err = svc.GetGraderRoster(context.Background(), 1, 5, FilterNotGraded)
	require.NoError(t, err)
	assert.Equal(t, "Student List (Grader: Grace Hall)", resp.Heading)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "student_a", resp.Rows[0].Username)
}

func TestGetGraderRosterUnknownGrader(t *testing.T) {
	svc := NewRosterService(&fakeRosterStore{}, &fakeGraderLookup{})

	_, err := svc.GetGraderRoster(context.Background(), 1, 99, FilterAll)
	assert.ErrorIs(t, err, apperrors.ErrGraderNotFound)
}

func TestGetOwnRoster(t *testing.T) {
	grace := graderStatusFixture(5, 7, "Grace", "Hall", 10, 1)
	students := &fakeRosterStore{byGrader: map[int64][]models.RosterRow{
		5: {{StudentID: 1, Username: "student_a", Grader: &models.RosterGrader{UserID: 7, FullName: "Grace Hall"}}},
	}}
	graders := &fakeGraderLookup{
		byID:   map[int64]*models.GraderStatus{5: grace},
		byUser: map[int64]*models.GraderStatus{7: grace},
	}
	svc := NewRosterService(students, graders)

	resp, err := svc.GetOwnRoster(context.Background(), 1, 7, FilterAll)
	require.NoError(t, err)
	assert.Equal(t, "Student List (Grader: Grace Hall)", resp.Heading)
	require.Len(t, resp.Rows, 1)

	_, err = svc.GetOwnRoster(context.Background(), 1, 42, FilterAll)
	assert.ErrorIs(t, err, apperrors.ErrGraderNotFound)
}
