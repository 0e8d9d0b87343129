package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

type fakeAssignmentStore struct {
	fakeAssignmentGetter
	courseProgress []models.AssignmentProgress
	graderProgress map[int64][]models.AssignmentProgress
	nextID         int64
}

func (f *fakeAssignmentStore) Create(_ context.Context, assignment *models.Assignment) error {
	for _, a := range f.assignments {
		if a.EdxID == assignment.EdxID {
			return apperrors.ErrAssignmentAlreadyExists
		}
	}
	f.nextID++
	assignment.ID = f.nextID + 100
	if f.assignments == nil {
		f.assignments = map[int64]*models.Assignment{}
	}
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentStore) Update(_ context.Context, assignment *models.Assignment) error {
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentStore) ListProgressByCourse(_ context.Context, _ int64) ([]models.AssignmentProgress, error) {
	return f.courseProgress, nil
}

func (f *fakeAssignmentStore) ListProgressByGrader(_ context.Context, _, graderID int64) ([]models.AssignmentProgress, error) {
	return f.graderProgress[graderID], nil
}

type fakeStatusLister struct {
	statuses []models.StudentSubmissionStatus
}

func (f *fakeStatusLister) StatusByAssignment(_ context.Context, _, _ int64) ([]models.StudentSubmissionStatus, error) {
	return f.statuses, nil
}

func TestListAssignmentsAdminSeesCourseCounts(t *testing.T) {
	store := &fakeAssignmentStore{
		courseProgress: []models.AssignmentProgress{
			{Assignment: models.Assignment{ID: 30, Name: "Essay 1"}, GradedCount: 5, NotGradedCount: 3, NotSubmittedCount: 2},
		},
	}
	svc := NewAssignmentService(store, &fakeGraderLookup{}, &fakeStatusLister{})

	resp, err := svc.ListAssignments(context.Background(), 1, 99, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 1)
	assert.Equal(t, 5, resp.Assignments[0].GradedCount)
	assert.Equal(t, 3, resp.Assignments[0].NotGradedCount)
}

func TestListAssignmentsGraderSeesOwnCounts(t *testing.T) {
	store := &fakeAssignmentStore{
		courseProgress: []models.AssignmentProgress{
			{Assignment: models.Assignment{ID: 30}, NotGradedCount: 9},
		},
		graderProgress: map[int64][]models.AssignmentProgress{
			5: {{Assignment: models.Assignment{ID: 30}, NotGradedCount: 2}},
		},
	}
	graders := &fakeGraderLookup{byUser: map[int64]*models.GraderStatus{
		7: graderStatusFixture(5, 7, "Grace", "Hall", 10, 2),
	}}
	svc := NewAssignmentService(store, graders, &fakeStatusLister{})

	resp, err := svc.ListAssignments(context.Background(), 1, 7, models.RoleGrader)
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 1)
	assert.Equal(t, 2, resp.Assignments[0].NotGradedCount)

	_, err = svc.ListAssignments(context.Background(), 1, 42, models.RoleGrader)
	assert.ErrorIs(t, err, apperrors.ErrGraderNotFound)
}

func TestCreateAssignment(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewAssignmentService(store, &fakeGraderLookup{}, &fakeStatusLister{})

	due := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	created, err := svc.CreateAssignment(context.Background(), 1, &dto.CreateAssignmentRequest{
		EdxID:       "block-v1:Demo+sga1",
		Name:        "Essay 1",
		DueDate:     &due,
		GracePeriod: 30,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.CourseID)

	_, err = svc.CreateAssignment(context.Background(), 1, &dto.CreateAssignmentRequest{
		EdxID: "block-v1:Demo+sga1",
		Name:  "Essay 1 again",
	})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentAlreadyExists)
}

func TestGetOrCreateAssignmentByEdxID(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewAssignmentService(store, &fakeGraderLookup{}, &fakeStatusLister{})

	first, err := svc.GetOrCreateByEdxID(context.Background(), 1, "block-v1:Demo+sga1", "Essay 1")
	require.NoError(t, err)
	again, err := svc.GetOrCreateByEdxID(context.Background(), 1, "block-v1:Demo+sga1", "Essay 1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestGetAssignmentDetail(t *testing.T) {
	store := &fakeAssignmentStore{
		fakeAssignmentGetter: fakeAssignmentGetter{assignments: map[int64]*models.Assignment{
			30: {ID: 30, CourseID: 1, Name: "Essay 1"},
		}},
	}
	lister := &fakeStatusLister{statuses: []models.StudentSubmissionStatus{
		{UserID: 10, Username: "student_ann", FullName: "Ann Lee", Submitted: true, Graded: false},
		{UserID: 11, Username: "student_bob", FullName: "student_bob"},
	}}
	svc := NewAssignmentService(store, &fakeGraderLookup{}, lister)

	resp, err := svc.GetAssignmentDetail(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, "Essay 1", resp.Assignment.Name)
	require.Len(t, resp.Students, 2)
	assert.True(t, resp.Students[0].Submitted)
	assert.False(t, resp.Students[0].Graded)

	_, err = svc.GetAssignmentDetail(context.Background(), 2, 30)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestUpdateAssignment(t *testing.T) {
	store := &fakeAssignmentStore{
		fakeAssignmentGetter: fakeAssignmentGetter{assignments: map[int64]*models.Assignment{
			30: {ID: 30, CourseID: 1, Name: "Essay 1", GracePeriod: 0},
		}},
	}
	svc := NewAssignmentService(store, &fakeGraderLookup{}, &fakeStatusLister{})

	updated, err := svc.UpdateAssignment(context.Background(), 1, 30, &dto.CreateAssignmentRequest{
		Name:        "Essay 1 (revised)",
		GracePeriod: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "Essay 1 (revised)", updated.Name)
	assert.Equal(t, 60, updated.GracePeriod)
}
