package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses  map[int64]*models.Course
	admins   map[int64]bool
	graders  map[int64]bool
	students map[int64]bool
	added    []int64
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseStore) GetOrCreateByEdxID(_ context.Context, edxID string) (*models.Course, error) {
	for _, c := range f.courses {
		if c.EdxID == edxID {
			return c, nil
		}
	}
	c := &models.Course{ID: int64(len(f.courses) + 1), EdxID: edxID}
	if f.courses == nil {
		f.courses = map[int64]*models.Course{}
	}
	f.courses[c.ID] = c
	return c, nil
}

func (f *fakeCourseStore) AddAdmin(_ context.Context, _, userID int64) error {
	f.added = append(f.added, userID)
	return nil
}

func (f *fakeCourseStore) IsAdmin(_ context.Context, _, userID int64) (bool, error) {
	return f.admins[userID], nil
}

func (f *fakeCourseStore) HasGrader(_ context.Context, _, userID int64) (bool, error) {
	return f.graders[userID], nil
}

func (f *fakeCourseStore) HasStudent(_ context.Context, _, userID int64) (bool, error) {
	return f.students[userID], nil
}

type fakeStudentEnroller struct {
	enrolled []int64
}

func (f *fakeStudentEnroller) GetOrCreate(_ context.Context, courseID, userID int64) (*models.Student, error) {
	f.enrolled = append(f.enrolled, userID)
	return &models.Student{ID: userID, CourseID: courseID, UserID: userID}, nil
}

type fakeGraderCreator struct {
	created   []*models.Grader
	createErr error
}

func (f *fakeGraderCreator) Create(_ context.Context, grader *models.Grader) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, grader)
	return nil
}

func TestResolveRole(t *testing.T) {
	store := &fakeCourseStore{
		// User 1 holds all three memberships; admin must win.
		admins:   map[int64]bool{1: true},
		graders:  map[int64]bool{1: true, 2: true},
		students: map[int64]bool{1: true, 2: true, 3: true},
	}
	svc := NewCourseService(store, &fakeStudentEnroller{}, &fakeGraderCreator{})

	tests := []struct {
		userID int64
		want   models.Role
	}{
		{userID: 1, want: models.RoleAdmin},
		{userID: 2, want: models.RoleGrader},
		{userID: 3, want: models.RoleStudent},
		{userID: 4, want: models.RoleNone},
	}
	for _, tt := range tests {
		role, err := svc.ResolveRole(context.Background(), 1, tt.userID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, role, "user %d", tt.userID)
	}
}

func TestEnsureMembershipAdmin(t *testing.T) {
	store := &fakeCourseStore{}
	svc := NewCourseService(store, &fakeStudentEnroller{}, &fakeGraderCreator{})

	require.NoError(t, svc.EnsureMembership(context.Background(), 1, 7, models.RoleAdmin))
	assert.Equal(t, []int64{7}, store.added)
}

// A launching grader gets both a grader record and a student bookkeeping row.
func TestEnsureMembershipGrader(t *testing.T) {
	graders := &fakeGraderCreator{}
	enroller := &fakeStudentEnroller{}
	svc := NewCourseService(&fakeCourseStore{}, enroller, graders)

	require.NoError(t, svc.EnsureMembership(context.Background(), 1, 7, models.RoleGrader))
	require.Len(t, graders.created, 1)
	assert.Equal(t, DefaultMaxStudents, graders.created[0].MaxStudents)
	assert.Equal(t, []int64{7}, enroller.enrolled)
}

func TestEnsureMembershipGraderRepeatLaunch(t *testing.T) {
	graders := &fakeGraderCreator{createErr: apperrors.ErrResourceAlreadyExists}
	enroller := &fakeStudentEnroller{}
	svc := NewCourseService(&fakeCourseStore{}, enroller, graders)

	require.NoError(t, svc.EnsureMembership(context.Background(), 1, 7, models.RoleGrader))
	assert.Equal(t, []int64{7}, enroller.enrolled)
}

func TestEnsureMembershipStudent(t *testing.T) {
	enroller := &fakeStudentEnroller{}
	svc := NewCourseService(&fakeCourseStore{}, enroller, &fakeGraderCreator{})

	require.NoError(t, svc.EnsureMembership(context.Background(), 1, 10, models.RoleStudent))
	assert.Equal(t, []int64{10}, enroller.enrolled)
}

func TestEnsureMembershipUnknownRole(t *testing.T) {
	svc := NewCourseService(&fakeCourseStore{}, &fakeStudentEnroller{}, &fakeGraderCreator{})

	err := svc.EnsureMembership(context.Background(), 1, 10, models.RoleNone)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetOrCreateByEdxID(t *testing.T) {
	store := &fakeCourseStore{}
	svc := NewCourseService(store, &fakeStudentEnroller{}, &fakeGraderCreator{})

	first, err := svc.GetOrCreateByEdxID(context.Background(), "course-v1:Demo")
	require.NoError(t, err)
	again, err := svc.GetOrCreateByEdxID(context.Background(), "course-v1:Demo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}
