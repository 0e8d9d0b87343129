package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

type fakeGraderStore struct {
	fakeGraderLookup
	statuses  []models.GraderStatus
	created   []*models.Grader
	updated   map[int64]int
	deleted   []int64
	createErr error
	nextID    int64
}

func (f *fakeGraderStore) ListStatusByCourse(_ context.Context, _ int64) ([]models.GraderStatus, error) {
	return f.statuses, nil
}

func (f *fakeGraderStore) Create(_ context.Context, grader *models.Grader) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	grader.ID = f.nextID
	f.created = append(f.created, grader)
	if f.byID == nil {
		f.byID = map[int64]*models.GraderStatus{}
	}
	f.byID[grader.ID] = &models.GraderStatus{Grader: *grader}
	return nil
}

func (f *fakeGraderStore) UpdateMaxStudents(_ context.Context, id int64, maxStudents int) error {
	if f.updated == nil {
		f.updated = map[int64]int{}
	}
	f.updated[id] = maxStudents
	return nil
}

func (f *fakeGraderStore) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStudentAssigner struct {
	students map[int64]*models.Student
	assigned map[int64]*int64
}

func (f *fakeStudentAssigner) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentAssigner) AssignGrader(_ context.Context, studentID int64, graderID *int64) error {
	if f.assigned == nil {
		f.assigned = map[int64]*int64{}
	}
	f.assigned[studentID] = graderID
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetOrCreateByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	u := &models.User{ID: int64(len(f.users) + 100), Username: username}
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[username] = u
	return u, nil
}

type fakeGradedLister struct {
	graded []models.Submission
	total  int64
}

func (f *fakeGradedLister) ListGradedByGrader(_ context.Context, _, _ int64, _ uint64, _ int) ([]models.Submission, int64, error) {
	return f.graded, f.total, nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateGrader(t *testing.T) {
	store := &fakeGraderStore{}
	svc := NewGraderService(store, &fakeStudentAssigner{}, &fakeUserStore{}, &fakeGradedLister{})

	resp, err := svc.CreateGrader(context.Background(), 1, &dto.CreateGraderRequest{Username: "grader_grace"})
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, DefaultMaxStudents, store.created[0].MaxStudents)
	assert.Equal(t, DefaultMaxStudents, resp.MaxStudents)

	resp, err = svc.CreateGrader(context.Background(), 1, &dto.CreateGraderRequest{Username: "grader_henry", MaxStudents: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxStudents)
}

func TestCreateGraderAlreadyExists(t *testing.T) {
	store := &fakeGraderStore{createErr: apperrors.ErrResourceAlreadyExists}
	svc := NewGraderService(store, &fakeStudentAssigner{}, &fakeUserStore{}, &fakeGradedLister{})

	_, err := svc.CreateGrader(context.Background(), 1, &dto.CreateGraderRequest{Username: "grader_grace"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "user is already a grader in this course")
}

func TestAssignStudent(t *testing.T) {
	grace := graderStatusFixture(5, 7, "Grace", "Hall", 2, 1)
	store := &fakeGraderStore{fakeGraderLookup: fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: grace}}}
	students := &fakeStudentAssigner{students: map[int64]*models.Student{
		1: {ID: 1, CourseID: 1, UserID: 10},
	}}
	svc := NewGraderService(store, students, &fakeUserStore{}, &fakeGradedLister{})

	err := svc.AssignStudent(context.Background(), 1, 1, int64Ptr(5))
	require.NoError(t, err)
	require.Contains(t, students.assigned, int64(1))
	assert.Equal(t, int64(5), *students.assigned[1])
}

func TestAssignStudentGraderFull(t *testing.T) {
	full := graderStatusFixture(5, 7, "Grace", "Hall", 2, 2)
	store := &fakeGraderStore{fakeGraderLookup: fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: full}}}
	students := &fakeStudentAssigner{students: map[int64]*models.Student{
		1: {ID: 1, CourseID: 1, UserID: 10},
	}}
	svc := NewGraderService(store, students, &fakeUserStore{}, &fakeGradedLister{})

	err := svc.AssignStudent(context.Background(), 1, 1, int64Ptr(5))
	assert.ErrorIs(t, err, apperrors.ErrGraderFull)
	assert.Empty(t, students.assigned)
}

// Re-assigning a student to the grader they already have is not a capacity
// change and must succeed even when the grader is at their limit.
func TestAssignStudentSameGraderAtCapacity(t *testing.T) {
	full := graderStatusFixture(5, 7, "Grace", "Hall", 2, 2)
	store := &fakeGraderStore{fakeGraderLookup: fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: full}}}
	students := &fakeStudentAssigner{students: map[int64]*models.Student{
		1: {ID: 1, CourseID: 1, UserID: 10, GraderID: int64Ptr(5)},
	}}
	svc := NewGraderService(store, students, &fakeUserStore{}, &fakeGradedLister{})

	err := svc.AssignStudent(context.Background(), 1, 1, int64Ptr(5))
	require.NoError(t, err)
	require.Contains(t, students.assigned, int64(1))
}

func TestAssignStudentUnassign(t *testing.T) {
	students := &fakeStudentAssigner{students: map[int64]*models.Student{
		1: {ID: 1, CourseID: 1, UserID: 10, GraderID: int64Ptr(5)},
	}}
	svc := NewGraderService(&fakeGraderStore{}, students, &fakeUserStore{}, &fakeGradedLister{})

	err := svc.AssignStudent(context.Background(), 1, 1, nil)
	require.NoError(t, err)
	require.Contains(t, students.assigned, int64(1))
	assert.Nil(t, students.assigned[1])
}

func TestAssignStudentWrongCourse(t *testing.T) {
	students := &fakeStudentAssigner{students: map[int64]*models.Student{
		1: {ID: 1, CourseID: 2, UserID: 10},
	}}
	svc := NewGraderService(&fakeGraderStore{}, students, &fakeUserStore{}, &fakeGradedLister{})

	err := svc.AssignStudent(context.Background(), 1, 1, int64Ptr(5))
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAssignStudentGraderWrongCourse(t *testing.T) {
	other := graderStatusFixture(5, 7, "Grace", "Hall", 10, 0)
	other.CourseID = 2
	store := &fakeGraderStore{fakeGraderLookup: fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: other}}}
	students := &fakeStudentAssigner{students: map[int64]*models.Student{
		1: {ID: 1, CourseID: 1, UserID: 10},
	}}
	svc := NewGraderService(store, students, &fakeUserStore{}, &fakeGradedLister{})

	err := svc.AssignStudent(context.Background(), 1, 1, int64Ptr(5))
	assert.ErrorIs(t, err, apperrors.ErrGraderNotFound)
}

func TestListGraders(t *testing.T) {
	grace := graderStatusFixture(5, 7, "Grace", "Hall", 10, 4)
	grace.GradedCount = 6
	grace.NotGradedCount = 2
	store := &fakeGraderStore{statuses: []models.GraderStatus{*grace}}
	svc := NewGraderService(store, &fakeStudentAssigner{}, &fakeUserStore{}, &fakeGradedLister{})

	resp, err := svc.ListGraders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Graders, 1)
	assert.Equal(t, "Grace Hall", resp.Graders[0].FullName)
	assert.Equal(t, 6, resp.Graders[0].GradedCount)
	assert.Equal(t, 2, resp.Graders[0].NotGradedCount)
	assert.Equal(t, 6, resp.Graders[0].AvailableStudentSlots)
}

func TestUpdateMaxStudents(t *testing.T) {
	grace := graderStatusFixture(5, 7, "Grace", "Hall", 10, 4)
	store := &fakeGraderStore{fakeGraderLookup: fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: grace}}}
	svc := NewGraderService(store, &fakeStudentAssigner{}, &fakeUserStore{}, &fakeGradedLister{})

	require.NoError(t, svc.UpdateMaxStudents(context.Background(), 1, 5, 20))
	assert.Equal(t, 20, store.updated[5])

	err := svc.UpdateMaxStudents(context.Background(), 2, 5, 20)
	assert.ErrorIs(t, err, apperrors.ErrGraderNotFound)
}

func TestDeleteGrader(t *testing.T) {
	grace := graderStatusFixture(5, 7, "Grace", "Hall", 10, 4)
	store := &fakeGraderStore{fakeGraderLookup: fakeGraderLookup{byID: map[int64]*models.GraderStatus{5: grace}}}
	svc := NewGraderService(store, &fakeStudentAssigner{}, &fakeUserStore{}, &fakeGradedLister{})

	require.NoError(t, svc.DeleteGrader(context.Background(), 1, 5))
	assert.Equal(t, []int64{5}, store.deleted)

	err := svc.DeleteGrader(context.Background(), 2, 5)
	assert.ErrorIs(t, err, apperrors.ErrGraderNotFound)
}
