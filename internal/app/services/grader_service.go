package services

import (
	"context"
	"errors"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
	"github.com/emirhan/staffgrade/internal/pkg/helpers"
)

// DefaultMaxStudents is the student capacity a new grader starts with.
const DefaultMaxStudents = 10

type graderStore interface {
	graderLookup
	ListStatusByCourse(ctx context.Context, courseID int64) ([]models.GraderStatus, error)
	Create(ctx context.Context, grader *models.Grader) error
	UpdateMaxStudents(ctx context.Context, id int64, maxStudents int) error
	Delete(ctx context.Context, id int64) error
}

type studentAssigner interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	AssignGrader(ctx context.Context, studentID int64, graderID *int64) error
}

type userByUsername interface {
	GetOrCreateByUsername(ctx context.Context, username string) (*models.User, error)
}

type gradedLister interface {
	ListGradedByGrader(ctx context.Context, courseID, graderUserID int64, offset uint64, limit int) ([]models.Submission, int64, error)
}

// GraderService manages the grader roster and student assignments
type GraderService struct {
	graders     graderStore
	students    studentAssigner
	users       userByUsername
	submissions gradedLister
}

// NewGraderService creates a new grader service
func NewGraderService(graders graderStore, students studentAssigner, users userByUsername, submissions gradedLister) *GraderService {
	return &GraderService{
		graders:     graders,
		students:    students,
		users:       users,
		submissions: submissions,
	}
}

func newGraderStatusResponse(gs *models.GraderStatus) dto.GraderStatusResponse {
	resp := dto.GraderStatusResponse{
		ID:                    gs.ID,
		UserID:                gs.UserID,
		MaxStudents:           gs.MaxStudents,
		StudentCount:          gs.StudentCount,
		GradedCount:           gs.GradedCount,
		NotGradedCount:        gs.NotGradedCount,
		AvailableStudentSlots: gs.AvailableStudentSlots(),
	}
	if gs.User != nil {
		resp.FullName = gs.User.FullName()
		resp.Email = gs.User.Email
	}
	return resp
}

// ListGraders returns the grader roster of a course with grading counts.
func (s *GraderService) ListGraders(ctx context.Context, courseID int64) (*dto.GraderListResponse, error) {
	statuses, err := s.graders.ListStatusByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	resp := &dto.GraderListResponse{
		Graders: make([]dto.GraderStatusResponse, 0, len(statuses)),
	}
	for i := range statuses {
		resp.Graders = append(resp.Graders, newGraderStatusResponse(&statuses[i]))
	}
	return resp, nil
}

// CreateGrader promotes a user, by username, to grader of the course. The
// user record is created on the fly when the username has never launched.
func (s *GraderService) CreateGrader(ctx context.Context, courseID int64, req *dto.CreateGraderRequest) (*dto.GraderStatusResponse, error) {
	user, err := s.users.GetOrCreateByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	maxStudents := req.MaxStudents
	if maxStudents <= 0 {
		maxStudents = DefaultMaxStudents
	}

	grader := &models.Grader{
		CourseID:    courseID,
		UserID:      user.ID,
		MaxStudents: maxStudents,
	}
	if err := s.graders.Create(ctx, grader); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil, apperrors.NewConflictError("user is already a grader in this course")
		}
		return nil, err
	}

	created, err := s.graders.GetByID(ctx, grader.ID)
	if err != nil {
		return nil, err
	}

	resp := newGraderStatusResponse(created)
	return &resp, nil
}

// AssignStudent sets or clears a student's grader. Assigning checks the
// grader's remaining capacity; clearing always succeeds.
func (s *GraderService) AssignStudent(ctx context.Context, courseID, studentID int64, graderID *int64) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.CourseID != courseID {
		return apperrors.ErrStudentNotFound
	}

	if graderID == nil {
		return s.students.AssignGrader(ctx, studentID, nil)
	}

	grader, err := s.graders.GetByID(ctx, *graderID)
	if err != nil {
		return err
	}
	if grader.CourseID != courseID {
		return apperrors.ErrGraderNotFound
	}

	// Moving a student within the same grader must not count against capacity.
	if student.GraderID == nil || *student.GraderID != grader.ID {
		if grader.AvailableStudentSlots() <= 0 {
			return apperrors.ErrGraderFull
		}
	}

	return s.students.AssignGrader(ctx, studentID, graderID)
}

// GetGraderDetail returns one grader's profile and the submissions they have
// graded, paginated.
func (s *GraderService) GetGraderDetail(ctx context.Context, courseID, graderID int64, page, pageSize int) (*dto.GraderDetailResponse, error) {
	grader, err := s.graders.GetByID(ctx, graderID)
	if err != nil {
		return nil, err
	}
	if grader.CourseID != courseID {
		return nil, apperrors.ErrGraderNotFound
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	graded, total, err := s.submissions.ListGradedByGrader(ctx, courseID, grader.UserID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.GraderDetailResponse{
		Grader:     newGraderStatusResponse(grader),
		Graded:     make([]dto.SubmissionResponse, 0, len(graded)),
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for i := range graded {
		resp.Graded = append(resp.Graded, dto.NewSubmissionResponse(&graded[i]))
	}
	return resp, nil
}

// UpdateMaxStudents changes a grader's student capacity.
func (s *GraderService) UpdateMaxStudents(ctx context.Context, courseID, graderID int64, maxStudents int) error {
	grader, err := s.graders.GetByID(ctx, graderID)
	if err != nil {
		return err
	}
	if grader.CourseID != courseID {
		return apperrors.ErrGraderNotFound
	}
	return s.graders.UpdateMaxStudents(ctx, graderID, maxStudents)
}

// DeleteGrader removes a grader from the course. Their students become
// unassigned.
func (s *GraderService) DeleteGrader(ctx context.Context, courseID, graderID int64) error {
	grader, err := s.graders.GetByID(ctx, graderID)
	if err != nil {
		return err
	}
	if grader.CourseID != courseID {
		return apperrors.ErrGraderNotFound
	}
	return s.graders.Delete(ctx, graderID)
}
