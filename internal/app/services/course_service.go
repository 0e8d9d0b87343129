package services

import (
	"context"
	"errors"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

type courseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetOrCreateByEdxID(ctx context.Context, edxID string) (*models.Course, error)
	AddAdmin(ctx context.Context, courseID, userID int64) error
	IsAdmin(ctx context.Context, courseID, userID int64) (bool, error)
	HasGrader(ctx context.Context, courseID, userID int64) (bool, error)
	HasStudent(ctx context.Context, courseID, userID int64) (bool, error)
}

type studentEnroller interface {
	GetOrCreate(ctx context.Context, courseID, userID int64) (*models.Student, error)
}

type graderCreator interface {
	Create(ctx context.Context, grader *models.Grader) error
}

// CourseService manages course records and course membership
type CourseService struct {
	courses  courseStore
	students studentEnroller
	graders  graderCreator
}

// NewCourseService creates a new course service
func NewCourseService(courses courseStore, students studentEnroller, graders graderCreator) *CourseService {
	return &CourseService{
		courses:  courses,
		students: students,
		graders:  graders,
	}
}

// GetCourse retrieves a course by ID
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// ResolveRole determines a user's strongest role in a course from the stored
// membership records. Admin outranks grader outranks student.
func (s *CourseService) ResolveRole(ctx context.Context, courseID, userID int64) (models.Role, error) {
	isAdmin, err := s.courses.IsAdmin(ctx, courseID, userID)
	if err != nil {
		return models.RoleNone, err
	}
	if isAdmin {
		return models.RoleAdmin, nil
	}

	hasGrader, err := s.courses.HasGrader(ctx, courseID, userID)
	if err != nil {
		return models.RoleNone, err
	}
	if hasGrader {
		return models.RoleGrader, nil
	}

	hasStudent, err := s.courses.HasStudent(ctx, courseID, userID)
	if err != nil {
		return models.RoleNone, err
	}
	if hasStudent {
		return models.RoleStudent, nil
	}

	return models.RoleNone, nil
}

// EnsureMembership records a user's membership in a course for the launched
// role. Launching repeatedly with the same role is a no-op.
func (s *CourseService) EnsureMembership(ctx context.Context, courseID, userID int64, role models.Role) error {
	switch role {
	case models.RoleAdmin:
		return s.courses.AddAdmin(ctx, courseID, userID)
	case models.RoleGrader:
		grader := &models.Grader{
			CourseID:    courseID,
			UserID:      userID,
			MaxStudents: DefaultMaxStudents,
		}
		err := s.graders.Create(ctx, grader)
		if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return err
		}
		// Graders also carry a student row for bookkeeping.
		_, err = s.students.GetOrCreate(ctx, courseID, userID)
		return err
	case models.RoleStudent:
		_, err := s.students.GetOrCreate(ctx, courseID, userID)
		return err
	}
	return apperrors.NewBadRequestError("unknown course role")
}

// GetOrCreateByEdxID fetches the course for a launch context, creating it on
// first launch.
func (s *CourseService) GetOrCreateByEdxID(ctx context.Context, edxID string) (*models.Course, error) {
	return s.courses.GetOrCreateByEdxID(ctx, edxID)
}
