package services

import (
	"context"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
)

// rosterStore is the slice of the student repository the roster service needs.
type rosterStore interface {
	RosterByCourse(ctx context.Context, courseID int64) ([]models.RosterRow, error)
	RosterByGrader(ctx context.Context, courseID, graderID int64) ([]models.RosterRow, error)
}

// graderLookup resolves grader records for roster headings.
type graderLookup interface {
	GetByID(ctx context.Context, id int64) (*models.GraderStatus, error)
	GetByCourseAndUser(ctx context.Context, courseID, userID int64) (*models.GraderStatus, error)
}

// RosterService serves the staff student roster views
type RosterService struct {
	students rosterStore
	graders  graderLookup
}

// NewRosterService creates a new roster service
func NewRosterService(students rosterStore, graders graderLookup) *RosterService {
	return &RosterService{
		students: students,
		graders:  graders,
	}
}

// GetCourseRoster returns the course-wide roster with the filter applied.
func (s *RosterService) GetCourseRoster(ctx context.Context, courseID int64, filter RosterFilter) (*dto.RosterResponse, error) {
	rows, err := s.students.RosterByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &dto.RosterResponse{
		Heading: RosterHeading(""),
		Filter:  string(filter),
		Rows:    ApplyRosterFilter(rows, filter),
	}, nil
}

// GetGraderRoster returns the roster narrowed to one grader's students, with
// the filter applied. The heading names the grader.
func (s *RosterService) GetGraderRoster(ctx context.Context, courseID, graderID int64, filter RosterFilter) (*dto.RosterResponse, error) {
	grader, err := s.graders.GetByID(ctx, graderID)
	if err != nil {
		return nil, err
	}

	rows, err := s.students.RosterByGrader(ctx, courseID, graderID)
	if err != nil {
		return nil, err
	}

	return &dto.RosterResponse{
		Heading: RosterHeading(grader.User.FullName()),
		Filter:  string(filter),
		Rows:    ApplyRosterFilter(rows, filter),
	}, nil
}

// GetOwnRoster returns the roster of the grader identified by their user id,
// for graders viewing their own students.
func (s *RosterService) GetOwnRoster(ctx context.Context, courseID, graderUserID int64, filter RosterFilter) (*dto.RosterResponse, error) {
	grader, err := s.graders.GetByCourseAndUser(ctx, courseID, graderUserID)
	if err != nil {
		return nil, err
	}
	return s.GetGraderRoster(ctx, courseID, grader.ID, filter)
}
