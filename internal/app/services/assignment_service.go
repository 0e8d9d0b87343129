package services

import (
	"context"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

type assignmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
	ListProgressByCourse(ctx context.Context, courseID int64) ([]models.AssignmentProgress, error)
	ListProgressByGrader(ctx context.Context, courseID, graderID int64) ([]models.AssignmentProgress, error)
}

type statusLister interface {
	StatusByAssignment(ctx context.Context, courseID, assignmentID int64) ([]models.StudentSubmissionStatus, error)
}

// AssignmentService serves the staff assignment views
type AssignmentService struct {
	assignments assignmentStore
	graders     graderLookup
	submissions statusLister
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignments assignmentStore, graders graderLookup, submissions statusLister) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		graders:     graders,
		submissions: submissions,
	}
}

// ListAssignments returns the course's assignments with grading progress.
// Admins see course-wide counts; graders see counts narrowed to their own
// students.
func (s *AssignmentService) ListAssignments(ctx context.Context, courseID, userID int64, role models.Role) (*dto.AssignmentListResponse, error) {
	var (
		progress []models.AssignmentProgress
		err      error
	)

	if role == models.RoleGrader {
		grader, gerr := s.graders.GetByCourseAndUser(ctx, courseID, userID)
		if gerr != nil {
			return nil, gerr
		}
		progress, err = s.assignments.ListProgressByGrader(ctx, courseID, grader.ID)
	} else {
		progress, err = s.assignments.ListProgressByCourse(ctx, courseID)
	}
	if err != nil {
		return nil, err
	}

	return &dto.AssignmentListResponse{Assignments: progress}, nil
}

// CreateAssignment registers an assignment in the course. In production the
// record appears with the first launch of the assignment block; this is the
// explicit variant for admins and tooling.
func (s *AssignmentService) CreateAssignment(ctx context.Context, courseID int64, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	assignment := &models.Assignment{
		CourseID:    courseID,
		EdxID:       req.EdxID,
		Name:        req.Name,
		DueDate:     req.DueDate,
		GracePeriod: req.GracePeriod,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// GetOrCreateByEdxID fetches the assignment for a launch context, creating
// it under the course on first sight.
func (s *AssignmentService) GetOrCreateByEdxID(ctx context.Context, courseID int64, edxID, name string) (*models.Assignment, error) {
	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		if assignments[i].EdxID == edxID {
			return &assignments[i], nil
		}
	}

	assignment := &models.Assignment{
		CourseID: courseID,
		EdxID:    edxID,
		Name:     name,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// GetAssignmentDetail returns one assignment with per-student submission
// status.
func (s *AssignmentService) GetAssignmentDetail(ctx context.Context, courseID, assignmentID int64) (*dto.AssignmentDetailResponse, error) {
	assignment, err := s.getCourseAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.submissions.StatusByAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AssignmentDetailResponse{
		Assignment: *assignment,
		Students:   make([]dto.AssignmentStudentStatus, 0, len(statuses)),
	}
	for _, st := range statuses {
		resp.Students = append(resp.Students, dto.AssignmentStudentStatus{
			UserID:    st.UserID,
			Username:  st.Username,
			FullName:  st.FullName,
			Submitted: st.Submitted,
			Graded:    st.Graded,
		})
	}
	return resp, nil
}

// UpdateAssignment changes an assignment's name, due date and grace period.
func (s *AssignmentService) UpdateAssignment(ctx context.Context, courseID, assignmentID int64, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.getCourseAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}

	assignment.Name = req.Name
	assignment.DueDate = req.DueDate
	assignment.GracePeriod = req.GracePeriod
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) getCourseAssignment(ctx context.Context, courseID, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.CourseID != courseID {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}
