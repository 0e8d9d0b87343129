package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
	"github.com/emirhan/staffgrade/internal/pkg/email"
	"github.com/emirhan/staffgrade/internal/pkg/filestorage"
	"github.com/emirhan/staffgrade/internal/pkg/helpers"
	"github.com/emirhan/staffgrade/internal/pkg/logger"
)

type submissionStore interface {
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetOrCreate(ctx context.Context, assignmentID, studentUserID int64) (*models.Submission, error)
	MarkSubmitted(ctx context.Context, id int64, description, documentPath string, at time.Time) error
	ApplyGrade(ctx context.Context, id int64, grade int, feedback, graderDocument string, gradedByUserID int64, at time.Time) error
	Unsubmit(ctx context.Context, id int64) error
	NextNotGraded(ctx context.Context, assignmentID, excludeID int64) (*models.Submission, error)
	ListSubmittedByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error)
	ListByCourseAndStudent(ctx context.Context, courseID, studentUserID int64) ([]models.Submission, error)
}

type assignmentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
}

type courseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type studentLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByCourseAndUser(ctx context.Context, courseID, userID int64) (*models.Student, error)
}

// SubmissionService manages the submission lifecycle: student uploads,
// grading, resets, and document retrieval.
type SubmissionService struct {
	submissions submissionStore
	assignments assignmentGetter
	courses     courseGetter
	users       userGetter
	students    studentLookup
	graders     graderLookup
	storage     filestorage.FileStorage
	email       email.EmailService
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submissions submissionStore,
	assignments assignmentGetter,
	courses courseGetter,
	users userGetter,
	students studentLookup,
	graders graderLookup,
	storage filestorage.FileStorage,
	emailService email.EmailService,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		assignments: assignments,
		courses:     courses,
		users:       users,
		students:    students,
		graders:     graders,
		storage:     storage,
		email:       emailService,
	}
}

// IsPastDue reports whether the assignment no longer accepts uploads. The
// grace period extends the due date by whole minutes; no due date means
// uploads are always accepted.
func IsPastDue(assignment *models.Assignment, now time.Time) bool {
	if assignment.DueDate == nil {
		return false
	}
	deadline := assignment.DueDate.Add(time.Duration(assignment.GracePeriod) * time.Minute)
	return now.After(deadline)
}

// GetOwnSubmission returns the calling student's submission for an
// assignment, creating the empty record on first access.
func (s *SubmissionService) GetOwnSubmission(ctx context.Context, courseID, assignmentID, studentUserID int64) (*dto.SubmissionResponse, error) {
	if _, err := s.courseAssignment(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}

	submission, err := s.submissions.GetOrCreate(ctx, assignmentID, studentUserID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// Submit stores a student's document and marks the submission as submitted.
// Resubmitting before the deadline replaces the document and clears any
// earlier grade.
func (s *SubmissionService) Submit(ctx context.Context, courseID, assignmentID, studentUserID int64, req *dto.SubmitSubmissionRequest, document *multipart.FileHeader) (*dto.SubmissionResponse, error) {
	assignment, err := s.courseAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}
	if IsPastDue(assignment, time.Now().UTC()) {
		return nil, apperrors.NewBadRequestError("assignment is past due")
	}
	if document == nil {
		return nil, apperrors.NewBadRequestError("a document upload is required")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	student, err := s.users.GetByID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	relPath := helpers.StudentUploadPath(course.EdxID, assignment.EdxID, student.Username, assignment.Name, document.Filename)
	if _, err := s.storage.SaveFileAt(document, relPath); err != nil {
		return nil, fmt.Errorf("failed to store submission document: %w", err)
	}

	submission, err := s.submissions.GetOrCreate(ctx, assignmentID, studentUserID)
	if err != nil {
		return nil, err
	}
	if err := s.submissions.MarkSubmitted(ctx, submission.ID, req.Description, relPath, time.Now().UTC()); err != nil {
		return nil, err
	}

	submission, err = s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("submissionId", submission.ID).
		Int64("assignmentId", assignmentID).
		Str("student", student.Username).
		Msg("Submission received")

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// Grade stores a grader's verdict on a submitted submission and returns the
// next submission awaiting grading, if any. Graders may only grade their
// assigned students; admins may grade anyone. The graded student is notified
// by email on a best-effort basis.
func (s *SubmissionService) Grade(ctx context.Context, courseID, submissionID, actorUserID int64, role models.Role, req *dto.GradeSubmissionRequest, annotated *multipart.FileHeader) (*dto.GradeResult, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.courseAssignment(ctx, courseID, submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !submission.Submitted {
		return nil, apperrors.NewBadRequestError("submission has not been submitted yet")
	}
	if req.Grade == nil || *req.Grade < 0 || *req.Grade > 100 {
		return nil, apperrors.ErrInvalidGrade
	}
	if err := s.checkGradingPermission(ctx, courseID, submission.StudentUserID, actorUserID, role); err != nil {
		return nil, err
	}

	var graderDocPath string
	if annotated != nil {
		course, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		student := submission.Student
		graderDocPath = helpers.GraderUploadPath(course.EdxID, assignment.EdxID, student.Username, assignment.Name, annotated.Filename)
		if _, err := s.storage.SaveFileAt(annotated, graderDocPath); err != nil {
			return nil, fmt.Errorf("failed to store annotated document: %w", err)
		}
	}

	if err := s.submissions.ApplyGrade(ctx, submissionID, *req.Grade, req.Feedback, graderDocPath, actorUserID, time.Now().UTC()); err != nil {
		return nil, err
	}

	submission, err = s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	s.notifyGraded(submission, assignment)

	result := &dto.GradeResult{Submission: dto.NewSubmissionResponse(submission)}

	next, err := s.submissions.NextNotGraded(ctx, submission.AssignmentID, submissionID)
	if err == nil {
		result.Next = &dto.NextSubmissionRef{
			SubmissionID:    next.ID,
			StudentUserID:   next.StudentUserID,
			StudentUsername: next.Student.Username,
		}
	} else if !errors.Is(err, apperrors.ErrSubmissionNotFound) {
		return nil, err
	}

	return result, nil
}

// Unsubmit clears a submission's grade and submitted state so the student
// can resubmit.
func (s *SubmissionService) Unsubmit(ctx context.Context, courseID, submissionID int64) (*dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courseAssignment(ctx, courseID, submission.AssignmentID); err != nil {
		return nil, err
	}

	if err := s.submissions.Unsubmit(ctx, submissionID); err != nil {
		return nil, err
	}

	submission, err = s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// DocumentKind selects which stored document of a submission to open.
type DocumentKind string

const (
	// StudentDocument is the student's uploaded submission file.
	StudentDocument DocumentKind = "student"
	// GraderDocument is the grader's annotated file.
	GraderDocument DocumentKind = "grader"
)

// OpenDocument opens a submission document for download. Students may only
// open their own; graders their assigned students'; admins anyone's.
func (s *SubmissionService) OpenDocument(ctx context.Context, courseID, submissionID, actorUserID int64, role models.Role, kind DocumentKind) (io.ReadCloser, string, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.courseAssignment(ctx, courseID, submission.AssignmentID); err != nil {
		return nil, "", err
	}

	if role == models.RoleStudent {
		if submission.StudentUserID != actorUserID {
			return nil, "", apperrors.ErrPermissionDenied
		}
	} else if err := s.checkGradingPermission(ctx, courseID, submission.StudentUserID, actorUserID, role); err != nil {
		return nil, "", err
	}

	var relPath string
	switch kind {
	case StudentDocument:
		relPath = submission.StudentDocument
	case GraderDocument:
		relPath = submission.GraderDocument
	default:
		return nil, "", apperrors.NewBadRequestError("unknown document kind")
	}
	if relPath == "" {
		return nil, "", apperrors.NewResourceNotFoundError("no document uploaded")
	}

	reader, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", apperrors.NewResourceNotFoundError("document not found in storage")
	}
	return reader, filepath.Base(relPath), nil
}

// WriteSubmissionsZip streams a zip of every submitted document of an
// assignment. Files missing from storage are skipped rather than failing the
// whole archive.
func (s *SubmissionService) WriteSubmissionsZip(ctx context.Context, w io.Writer, courseID, assignmentID int64) error {
	if _, err := s.courseAssignment(ctx, courseID, assignmentID); err != nil {
		return err
	}

	submissions, err := s.submissions.ListSubmittedByAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for i := range submissions {
		sub := &submissions[i]
		if sub.StudentDocument == "" {
			continue
		}

		reader, err := s.storage.Open(sub.StudentDocument)
		if err != nil {
			logger.Warn().
				Int64("submissionId", sub.ID).
				Str("path", sub.StudentDocument).
				Msg("Submission document missing from storage, skipping")
			continue
		}

		entryName := fmt.Sprintf("%s-%s", sub.Student.Username, filepath.Base(sub.StudentDocument))
		entry, err := zw.Create(entryName)
		if err != nil {
			reader.Close()
			return fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := io.Copy(entry, reader); err != nil {
			reader.Close()
			return fmt.Errorf("failed to write zip entry: %w", err)
		}
		reader.Close()
	}

	return zw.Close()
}

// GetStudentDetail returns the staff view of one student: their submission
// state for every assignment of the course. Assignments the student never
// opened appear with an empty, unsubmitted submission.
func (s *SubmissionService) GetStudentDetail(ctx context.Context, courseID, studentID int64) (*dto.StudentDetailResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.CourseID != courseID {
		return nil, apperrors.ErrStudentNotFound
	}
	studentUserID := student.UserID
	user, err := s.users.GetByID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissions.ListByCourseAndStudent(ctx, courseID, studentUserID)
	if err != nil {
		return nil, err
	}

	byAssignment := make(map[int64]*models.Submission, len(submissions))
	for i := range submissions {
		byAssignment[submissions[i].AssignmentID] = &submissions[i]
	}

	resp := &dto.StudentDetailResponse{
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    user.FullName(),
		Email:       user.Email,
		Assignments: make([]dto.StudentAssignmentStatus, 0, len(assignments)),
	}
	for _, assignment := range assignments {
		submission := byAssignment[assignment.ID]
		if submission == nil {
			submission = &models.Submission{
				AssignmentID:  assignment.ID,
				StudentUserID: studentUserID,
			}
		}
		resp.Assignments = append(resp.Assignments, dto.StudentAssignmentStatus{
			Assignment: assignment,
			Submission: dto.NewSubmissionResponse(submission),
		})
	}
	return resp, nil
}

// courseAssignment loads an assignment and verifies it belongs to the course.
func (s *SubmissionService) courseAssignment(ctx context.Context, courseID, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.CourseID != courseID {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

// checkGradingPermission allows admins anywhere and graders only on their
// assigned students.
func (s *SubmissionService) checkGradingPermission(ctx context.Context, courseID, studentUserID, actorUserID int64, role models.Role) error {
	if role == models.RoleAdmin {
		return nil
	}
	if role != models.RoleGrader {
		return apperrors.ErrPermissionDenied
	}

	grader, err := s.graders.GetByCourseAndUser(ctx, courseID, actorUserID)
	if err != nil {
		return apperrors.ErrPermissionDenied
	}
	student, err := s.students.GetByCourseAndUser(ctx, courseID, studentUserID)
	if err != nil {
		return err
	}
	if student.GraderID == nil || *student.GraderID != grader.ID {
		return apperrors.NewForbiddenError("student is not assigned to this grader")
	}
	return nil
}

func (s *SubmissionService) notifyGraded(submission *models.Submission, assignment *models.Assignment) {
	student := submission.Student
	if student == nil || student.Email == "" {
		return
	}
	if err := s.email.SendGradedNotice(student.Email, student.FullName(), assignment.Name, submission.GradeDisplay()); err != nil {
		logger.Warn().Err(err).Int64("submissionId", submission.ID).Msg("Graded notice delivery failed")
	}
}
