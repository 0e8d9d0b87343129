package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
	}
}

// submissionQuery selects submission rows joined with the submitting student's
// user profile.
const submissionQuery = `
	SELECT s.id, s.assignment_id, s.student_user_id, s.graded_by_user_id,
		s.description, s.feedback, s.grade, s.submitted, s.graded,
		s.submitted_at, s.graded_at, s.student_document, s.grader_document,
		s.created_at, s.updated_at,
		u.id, u.username, u.email, u.first_name, u.last_name
	FROM submissions s
	JOIN users u ON u.id = s.student_user_id
`

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var s models.Submission
	var student models.User
	err := row.Scan(
		&s.ID, &s.AssignmentID, &s.StudentUserID, &s.GradedByUserID,
		&s.Description, &s.Feedback, &s.Grade, &s.Submitted, &s.Graded,
		&s.SubmittedAt, &s.GradedAt, &s.StudentDocument, &s.GraderDocument,
		&s.CreatedAt, &s.UpdatedAt,
		&student.ID, &student.Username, &student.Email, &student.FirstName, &student.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}
	s.Student = &student
	return &s, nil
}

// GetByID retrieves a submission by ID, including the student's profile
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := submissionQuery + ` WHERE s.id = $1`
	return scanSubmission(r.db.QueryRow(ctx, query, id))
}

// GetByAssignmentAndStudent retrieves a student's submission for an assignment
func (r *SubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentUserID int64) (*models.Submission, error) {
	query := submissionQuery + ` WHERE s.assignment_id = $1 AND s.student_user_id = $2`
	return scanSubmission(r.db.QueryRow(ctx, query, assignmentID, studentUserID))
}

// GetOrCreate fetches a student's submission for an assignment, creating the
// empty record on first access.
func (r *SubmissionRepository) GetOrCreate(ctx context.Context, assignmentID, studentUserID int64) (*models.Submission, error) {
	submission, err := r.GetByAssignmentAndStudent(ctx, assignmentID, studentUserID)
	if err == nil {
		return submission, nil
	}
	if !errors.Is(err, apperrors.ErrSubmissionNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO submissions (assignment_id, student_user_id)
		VALUES ($1, $2)
		ON CONFLICT (assignment_id, student_user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, assignmentID, studentUserID); err != nil {
		return nil, fmt.Errorf("error creating submission: %w", err)
	}

	return r.GetByAssignmentAndStudent(ctx, assignmentID, studentUserID)
}

// MarkSubmitted stores the student's upload and flips the submission into the
// submitted state. Resubmitting replaces the document and clears any earlier
// grade.
func (r *SubmissionRepository) MarkSubmitted(ctx context.Context, id int64, description, documentPath string, at time.Time) error {
	query := `
		UPDATE submissions
		SET description = $2, student_document = $3, submitted = TRUE, submitted_at = $4,
			graded = FALSE, graded_at = NULL, grade = NULL, graded_by_user_id = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, description, documentPath, at)
	if err != nil {
		return fmt.Errorf("error submitting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}

// ApplyGrade stores a grader's verdict. An empty graderDocument leaves any
// earlier annotated document in place.
func (r *SubmissionRepository) ApplyGrade(ctx context.Context, id int64, grade int, feedback, graderDocument string, gradedByUserID int64, at time.Time) error {
	query := `
		UPDATE submissions
		SET grade = $2, feedback = $3,
			grader_document = CASE WHEN $4 = '' THEN grader_document ELSE $4 END,
			graded = TRUE, graded_at = $5, graded_by_user_id = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, grade, feedback, graderDocument, at, gradedByUserID)
	if err != nil {
		return fmt.Errorf("error grading submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}

// Unsubmit clears the grade and the submitted state so the student can
// resubmit. The uploaded documents stay on disk until overwritten.
func (r *SubmissionRepository) Unsubmit(ctx context.Context, id int64) error {
	query := `
		UPDATE submissions
		SET submitted = FALSE, submitted_at = NULL,
			graded = FALSE, graded_at = NULL, grade = NULL, graded_by_user_id = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error unsubmitting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}

// NextNotGraded returns the oldest submitted-but-ungraded submission of an
// assignment, skipping the one just handled. Returns ErrSubmissionNotFound
// when the queue is empty.
func (r *SubmissionRepository) NextNotGraded(ctx context.Context, assignmentID, excludeID int64) (*models.Submission, error) {
	query := submissionQuery + `
		WHERE s.assignment_id = $1 AND s.id <> $2
		AND s.submitted AND NOT s.graded
		ORDER BY s.submitted_at, s.id
		LIMIT 1
	`
	return scanSubmission(r.db.QueryRow(ctx, query, assignmentID, excludeID))
}

// ListSubmittedByAssignment retrieves all submitted submissions of an
// assignment with student profiles, for the bulk document download.
func (r *SubmissionRepository) ListSubmittedByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	query := submissionQuery + `
		WHERE s.assignment_id = $1 AND s.submitted
		ORDER BY u.username
	`
	return r.querySubmissions(ctx, query, assignmentID)
}

// ListGradedByGrader retrieves the submissions a grader has graded within a
// course, newest first, paginated.
func (r *SubmissionRepository) ListGradedByGrader(ctx context.Context, courseID, graderUserID int64, offset uint64, limit int) ([]models.Submission, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE a.course_id = $1 AND s.graded_by_user_id = $2 AND s.graded
	`

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, courseID, graderUserID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting graded submissions: %w", err)
	}

	query := submissionQuery + `
		JOIN assignments a ON a.id = s.assignment_id
		WHERE a.course_id = $1 AND s.graded_by_user_id = $2 AND s.graded
		ORDER BY s.graded_at DESC, s.id DESC
		OFFSET $3 LIMIT $4
	`

	submissions, err := r.querySubmissions(ctx, query, courseID, graderUserID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

// ListByCourseAndStudent retrieves a student's submissions across a course's
// assignments, with the assignment populated on each row.
func (r *SubmissionRepository) ListByCourseAndStudent(ctx context.Context, courseID, studentUserID int64) ([]models.Submission, error) {
	query := `
		SELECT s.id, s.assignment_id, s.student_user_id, s.graded_by_user_id,
			s.description, s.feedback, s.grade, s.submitted, s.graded,
			s.submitted_at, s.graded_at, s.student_document, s.grader_document,
			s.created_at, s.updated_at,
			a.id, a.course_id, a.edx_id, a.name, a.due_date, a.grace_period, a.created_at, a.updated_at
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE a.course_id = $1 AND s.student_user_id = $2
		ORDER BY a.created_at, a.id
	`

	rows, err := r.db.Query(ctx, query, courseID, studentUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var s models.Submission
		var a models.Assignment
		err := rows.Scan(
			&s.ID, &s.AssignmentID, &s.StudentUserID, &s.GradedByUserID,
			&s.Description, &s.Feedback, &s.Grade, &s.Submitted, &s.Graded,
			&s.SubmittedAt, &s.GradedAt, &s.StudentDocument, &s.GraderDocument,
			&s.CreatedAt, &s.UpdatedAt,
			&a.ID, &a.CourseID, &a.EdxID, &a.Name, &a.DueDate, &a.GracePeriod,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		s.Assignment = &a
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}

// StatusByAssignment retrieves one row per enrolled student with whether they
// have submitted and been graded for the assignment. Graders' bookkeeping
// student rows are excluded, like the roster.
func (r *SubmissionRepository) StatusByAssignment(ctx context.Context, courseID, assignmentID int64) ([]models.StudentSubmissionStatus, error) {
	query := `
		SELECT u.id, u.username, u.first_name, u.last_name,
			COALESCE(s.submitted, FALSE), COALESCE(s.graded, FALSE)
		FROM students st
		JOIN users u ON u.id = st.user_id
		LEFT JOIN submissions s ON s.student_user_id = u.id AND s.assignment_id = $2
		WHERE st.course_id = $1
		AND NOT EXISTS (
			SELECT 1 FROM graders g
			WHERE g.course_id = st.course_id AND g.user_id = st.user_id
		)
		ORDER BY u.last_name, u.first_name, u.username
	`

	rows, err := r.db.Query(ctx, query, courseID, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing submission statuses: %w", err)
	}
	defer rows.Close()

	var statuses []models.StudentSubmissionStatus
	for rows.Next() {
		var st models.StudentSubmissionStatus
		var firstName, lastName string
		err := rows.Scan(&st.UserID, &st.Username, &firstName, &lastName, &st.Submitted, &st.Graded)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission status: %w", err)
		}
		st.FullName = displayName(firstName, lastName, st.Username)
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission statuses: %w", err)
	}

	return statuses, nil
}

func (r *SubmissionRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]models.Submission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}
