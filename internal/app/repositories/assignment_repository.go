package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
	"github.com/emirhan/staffgrade/internal/pkg/dberrors"
)

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

const assignmentColumns = `id, course_id, edx_id, name, due_date, grace_period, created_at, updated_at`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var assignment models.Assignment
	err := row.Scan(
		&assignment.ID, &assignment.CourseID, &assignment.EdxID, &assignment.Name,
		&assignment.DueDate, &assignment.GracePeriod,
		&assignment.CreatedAt, &assignment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return &assignment, nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	return scanAssignment(r.db.QueryRow(ctx, query, id))
}

// GetByEdxID retrieves an assignment by its platform block id
func (r *AssignmentRepository) GetByEdxID(ctx context.Context, edxID string) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE edx_id = $1`
	return scanAssignment(r.db.QueryRow(ctx, query, edxID))
}

// Create creates a new assignment
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (course_id, edx_id, name, due_date, grace_period)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.CourseID, assignment.EdxID, assignment.Name,
		assignment.DueDate, assignment.GracePeriod,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAssignmentAlreadyExists
		}
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

// Update changes an assignment's display name, due date and grace period
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	query := `
		UPDATE assignments
		SET name = $2, due_date = $3, grace_period = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		assignment.ID, assignment.Name, assignment.DueDate, assignment.GracePeriod)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// ListProgressByCourse retrieves a course's assignments with course-wide
// submission counts. Enrollment for the not-submitted count excludes graders'
// bookkeeping student rows.
func (r *AssignmentRepository) ListProgressByCourse(ctx context.Context, courseID int64) ([]models.AssignmentProgress, error) {
	query := `
		SELECT ` + prefixedAssignmentColumns + `,
			(SELECT COUNT(*) FROM submissions s
				WHERE s.assignment_id = a.id AND s.submitted AND s.graded) AS graded_count,
			(SELECT COUNT(*) FROM submissions s
				WHERE s.assignment_id = a.id AND s.submitted AND NOT s.graded) AS not_graded_count,
			(SELECT COUNT(*) FROM students st
				WHERE st.course_id = a.course_id
				AND NOT EXISTS (
					SELECT 1 FROM graders g
					WHERE g.course_id = st.course_id AND g.user_id = st.user_id
				)
				AND NOT EXISTS (
					SELECT 1 FROM submissions s
					WHERE s.assignment_id = a.id AND s.student_user_id = st.user_id AND s.submitted
				)) AS not_submitted_count
		FROM assignments a
		WHERE a.course_id = $1
		ORDER BY a.created_at, a.id
	`
	return r.queryProgress(ctx, query, courseID)
}

// ListProgressByGrader retrieves a course's assignments with counts narrowed
// to the students assigned to one grader.
func (r *AssignmentRepository) ListProgressByGrader(ctx context.Context, courseID, graderID int64) ([]models.AssignmentProgress, error) {
	query := `
		SELECT ` + prefixedAssignmentColumns + `,
			(SELECT COUNT(*) FROM submissions s
				JOIN students st ON st.user_id = s.student_user_id AND st.course_id = a.course_id
				WHERE s.assignment_id = a.id AND st.grader_id = $2
				AND s.submitted AND s.graded) AS graded_count,
			(SELECT COUNT(*) FROM submissions s
				JOIN students st ON st.user_id = s.student_user_id AND st.course_id = a.course_id
				WHERE s.assignment_id = a.id AND st.grader_id = $2
				AND s.submitted AND NOT s.graded) AS not_graded_count,
			(SELECT COUNT(*) FROM students st
				WHERE st.course_id = a.course_id AND st.grader_id = $2
				AND NOT EXISTS (
					SELECT 1 FROM submissions s
					WHERE s.assignment_id = a.id AND s.student_user_id = st.user_id AND s.submitted
				)) AS not_submitted_count
		FROM assignments a
		WHERE a.course_id = $1
		ORDER BY a.created_at, a.id
	`
	return r.queryProgress(ctx, query, courseID, graderID)
}

const prefixedAssignmentColumns = `a.id, a.course_id, a.edx_id, a.name, a.due_date, a.grace_period, a.created_at, a.updated_at`

func (r *AssignmentRepository) queryProgress(ctx context.Context, query string, args ...interface{}) ([]models.AssignmentProgress, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.AssignmentProgress
	for rows.Next() {
		var ap models.AssignmentProgress
		err := rows.Scan(
			&ap.ID, &ap.CourseID, &ap.EdxID, &ap.Name, &ap.DueDate, &ap.GracePeriod,
			&ap.CreatedAt, &ap.UpdatedAt,
			&ap.GradedCount, &ap.NotGradedCount, &ap.NotSubmittedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// ListByCourse retrieves a course's assignments without counts
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE course_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
