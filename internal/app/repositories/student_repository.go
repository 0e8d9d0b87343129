package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID, &student.CourseID, &student.UserID, &student.GraderID,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// GetByID retrieves a student record by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, course_id, user_id, grader_id, created_at, updated_at
		FROM students WHERE id = $1
	`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByCourseAndUser retrieves a course's student record for a user
func (r *StudentRepository) GetByCourseAndUser(ctx context.Context, courseID, userID int64) (*models.Student, error) {
	query := `
		SELECT id, course_id, user_id, grader_id, created_at, updated_at
		FROM students WHERE course_id = $1 AND user_id = $2
	`
	return scanStudent(r.db.QueryRow(ctx, query, courseID, userID))
}

// GetOrCreate fetches a course's student record for a user, creating it on
// first launch.
func (r *StudentRepository) GetOrCreate(ctx context.Context, courseID, userID int64) (*models.Student, error) {
	student, err := r.GetByCourseAndUser(ctx, courseID, userID)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO students (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, course_id) DO UPDATE SET updated_at = students.updated_at
		RETURNING id, course_id, user_id, grader_id, created_at, updated_at
	`
	return scanStudent(r.db.QueryRow(ctx, query, courseID, userID))
}

// AssignGrader sets or clears the student's grader. A nil graderID unassigns.
func (r *StudentRepository) AssignGrader(ctx context.Context, studentID int64, graderID *int64) error {
	query := `
		UPDATE students
		SET grader_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, studentID, graderID)
	if err != nil {
		return fmt.Errorf("error assigning grader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// rosterQuery selects one roster row per student of a course: the student's
// user profile, the assigned grader's identity when there is one, and the
// count of submitted-but-ungraded submissions. Grader columns come through a
// LEFT JOIN so an unassigned student still yields a row; the scan folds the
// NULLs into a nil RosterGrader.
const rosterQuery = `
	SELECT st.id, u.id, u.username, u.first_name, u.last_name, u.email,
		gu.id, gu.first_name, gu.last_name, gu.username,
		(SELECT COUNT(*)
			FROM submissions s
			JOIN assignments a ON a.id = s.assignment_id
			WHERE s.student_user_id = u.id
			AND a.course_id = st.course_id
			AND s.submitted AND NOT s.graded) AS not_graded_count
	FROM students st
	JOIN users u ON u.id = st.user_id
	LEFT JOIN graders g ON g.id = st.grader_id
	LEFT JOIN users gu ON gu.id = g.user_id
`

func (r *StudentRepository) queryRoster(ctx context.Context, query string, args ...interface{}) ([]models.RosterRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}
	defer rows.Close()

	var roster []models.RosterRow
	for rows.Next() {
		var row models.RosterRow
		var firstName, lastName string
		var graderUserID *int64
		var graderFirst, graderLast, graderUsername *string

		err := rows.Scan(
			&row.StudentID, &row.UserID, &row.Username, &firstName, &lastName, &row.Email,
			&graderUserID, &graderFirst, &graderLast, &graderUsername,
			&row.NotGradedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}

		row.FullName = displayName(firstName, lastName, row.Username)
		if graderUserID != nil {
			row.Grader = &models.RosterGrader{
				UserID:   *graderUserID,
				FullName: displayName(deref(graderFirst), deref(graderLast), deref(graderUsername)),
			}
		}

		roster = append(roster, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", err)
	}

	return roster, nil
}

// RosterByCourse retrieves the full student roster of a course, ordered by
// display name. Graders' own bookkeeping student rows are excluded.
func (r *StudentRepository) RosterByCourse(ctx context.Context, courseID int64) ([]models.RosterRow, error) {
	query := rosterQuery + `
		WHERE st.course_id = $1
		AND NOT EXISTS (
			SELECT 1 FROM graders gx
			WHERE gx.course_id = st.course_id AND gx.user_id = st.user_id
		)
		ORDER BY u.last_name, u.first_name, u.username
	`
	return r.queryRoster(ctx, query, courseID)
}

// RosterByGrader retrieves the roster narrowed to one grader's students.
func (r *StudentRepository) RosterByGrader(ctx context.Context, courseID, graderID int64) ([]models.RosterRow, error) {
	query := rosterQuery + `
		WHERE st.course_id = $1 AND st.grader_id = $2
		ORDER BY u.last_name, u.first_name, u.username
	`
	return r.queryRoster(ctx, query, courseID, graderID)
}

func displayName(firstName, lastName, username string) string {
	name := firstName
	if lastName != "" {
		if name != "" {
			name += " "
		}
		name += lastName
	}
	if name == "" {
		return username
	}
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
