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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(&course.ID, &course.EdxID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT id, edx_id, created_at, updated_at FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

// GetByEdxID retrieves a course by its platform course id
func (r *CourseRepository) GetByEdxID(ctx context.Context, edxID string) (*models.Course, error) {
	query := `SELECT id, edx_id, created_at, updated_at FROM courses WHERE edx_id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, edxID))
}

// GetOrCreateByEdxID fetches a course by platform id, creating it on first
// launch.
func (r *CourseRepository) GetOrCreateByEdxID(ctx context.Context, edxID string) (*models.Course, error) {
	course, err := r.GetByEdxID(ctx, edxID)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO courses (edx_id)
		VALUES ($1)
		ON CONFLICT (edx_id) DO UPDATE SET updated_at = courses.updated_at
		RETURNING id, edx_id, created_at, updated_at
	`
	return scanCourse(r.db.QueryRow(ctx, query, edxID))
}

// AddAdmin records a user as a staff admin of a course. Adding twice is a no-op.
func (r *CourseRepository) AddAdmin(ctx context.Context, courseID, userID int64) error {
	query := `
		INSERT INTO course_admins (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, courseID, userID); err != nil {
		return fmt.Errorf("error adding course admin: %w", err)
	}
	return nil
}

// IsAdmin reports whether the user is a staff admin of the course
func (r *CourseRepository) IsAdmin(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM course_admins WHERE course_id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking course admin: %w", err)
	}
	return exists, nil
}

// HasGrader reports whether the user holds a grader record in the course
func (r *CourseRepository) HasGrader(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM graders WHERE course_id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking grader membership: %w", err)
	}
	return exists, nil
}

// HasStudent reports whether the user holds a student record in the course
// without also holding a grader record. Graders carry a student row for
// bookkeeping, so a bare student check would misclassify them.
func (r *CourseRepository) HasStudent(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM students st
			WHERE st.course_id = $1 AND st.user_id = $2
			AND NOT EXISTS (
				SELECT 1 FROM graders g
				WHERE g.course_id = st.course_id AND g.user_id = st.user_id
			)
		)
	`
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking student membership: %w", err)
	}
	return exists, nil
}
