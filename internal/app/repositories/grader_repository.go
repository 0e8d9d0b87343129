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

// GraderRepository handles database operations for graders
type GraderRepository struct {
	db *pgxpool.Pool
}

// NewGraderRepository creates a new grader repository
func NewGraderRepository(db *pgxpool.Pool) *GraderRepository {
	return &GraderRepository{
		db: db,
	}
}

// graderStatusQuery selects grader rows with their user profile and the
// read-derived counts. The counts are computed per request rather than stored;
// submissions change too often for a denormalized counter to stay honest.
const graderStatusQuery = `
	SELECT g.id, g.course_id, g.user_id, g.max_students, g.created_at, g.updated_at,
		u.id, u.username, u.email, u.first_name, u.last_name,
		(SELECT COUNT(*) FROM students st WHERE st.grader_id = g.id) AS student_count,
		(SELECT COUNT(*)
			FROM submissions s
			JOIN assignments a ON a.id = s.assignment_id
			WHERE a.course_id = g.course_id
			AND s.graded_by_user_id = g.user_id
			AND s.graded) AS graded_count,
		(SELECT COUNT(*)
			FROM submissions s
			JOIN assignments a ON a.id = s.assignment_id
			JOIN students st ON st.user_id = s.student_user_id AND st.course_id = g.course_id
			WHERE a.course_id = g.course_id
			AND st.grader_id = g.id
			AND s.submitted AND NOT s.graded) AS not_graded_count
	FROM graders g
	JOIN users u ON u.id = g.user_id
`

func scanGraderStatus(row pgx.Row) (*models.GraderStatus, error) {
	var gs models.GraderStatus
	var user models.User
	err := row.Scan(
		&gs.ID, &gs.CourseID, &gs.UserID, &gs.MaxStudents, &gs.CreatedAt, &gs.UpdatedAt,
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&gs.StudentCount, &gs.GradedCount, &gs.NotGradedCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGraderNotFound
		}
		return nil, fmt.Errorf("error retrieving grader: %w", err)
	}
	gs.User = &user
	return &gs, nil
}

// GetByID retrieves a grader by ID, including the user profile
func (r *GraderRepository) GetByID(ctx context.Context, id int64) (*models.GraderStatus, error) {
	query := graderStatusQuery + ` WHERE g.id = $1`
	return scanGraderStatus(r.db.QueryRow(ctx, query, id))
}

// GetByCourseAndUser retrieves a course's grader record for a user
func (r *GraderRepository) GetByCourseAndUser(ctx context.Context, courseID, userID int64) (*models.GraderStatus, error) {
	query := graderStatusQuery + ` WHERE g.course_id = $1 AND g.user_id = $2`
	return scanGraderStatus(r.db.QueryRow(ctx, query, courseID, userID))
}

// ListStatusByCourse retrieves all graders of a course with their counts,
// ordered by display name.
func (r *GraderRepository) ListStatusByCourse(ctx context.Context, courseID int64) ([]models.GraderStatus, error) {
	query := graderStatusQuery + `
		WHERE g.course_id = $1
		ORDER BY u.last_name, u.first_name, u.username
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing graders: %w", err)
	}
	defer rows.Close()

	var graders []models.GraderStatus
	for rows.Next() {
		gs, err := scanGraderStatus(rows)
		if err != nil {
			return nil, err
		}
		graders = append(graders, *gs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating graders: %w", err)
	}

	return graders, nil
}

// Create creates a new grader record
func (r *GraderRepository) Create(ctx context.Context, grader *models.Grader) error {
	query := `
		INSERT INTO graders (course_id, user_id, max_students)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		grader.CourseID, grader.UserID, grader.MaxStudents,
	).Scan(&grader.ID, &grader.CreatedAt, &grader.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "graders_user_course_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating grader: %w", err)
	}

	return nil
}

// UpdateMaxStudents changes how many students the grader can accept
func (r *GraderRepository) UpdateMaxStudents(ctx context.Context, id int64, maxStudents int) error {
	query := `
		UPDATE graders
		SET max_students = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, maxStudents)
	if err != nil {
		return fmt.Errorf("error updating grader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGraderNotFound
	}

	return nil
}

// Delete removes a grader record. Assigned students fall back to unassigned
// through the schema's ON DELETE SET NULL.
func (r *GraderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM graders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGraderNotFound
	}
	return nil
}
