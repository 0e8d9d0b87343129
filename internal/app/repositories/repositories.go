package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	Users       *UserRepository
	Courses     *CourseRepository
	Graders     *GraderRepository
	Students    *StudentRepository
	Assignments *AssignmentRepository
	Submissions *SubmissionRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Courses:     NewCourseRepository(db),
		Graders:     NewGraderRepository(db),
		Students:    NewStudentRepository(db),
		Assignments: NewAssignmentRepository(db),
		Submissions: NewSubmissionRepository(db),
	}
}
