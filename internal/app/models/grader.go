package models

import "time"

// Grader defines the grader model based on the 'graders' table. A grader is
// the intermediate between a Course and a User; unique per (user, course).
type Grader struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	MaxStudents int       `json:"maxStudents" db:"max_students" example:"10"` // How many students this grader can accept
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// GraderStatus is a grader row enriched with read-derived grading counts.
type GraderStatus struct {
	Grader
	StudentCount   int `json:"studentCount"`   // Students currently assigned to this grader
	GradedCount    int `json:"gradedCount"`    // Submissions this grader has graded
	NotGradedCount int `json:"notGradedCount"` // Submitted, ungraded submissions of assigned students
}

// AvailableStudentSlots returns how many more students this grader can accept.
func (g *GraderStatus) AvailableStudentSlots() int {
	return g.MaxStudents - g.StudentCount
}
