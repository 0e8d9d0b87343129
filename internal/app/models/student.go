package models

import "time"

// Student defines the student model based on the 'students' table. A student
// is the intermediate between a Course and a User; unique per (user, course).
// GraderID is null until an admin assigns a grader and reverts to null when
// the grader is deleted.
type Student struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	GraderID  *int64    `json:"graderId,omitempty" db:"grader_id"` // Pointer for potential NULL
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User   *User   `json:"user,omitempty"`
	Grader *Grader `json:"grader,omitempty"`
}
