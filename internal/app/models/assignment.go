package models

import "time"

// Assignment defines the assignment model based on the 'assignments' table
type Assignment struct {
	ID          int64      `json:"id" db:"id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	EdxID       string     `json:"edxId" db:"edx_id" example:"block-v1:Demo+sga1"` // Platform assignment id (unique)
	Name        string     `json:"name" db:"name" example:"Essay 1"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`       // Pointer for potential NULL
	GracePeriod int        `json:"gracePeriod" db:"grace_period"`         // Minutes of leeway after the due date
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// AssignmentProgress is an assignment row enriched with read-derived
// submission counts, optionally narrowed to one grader's students.
type AssignmentProgress struct {
	Assignment
	GradedCount       int `json:"gradedCount"`       // Submitted and graded
	NotGradedCount    int `json:"notGradedCount"`    // Submitted, awaiting grading
	NotSubmittedCount int `json:"notSubmittedCount"` // Enrolled students without a submitted submission
}
