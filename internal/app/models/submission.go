package models

import (
	"fmt"
	"time"
)

// Submission defines the submission model based on the 'submissions' table.
// Unique per (assignment, student user); created lazily the first time the
// student or a staff member opens the assignment.
type Submission struct {
	ID              int64      `json:"id" db:"id"`
	AssignmentID    int64      `json:"assignmentId" db:"assignment_id"`
	StudentUserID   int64      `json:"studentUserId" db:"student_user_id"`
	GradedByUserID  *int64     `json:"gradedByUserId,omitempty" db:"graded_by_user_id"` // Pointer for potential NULL
	Description     string     `json:"description" db:"description"`
	Feedback        string     `json:"feedback" db:"feedback"`
	Grade           *int       `json:"grade,omitempty" db:"grade"` // 0-100, nil until graded
	Submitted       bool       `json:"submitted" db:"submitted"`
	Graded          bool       `json:"graded" db:"graded"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty" db:"submitted_at"` // UTC
	GradedAt        *time.Time `json:"gradedAt,omitempty" db:"graded_at"`       // UTC
	StudentDocument string     `json:"studentDocument,omitempty" db:"student_document"`
	GraderDocument  string     `json:"graderDocument,omitempty" db:"grader_document"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student    *User       `json:"student,omitempty"`
	GradedBy   *User       `json:"gradedBy,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// GradeDisplay returns the human-readable form of this submission's grade.
// A grade of zero is a real grade; only a missing grade reads as not graded.
func (s *Submission) GradeDisplay() string {
	if s.Grade == nil {
		return "(Not Graded)"
	}
	return fmt.Sprintf("%d/100 (%d%%)", *s.Grade, *s.Grade)
}
