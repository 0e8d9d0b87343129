package dto

import (
	"time"

	"github.com/emirhan/staffgrade/internal/app/models"
)

// GradeSubmissionRequest carries a grader's verdict on a submission. The
// document, if any, arrives as a multipart file alongside this form.
type GradeSubmissionRequest struct {
	Feedback string `form:"feedback" example:"Good structure, weak conclusion"`
	Grade    *int   `form:"grade" binding:"required,min=0,max=100" example:"85"`
}

// SubmitSubmissionRequest carries a student's submission form. The document
// arrives as a multipart file alongside this form.
type SubmitSubmissionRequest struct {
	Description string `form:"description" example:"Draft of my essay"`
}

// SubmissionResponse is one submission with its display fields resolved.
type SubmissionResponse struct {
	ID              int64      `json:"id"`
	AssignmentID    int64      `json:"assignmentId"`
	StudentUserID   int64      `json:"studentUserId"`
	StudentName     string     `json:"studentName,omitempty"`
	Description     string     `json:"description,omitempty"`
	Feedback        string     `json:"feedback,omitempty"`
	Grade           *int       `json:"grade,omitempty"`
	GradeDisplay    string     `json:"gradeDisplay" example:"85/100 (85%)"`
	Submitted       bool       `json:"submitted"`
	Graded          bool       `json:"graded"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	GradedAt        *time.Time `json:"gradedAt,omitempty"`
	StudentDocument string     `json:"studentDocument,omitempty"`
	GraderDocument  string     `json:"graderDocument,omitempty"`
}

// NewSubmissionResponse maps a submission model onto the response shape.
func NewSubmissionResponse(s *models.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:              s.ID,
		AssignmentID:    s.AssignmentID,
		StudentUserID:   s.StudentUserID,
		Description:     s.Description,
		Feedback:        s.Feedback,
		Grade:           s.Grade,
		GradeDisplay:    s.GradeDisplay(),
		Submitted:       s.Submitted,
		Graded:          s.Graded,
		SubmittedAt:     s.SubmittedAt,
		GradedAt:        s.GradedAt,
		StudentDocument: s.StudentDocument,
		GraderDocument:  s.GraderDocument,
	}
	if s.Student != nil {
		resp.StudentName = s.Student.FullName()
	}
	return resp
}

// GradeResult is returned after grading: the stored submission plus a
// reference to the next submitted-but-ungraded submission, for the grading
// flow's "next" link.
type GradeResult struct {
	Submission SubmissionResponse `json:"submission"`
	Next       *NextSubmissionRef `json:"next,omitempty"`
}

// NextSubmissionRef points at the next submission awaiting grading.
type NextSubmissionRef struct {
	SubmissionID    int64  `json:"submissionId"`
	StudentUserID   int64  `json:"studentUserId"`
	StudentUsername string `json:"studentUsername"`
}

// StudentAssignmentStatus is one assignment line of the student detail view.
type StudentAssignmentStatus struct {
	Assignment models.Assignment  `json:"assignment"`
	Submission SubmissionResponse `json:"submission"`
}

// StudentDetailResponse is the staff view of one student: per-assignment
// submission state.
type StudentDetailResponse struct {
	UserID      int64                     `json:"userId"`
	Username    string                    `json:"username"`
	FullName    string                    `json:"fullName"`
	Email       string                    `json:"email"`
	Assignments []StudentAssignmentStatus `json:"assignments"`
}

// GraderDetailResponse is the staff view of one grader: profile plus the
// submissions they have graded.
type GraderDetailResponse struct {
	Grader     GraderStatusResponse `json:"grader"`
	Graded     []SubmissionResponse `json:"graded"`
	Pagination PaginationInfo       `json:"pagination"`
}
