package dto

import (
	"time"

	"github.com/emirhan/staffgrade/internal/app/models"
)

// CreateAssignmentRequest registers an assignment in a course.
type CreateAssignmentRequest struct {
	EdxID       string     `json:"edxId" binding:"required" example:"block-v1:Demo+sga1"`
	Name        string     `json:"name" binding:"required" example:"Essay 1"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	GracePeriod int        `json:"gracePeriod" binding:"omitempty,min=0" example:"60"`
}

// AssignmentListResponse lists a course's assignments with grading progress.
type AssignmentListResponse struct {
	Assignments []models.AssignmentProgress `json:"assignments"`
}

// AssignmentStudentStatus is one student line of the assignment detail view.
type AssignmentStudentStatus struct {
	UserID    int64  `json:"userId" example:"12"`
	Username  string `json:"username" example:"student_ann"`
	FullName  string `json:"fullName" example:"Ann Lee"`
	Submitted bool   `json:"submitted" example:"true"`
	Graded    bool   `json:"graded" example:"false"`
}

// AssignmentDetailResponse is the staff view of one assignment: per-student
// submission status.
type AssignmentDetailResponse struct {
	Assignment models.Assignment         `json:"assignment"`
	Students   []AssignmentStudentStatus `json:"students"`
}
