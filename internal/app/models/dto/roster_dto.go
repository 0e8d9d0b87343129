package dto

import "github.com/emirhan/staffgrade/internal/app/models"

// RosterResponse is the student roster for a course, optionally narrowed to
// one grader's students and to one display filter.
type RosterResponse struct {
	Heading string             `json:"heading" example:"Student List (All)"`
	Filter  string             `json:"filter" example:"all"`
	Rows    []models.RosterRow `json:"rows"`
}

// GraderListResponse is the grader roster for a course.
type GraderListResponse struct {
	Graders []GraderStatusResponse `json:"graders"`
}

// GraderStatusResponse is one grader line of the grader roster.
type GraderStatusResponse struct {
	ID                    int64  `json:"id" example:"2"`
	UserID                int64  `json:"userId" example:"7"`
	FullName              string `json:"fullName" example:"Grace Hall"`
	Email                 string `json:"email" example:"grace@school.edu"`
	MaxStudents           int    `json:"maxStudents" example:"10"`
	StudentCount          int    `json:"studentCount" example:"4"`
	GradedCount           int    `json:"gradedCount" example:"12"`
	NotGradedCount        int    `json:"notGradedCount" example:"3"`
	AvailableStudentSlots int    `json:"availableStudentSlots" example:"6"`
}

// CreateGraderRequest promotes a course user to grader.
type CreateGraderRequest struct {
	Username    string `json:"username" binding:"required" example:"staff_bob"`
	MaxStudents int    `json:"maxStudents" binding:"omitempty,min=1" example:"10"`
}

// AssignGraderRequest assigns (or, with a null graderId, unassigns) a
// student's grader.
type AssignGraderRequest struct {
	GraderID *int64 `json:"graderId" example:"2"`
}
