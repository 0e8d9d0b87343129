package models

// RosterGrader identifies the grader shown on a roster row.
type RosterGrader struct {
	UserID   int64  `json:"userId" example:"7"`
	FullName string `json:"fullName" example:"Grace Hall"`
}

// RosterRow is one student line of the staff roster: display name, grader
// (if any), email, and the count of submitted-but-ungraded submissions.
// Grader is a tagged optional: nil means no grader is assigned, including
// the case where a grader reference could not be resolved.
type RosterRow struct {
	StudentID      int64         `json:"studentId" example:"3"`
	UserID         int64         `json:"userId" example:"12"`
	Username       string        `json:"username" example:"student_ann"`
	FullName       string        `json:"fullName" example:"Ann Lee"`
	Email          string        `json:"email" example:"ann@school.edu"`
	Grader         *RosterGrader `json:"grader,omitempty"`
	NotGradedCount int           `json:"notGradedCount" example:"2"`
}

// GraderDisplay returns the grader cell text for this row.
func (r *RosterRow) GraderDisplay() string {
	if r.Grader == nil {
		return "(No Grader)"
	}
	return r.Grader.FullName
}

// HasGrader reports whether a grader is assigned to this row's student.
func (r *RosterRow) HasGrader() bool {
	return r.Grader != nil
}
