package models

// StudentSubmissionStatus is one student's submission state for a single
// assignment, as shown on the staff assignment detail view.
type StudentSubmissionStatus struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Submitted bool   `json:"submitted"`
	Graded    bool   `json:"graded"`
}
