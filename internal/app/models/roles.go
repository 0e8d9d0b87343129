package models

// Role is a user's role within a single course. Roles come from the launch
// session and are always course-scoped: the same user may be an admin in one
// course and a student in another.
type Role string

const (
	// RoleStudent can view and submit their own assignments
	RoleStudent Role = "student"
	// RoleGrader can view the roster and grade assigned students' submissions
	RoleGrader Role = "grader"
	// RoleAdmin can manage graders and every submission in the course
	RoleAdmin Role = "admin"
	// RoleNone marks a user with no membership in the course
	RoleNone Role = ""
)

// Valid reports whether the role names one of the course roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleGrader, RoleAdmin:
		return true
	}
	return false
}
