package dto

// DevLaunchRequest is the development-only stand-in for an LTI launch: it
// names the user, the course context, and the role the session should carry.
// An omitted role falls back to the user's existing membership in the course,
// or student when there is none.
type DevLaunchRequest struct {
	Username    string `json:"username" binding:"required" example:"test_grader"`
	CourseEdxID string `json:"courseEdxId" binding:"required" example:"course-v1:Demo"`
	Role        string `json:"role" binding:"omitempty,oneof=student grader admin" example:"grader"`
}

// LaunchResponse carries the issued course session token.
type LaunchResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"43200"`
	CourseID  int64  `json:"courseId" example:"1"`
	Role      string `json:"role" example:"grader"`
}
