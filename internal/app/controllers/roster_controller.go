package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/app/services"
	"github.com/emirhan/staffgrade/internal/middleware"
)

// RosterController handles the staff roster views
type RosterController struct {
	rosterService     *services.RosterService
	submissionService *services.SubmissionService
}

// NewRosterController creates a new RosterController
func NewRosterController(rosterService *services.RosterService, submissionService *services.SubmissionService) *RosterController {
	return &RosterController{
		rosterService:     rosterService,
		submissionService: submissionService,
	}
}

// GetStudents returns the course student roster
// @Summary List course students
// @Description Retrieves the student roster of the course with grader assignment and ungraded-submission counts. The filter narrows the rows: all, no_grader, has_grader or not_graded.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param filter query string false "Roster filter" Enums(all, no_grader, has_grader, not_graded)
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/students [get]
func (c *RosterController) GetStudents(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	filter, err := services.ParseRosterFilter(ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.rosterService.GetCourseRoster(ctx, courseID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roster,
		Timestamp: time.Now(),
	})
}

// GetGraderStudents returns the roster narrowed to one grader's students
// @Summary List a grader's students
// @Description Retrieves the roster rows of students assigned to the grader. The heading names the grader.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param graderId path int true "Grader ID"
// @Param filter query string false "Roster filter" Enums(all, no_grader, has_grader, not_graded)
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Grader not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/graders/{graderId}/students [get]
func (c *RosterController) GetGraderStudents(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	graderID, ok := parseIDParam(ctx, "graderId", "grader ID")
	if !ok {
		return
	}
	filter, err := services.ParseRosterFilter(ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.rosterService.GetGraderRoster(ctx, courseID, graderID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roster,
		Timestamp: time.Now(),
	})
}

// GetMyStudents returns the calling grader's own roster
// @Summary List own assigned students
// @Description Retrieves the roster rows of students assigned to the calling grader.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param filter query string false "Roster filter" Enums(all, no_grader, has_grader, not_graded)
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/my-students [get]
func (c *RosterController) GetMyStudents(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	filter, err := services.ParseRosterFilter(ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.rosterService.GetOwnRoster(ctx, courseID, middleware.SessionUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roster,
		Timestamp: time.Now(),
	})
}

// GetStudentDetail returns one student's per-assignment submission state
// @Summary Get student detail
// @Description Retrieves the staff view of one student: their submission state for every assignment of the course.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student detail retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/students/{studentId} [get]
func (c *RosterController) GetStudentDetail(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId", "student ID")
	if !ok {
		return
	}

	detail, err := c.submissionService.GetStudentDetail(ctx, courseID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// StudentsPage renders the HTML roster page with the filter radio group.
func (c *RosterController) StudentsPage(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	filter, err := services.ParseRosterFilter(ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.rosterService.GetCourseRoster(ctx, courseID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "roster.html", gin.H{
		"Heading": roster.Heading,
		"Filter":  roster.Filter,
		"Rows":    roster.Rows,
	})
}

// GraderStudentsPage renders the HTML roster page scoped to one grader.
func (c *RosterController) GraderStudentsPage(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	graderID, ok := parseIDParam(ctx, "graderId", "grader ID")
	if !ok {
		return
	}
	filter, err := services.ParseRosterFilter(ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.rosterService.GetGraderRoster(ctx, courseID, graderID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "roster.html", gin.H{
		"Heading": roster.Heading,
		"Filter":  roster.Filter,
		"Rows":    roster.Rows,
	})
}

// MyStudentsPage renders the HTML roster page for the calling grader.
func (c *RosterController) MyStudentsPage(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	filter, err := services.ParseRosterFilter(ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.rosterService.GetOwnRoster(ctx, courseID, middleware.SessionUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "roster.html", gin.H{
		"Heading": roster.Heading,
		"Filter":  roster.Filter,
		"Rows":    roster.Rows,
	})
}
