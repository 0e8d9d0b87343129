package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/app/services"
	"github.com/emirhan/staffgrade/internal/middleware"
)

// AssignmentController handles the staff assignment views
type AssignmentController struct {
	assignmentService *services.AssignmentService
	submissionService *services.SubmissionService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService, submissionService *services.SubmissionService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		submissionService: submissionService,
	}
}

// GetAssignments lists the course's assignments with grading progress
// @Summary List course assignments
// @Description Retrieves the course's assignments with submission counts. Admins see course-wide counts; graders see counts narrowed to their own students.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentListResponse} "Assignments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments [get]
func (c *AssignmentController) GetAssignments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}

	assignments, err := c.assignmentService.ListAssignments(ctx, courseID,
		middleware.SessionUserID(ctx), middleware.SessionRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      assignments,
		Timestamp: time.Now(),
	})
}

// CreateAssignment registers an assignment in the course
// @Summary Create an assignment
// @Description Registers an assignment block in the course with an optional due date and grace period.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateAssignmentRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=models.Assignment} "Assignment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Assignment already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      assignment,
		Timestamp: time.Now(),
	})
}

// GetAssignmentDetail returns one assignment with per-student status
// @Summary Get assignment detail
// @Description Retrieves one assignment with each enrolled student's submitted/graded status.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentDetailResponse} "Assignment detail retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments/{assignmentId} [get]
func (c *AssignmentController) GetAssignmentDetail(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId", "assignment ID")
	if !ok {
		return
	}

	detail, err := c.assignmentService.GetAssignmentDetail(ctx, courseID, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// UpdateAssignment changes an assignment's name, due date and grace period
// @Summary Update an assignment
// @Description Updates an assignment's display name, due date and grace period.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Param request body dto.CreateAssignmentRequest true "Updated assignment information"
// @Success 200 {object} dto.APIResponse{data=models.Assignment} "Assignment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments/{assignmentId} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId", "assignment ID")
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.assignmentService.UpdateAssignment(ctx, courseID, assignmentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      assignment,
		Timestamp: time.Now(),
	})
}

// DownloadSubmissions streams a zip of all submitted documents
// @Summary Download all submissions
// @Description Streams a zip archive containing every submitted document of the assignment.
// @Tags assignments
// @Produce application/zip
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {file} binary "Zip archive of submitted documents"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments/{assignmentId}/submissions.zip [get]
func (c *AssignmentController) DownloadSubmissions(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId", "assignment ID")
	if !ok {
		return
	}

	ctx.Header("Content-Type", "application/zip")
	ctx.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"assignment-%d-submissions.zip\"", assignmentID))

	if err := c.submissionService.WriteSubmissionsZip(ctx, ctx.Writer, courseID, assignmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
}
