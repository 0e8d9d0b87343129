package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/app/services"
	"github.com/emirhan/staffgrade/internal/middleware"
	"github.com/emirhan/staffgrade/internal/pkg/helpers"
)

// GraderController handles grader roster management
type GraderController struct {
	graderService *services.GraderService
}

// NewGraderController creates a new GraderController
func NewGraderController(graderService *services.GraderService) *GraderController {
	return &GraderController{
		graderService: graderService,
	}
}

// GetGraders returns the grader roster of the course
// @Summary List course graders
// @Description Retrieves all graders of the course with their student counts and grading progress.
// @Tags graders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.GraderListResponse} "Graders retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/graders [get]
func (c *GraderController) GetGraders(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}

	graders, err := c.graderService.ListGraders(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      graders,
		Timestamp: time.Now(),
	})
}

// CreateGrader promotes a user to grader of the course
// @Summary Create a grader
// @Description Promotes a user, by username, to grader of the course. The user record is created when the username has never launched before.
// @Tags graders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateGraderRequest true "Grader information"
// @Success 201 {object} dto.APIResponse{data=dto.GraderStatusResponse} "Grader created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "User is already a grader"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/graders [post]
func (c *GraderController) CreateGrader(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}

	var req dto.CreateGraderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grader data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grader, err := c.graderService.CreateGrader(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      grader,
		Timestamp: time.Now(),
	})
}

// GetGraderDetail returns one grader's profile and graded submissions
// @Summary Get grader detail
// @Description Retrieves one grader's profile, counts, and the submissions they have graded, paginated.
// @Tags graders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param graderId path int true "Grader ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.GraderDetailResponse} "Grader detail retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Grader not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/graders/{graderId} [get]
func (c *GraderController) GetGraderDetail(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	graderID, ok := parseIDParam(ctx, "graderId", "grader ID")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	detail, err := c.graderService.GetGraderDetail(ctx, courseID, graderID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// UpdateGrader changes a grader's student capacity
// @Summary Update a grader
// @Description Changes how many students the grader can accept.
// @Tags graders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param graderId path int true "Grader ID"
// @Param request body dto.CreateGraderRequest true "Updated grader information"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grader updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Grader not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/graders/{graderId} [put]
func (c *GraderController) UpdateGrader(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	graderID, ok := parseIDParam(ctx, "graderId", "grader ID")
	if !ok {
		return
	}

	var req struct {
		MaxStudents int `json:"maxStudents" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grader data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.graderService.UpdateMaxStudents(ctx, courseID, graderID, req.MaxStudents); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Grader updated"},
		Timestamp: time.Now(),
	})
}

// DeleteGrader removes a grader from the course
// @Summary Delete a grader
// @Description Removes a grader from the course. Their assigned students become unassigned.
// @Tags graders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param graderId path int true "Grader ID"
// @Success 204 "Grader deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Grader not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/graders/{graderId} [delete]
func (c *GraderController) DeleteGrader(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	graderID, ok := parseIDParam(ctx, "graderId", "grader ID")
	if !ok {
		return
	}

	if err := c.graderService.DeleteGrader(ctx, courseID, graderID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Timestamp: time.Now(),
	})
}

// AssignGrader sets or clears a student's grader
// @Summary Assign a student's grader
// @Description Assigns the student to the grader, or unassigns with a null graderId. Assigning checks the grader's remaining capacity.
// @Tags graders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.AssignGraderRequest true "Grader assignment"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student or grader not found"
// @Failure 409 {object} dto.ErrorResponse "Grader has no available student slots"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/students/{studentId}/grader [put]
func (c *GraderController) AssignGrader(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId", "student ID")
	if !ok {
		return
	}

	var req dto.AssignGraderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.graderService.AssignStudent(ctx, courseID, studentID, req.GraderID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Grader assignment updated"},
		Timestamp: time.Now(),
	})
}
