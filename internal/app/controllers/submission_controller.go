package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/app/services"
	"github.com/emirhan/staffgrade/internal/middleware"
)

// SubmissionController handles the submission lifecycle endpoints
type SubmissionController struct {
	submissionService *services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService *services.SubmissionService) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
	}
}

// GetOwnSubmission returns the calling student's submission state
// @Summary Get own submission
// @Description Retrieves the calling student's submission for the assignment, creating the empty record on first access.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments/{assignmentId}/submission [get]
func (c *SubmissionController) GetOwnSubmission(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId", "assignment ID")
	if !ok {
		return
	}

	submission, err := c.submissionService.GetOwnSubmission(ctx, courseID, assignmentID,
		middleware.SessionUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      submission,
		Timestamp: time.Now(),
	})
}

// Submit stores the calling student's document upload
// @Summary Submit an assignment
// @Description Stores the student's document and marks the submission as submitted. Resubmitting before the deadline replaces the document and clears any earlier grade.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param assignmentId path int true "Assignment ID"
// @Param description formData string false "Submission description"
// @Param document formData file true "Submission document"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission stored successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing document or past due"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/assignments/{assignmentId}/submission [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(ctx, "assignmentId", "assignment ID")
	if !ok {
		return
	}

	var req dto.SubmitSubmissionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid submission data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	document, err := ctx.FormFile("document")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A document upload is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.submissionService.Submit(ctx, courseID, assignmentID,
		middleware.SessionUserID(ctx), &req, document)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      submission,
		Timestamp: time.Now(),
	})
}

// Grade stores a grader's verdict on a submission
// @Summary Grade a submission
// @Description Stores the grade, feedback and optional annotated document, notifies the student, and returns the next submission awaiting grading.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param submissionId path int true "Submission ID"
// @Param grade formData int true "Grade (0-100)"
// @Param feedback formData string false "Feedback for the student"
// @Param annotated formData file false "Annotated document"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResult} "Submission graded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade or unsubmitted submission"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Student not assigned to this grader"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/submissions/{submissionId}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(ctx, "submissionId", "submission ID")
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The annotated document is optional.
	annotated, err := ctx.FormFile("annotated")
	if err != nil {
		annotated = nil
	}

	result, err := c.submissionService.Grade(ctx, courseID, submissionID,
		middleware.SessionUserID(ctx), middleware.SessionRole(ctx), &req, annotated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// Unsubmit resets a submission to the unsubmitted state
// @Summary Reset a submission
// @Description Clears the grade and submitted state so the student can resubmit.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param submissionId path int true "Submission ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission reset successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/submissions/{submissionId}/unsubmit [post]
func (c *SubmissionController) Unsubmit(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(ctx, "submissionId", "submission ID")
	if !ok {
		return
	}

	submission, err := c.submissionService.Unsubmit(ctx, courseID, submissionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      submission,
		Timestamp: time.Now(),
	})
}

// DownloadDocument streams a submission document
// @Summary Download a submission document
// @Description Streams the student's uploaded document, or the grader's annotated document with kind=grader. Students may only open their own documents.
// @Tags submissions
// @Produce application/octet-stream
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param submissionId path int true "Submission ID"
// @Param kind query string false "Document kind" Enums(student, grader) default(student)
// @Success 200 {file} binary "Document content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/submissions/{submissionId}/document [get]
func (c *SubmissionController) DownloadDocument(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course ID")
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(ctx, "submissionId", "submission ID")
	if !ok {
		return
	}

	kind := services.DocumentKind(ctx.DefaultQuery("kind", string(services.StudentDocument)))

	reader, filename, err := c.submissionService.OpenDocument(ctx, courseID, submissionID,
		middleware.SessionUserID(ctx), middleware.SessionRole(ctx), kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer reader.Close()

	ctx.Header("Content-Type", "application/octet-stream")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(ctx.Writer, reader); err != nil {
		ctx.Abort()
	}
}
