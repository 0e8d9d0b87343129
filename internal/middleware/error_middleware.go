package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
	"github.com/emirhan/staffgrade/internal/pkg/logger"
)

// HandleAPIError maps application errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.APIResponse{
			Error: dto.NewErrorDetail(code, message),
		})
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrGraderNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrSubmissionNotFound,
		apperrors.ErrUserNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "Resource not found")
	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		respond(403, dto.ErrorCodeForbidden, "Permission denied")
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		respond(401, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case apperrors.Is(err, apperrors.ErrTokenExpired):
		respond(401, dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		respond(401, dto.ErrorCodeInvalidToken, "Invalid token")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrInvalidGrade):
		respond(400, dto.ErrorCodeValidationFailed, "Validation failed")
	case apperrors.Is(err, apperrors.ErrBadRequest):
		respond(400, dto.ErrorCodeValidationFailed, "Bad request")
	case apperrors.Is(err, apperrors.ErrGraderFull):
		respond(409, dto.ErrorCodeResourceInvalid, "Grader has no available student slots")
	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrCourseAlreadyExists,
		apperrors.ErrAssignmentAlreadyExists):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
