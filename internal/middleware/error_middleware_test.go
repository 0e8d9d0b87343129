package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "student not found", err: apperrors.ErrStudentNotFound, wantStatus: 404, wantCode: "RES_001"},
		{name: "grader not found", err: apperrors.ErrGraderNotFound, wantStatus: 404, wantCode: "RES_001"},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: 403, wantCode: "AUTH_006"},
		{name: "wrapped forbidden", err: apperrors.NewForbiddenError("student is not assigned to this grader"), wantStatus: 403, wantCode: "AUTH_006"},
		{name: "invalid grade", err: apperrors.ErrInvalidGrade, wantStatus: 400, wantCode: "VAL_001"},
		{name: "bad request", err: apperrors.NewBadRequestError("unknown filter"), wantStatus: 400, wantCode: "VAL_001"},
		{name: "grader full", err: apperrors.ErrGraderFull, wantStatus: 409, wantCode: "RES_003"},
		{name: "conflict", err: apperrors.NewConflictError("user is already a grader in this course"), wantStatus: 409, wantCode: "RES_002"},
		{name: "unknown error", err: errors.New("boom"), wantStatus: 500, wantCode: "SRV_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

// The message carried by a wrapped error surfaces in the envelope.
func TestHandleAPIErrorCustomMessage(t *testing.T) {
	w := handleError(t, apperrors.NewBadRequestError("unknown filter: bogus"))
	assert.Contains(t, w.Body.String(), "unknown filter: bogus")
}
