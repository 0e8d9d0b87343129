package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/app/services"
	"github.com/emirhan/staffgrade/internal/middleware"
)

// AuthController handles launch session operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// DevLaunch issues a course session token without a real LTI launch
// @Summary Development launch
// @Description Issues a course session token for the named user, course and role. Only available when the server runs in development mode.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.DevLaunchRequest true "Launch parameters"
// @Success 200 {object} dto.APIResponse{data=dto.LaunchResponse} "Session token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/dev-launch [post]
func (c *AuthController) DevLaunch(ctx *gin.Context) {
	var req dto.DevLaunchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid launch data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.DevLaunch(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
