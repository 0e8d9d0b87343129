package services

import (
	"context"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/auth"
)

// AuthService issues course session tokens for launches
type AuthService struct {
	users      userByUsername
	courseSvc  *CourseService
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(users userByUsername, courseSvc *CourseService, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		users:      users,
		courseSvc:  courseSvc,
		jwtService: jwtService,
	}
}

// DevLaunch is the development stand-in for an LTI launch. It materializes
// the user, the course, and the membership for the requested role, then
// issues a session token scoped to that course.
func (s *AuthService) DevLaunch(ctx context.Context, req *dto.DevLaunchRequest) (*dto.LaunchResponse, error) {
	user, err := s.users.GetOrCreateByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	course, err := s.courseSvc.GetOrCreateByEdxID(ctx, req.CourseEdxID)
	if err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if role == models.RoleNone {
		role, err = s.courseSvc.ResolveRole(ctx, course.ID, user.ID)
		if err != nil {
			return nil, err
		}
		if role == models.RoleNone {
			role = models.RoleStudent
		}
	}

	if err := s.courseSvc.EnsureMembership(ctx, course.ID, user.ID, role); err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateSessionToken(user.ID, user.Username, course.ID, string(role))
	if err != nil {
		return nil, err
	}

	return &dto.LaunchResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		CourseID:  course.ID,
		Role:      string(role),
	}, nil
}
