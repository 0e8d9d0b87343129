package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/pkg/auth"
)

func newAuthFixture(courses *fakeCourseStore) (*AuthService, *fakeStudentEnroller, *fakeGraderCreator, *auth.JWTService) {
	enroller := &fakeStudentEnroller{}
	graders := &fakeGraderCreator{}
	courseSvc := NewCourseService(courses, enroller, graders)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "staffgrade.test",
	})
	return NewAuthService(&fakeUserStore{}, courseSvc, jwtSvc), enroller, graders, jwtSvc
}

func TestDevLaunchStudent(t *testing.T) {
	svc, enroller, _, jwtSvc := newAuthFixture(&fakeCourseStore{})

	resp, err := svc.DevLaunch(context.Background(), &dto.DevLaunchRequest{
		Username:    "student_ann",
		CourseEdxID: "course-v1:Demo",
		Role:        "student",
	})
	require.NoError(t, err)
	assert.Equal(t, "student", resp.Role)
	assert.NotZero(t, resp.CourseID)
	assert.Len(t, enroller.enrolled, 1)

	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "student_ann", claims.Username)
	assert.Equal(t, resp.CourseID, claims.CourseID)
	assert.Equal(t, "student", claims.Role)
}

func TestDevLaunchGraderCreatesBothRows(t *testing.T) {
	svc, enroller, graders, _ := newAuthFixture(&fakeCourseStore{})

	resp, err := svc.DevLaunch(context.Background(), &dto.DevLaunchRequest{
		Username:    "grader_grace",
		CourseEdxID: "course-v1:Demo",
		Role:        "grader",
	})
	require.NoError(t, err)
	assert.Equal(t, "grader", resp.Role)
	assert.Len(t, graders.created, 1)
	assert.Len(t, enroller.enrolled, 1)
}

// A launch without a role keeps whatever membership the user already has.
func TestDevLaunchRoleFallsBackToMembership(t *testing.T) {
	courses := &fakeCourseStore{
		graders: map[int64]bool{100: true},
	}
	svc, _, _, _ := newAuthFixture(courses)

	resp, err := svc.DevLaunch(context.Background(), &dto.DevLaunchRequest{
		Username:    "grader_grace",
		CourseEdxID: "course-v1:Demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "grader", resp.Role)
}

// A launch without a role and no prior membership defaults to student.
func TestDevLaunchRoleDefaultsToStudent(t *testing.T) {
	svc, enroller, _, _ := newAuthFixture(&fakeCourseStore{})

	resp, err := svc.DevLaunch(context.Background(), &dto.DevLaunchRequest{
		Username:    "newcomer",
		CourseEdxID: "course-v1:Demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "student", resp.Role)
	assert.Len(t, enroller.enrolled, 1)
}
