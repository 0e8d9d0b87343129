package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/pkg/auth"
)

func testRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "staffgrade.test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/courses/:courseId", m.JWTAuth(), m.CourseScope())
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": SessionUserID(c), "role": string(SessionRole(c))})
	})
	group.GET("/admin-only", m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, jwtService
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthBearerHeader(t *testing.T) {
	router, jwtService := testRouter(t)
	token, _, err := jwtService.GenerateSessionToken(42, "student_ann", 7, "student")
	require.NoError(t, err)

	w := doRequest(router, "/courses/7/ping", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
}

// Document downloads and the HTML pages cannot set headers, so the token is
// also accepted as a query parameter.
func TestJWTAuthQueryToken(t *testing.T) {
	router, jwtService := testRouter(t)
	token, _, err := jwtService.GenerateSessionToken(42, "student_ann", 7, "student")
	require.NoError(t, err)

	w := doRequest(router, "/courses/7/ping?token="+token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMissingToken(t *testing.T) {
	router, _ := testRouter(t)

	w := doRequest(router, "/courses/7/ping", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router, _ := testRouter(t)

	w := doRequest(router, "/courses/7/ping", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router, _ := testRouter(t)
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:  "test-secret",
		SessionExp: -time.Minute,
	})
	token, _, err := expired.GenerateSessionToken(42, "student_ann", 7, "student")
	require.NoError(t, err)

	w := doRequest(router, "/courses/7/ping", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

// A session is scoped to the course it was launched into.
func TestCourseScopeMismatch(t *testing.T) {
	router, jwtService := testRouter(t)
	token, _, err := jwtService.GenerateSessionToken(42, "student_ann", 7, "student")
	require.NoError(t, err)

	w := doRequest(router, "/courses/8/ping", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := testRouter(t)

	adminToken, _, err := jwtService.GenerateSessionToken(1, "staff_admin", 7, "admin")
	require.NoError(t, err)
	w := doRequest(router, "/courses/7/admin-only", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	studentToken, _, err := jwtService.GenerateSessionToken(42, "student_ann", 7, "student")
	require.NoError(t, err)
	w = doRequest(router, "/courses/7/admin-only", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
