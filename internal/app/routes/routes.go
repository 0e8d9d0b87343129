package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emirhan/staffgrade/internal/app/controllers"
	"github.com/emirhan/staffgrade/internal/app/models"
	"github.com/emirhan/staffgrade/internal/app/models/dto"
	"github.com/emirhan/staffgrade/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	rosterController *controllers.RosterController,
	graderController *controllers.GraderController,
	assignmentController *controllers.AssignmentController,
	submissionController *controllers.SubmissionController,
	authMiddleware *middleware.AuthMiddleware,
	devMode bool,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	// The development launch endpoint stands in for a real LTI launch and is
	// only mounted in development mode.
	if devMode {
		auth := v1.Group("/auth")
		{
			auth.POST("/dev-launch", authController.DevLaunch)
		}
	}

	// --- Authenticated course routes ---
	// Every session is scoped to the course it was launched into.
	course := v1.Group("/courses/:courseId")
	course.Use(authMiddleware.JWTAuth(), authMiddleware.CourseScope())
	{
		// Student roster (staff views)
		students := course.Group("/students")
		{
			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdmin.GET("", rosterController.GetStudents)
				studentsAdmin.PUT("/:studentId/grader", graderController.AssignGrader)
			}

			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleGrader))
			{
				studentsStaff.GET("/:studentId", rosterController.GetStudentDetail)
			}
		}

		// A grader's own roster
		myStudents := course.Group("/my-students")
		myStudents.Use(authMiddleware.RoleRequired(models.RoleGrader))
		{
			myStudents.GET("", rosterController.GetMyStudents)
		}

		// Grader roster management (admin only)
		graders := course.Group("/graders")
		graders.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			graders.GET("", graderController.GetGraders)
			graders.POST("", graderController.CreateGrader)
			graders.GET("/:graderId", graderController.GetGraderDetail)
			graders.PUT("/:graderId", graderController.UpdateGrader)
			graders.DELETE("/:graderId", graderController.DeleteGrader)
			graders.GET("/:graderId/students", rosterController.GetGraderStudents)
		}

		// Assignments
		assignments := course.Group("/assignments")
		{
			assignmentsStaff := assignments.Group("")
			assignmentsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleGrader))
			{
				assignmentsStaff.GET("", assignmentController.GetAssignments)
				assignmentsStaff.GET("/:assignmentId", assignmentController.GetAssignmentDetail)
				assignmentsStaff.GET("/:assignmentId/submissions.zip", assignmentController.DownloadSubmissions)
			}

			assignmentsAdmin := assignments.Group("")
			assignmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				assignmentsAdmin.POST("", assignmentController.CreateAssignment)
				assignmentsAdmin.PUT("/:assignmentId", assignmentController.UpdateAssignment)
			}

			assignmentsStudent := assignments.Group("")
			assignmentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				assignmentsStudent.GET("/:assignmentId/submission", submissionController.GetOwnSubmission)
				assignmentsStudent.POST("/:assignmentId/submission", submissionController.Submit)
			}
		}

		// Submissions
		submissions := course.Group("/submissions")
		{
			submissionsStaff := submissions.Group("")
			submissionsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleGrader))
			{
				submissionsStaff.POST("/:submissionId/grade", submissionController.Grade)
			}

			submissionsAdmin := submissions.Group("")
			submissionsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				submissionsAdmin.POST("/:submissionId/unsubmit", submissionController.Unsubmit)
			}

			// Access control on documents is per submission, in the service.
			submissions.GET("/:submissionId/document", submissionController.DownloadDocument)
		}
	}

	// --- HTML roster pages ---
	// Server-rendered pages for embedding in the course staff tab. The token
	// travels as a query parameter because an iframe cannot set headers.
	pages := router.Group("/courses/:courseId")
	pages.Use(authMiddleware.JWTAuth(), authMiddleware.CourseScope())
	{
		pagesAdmin := pages.Group("")
		pagesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			pagesAdmin.GET("/students", rosterController.StudentsPage)
			pagesAdmin.GET("/graders/:graderId/students", rosterController.GraderStudentsPage)
		}

		pagesGrader := pages.Group("")
		pagesGrader.Use(authMiddleware.RoleRequired(models.RoleGrader))
		{
			pagesGrader.GET("/my-students", rosterController.MyStudentsPage)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
