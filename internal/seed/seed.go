package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emirhan/staffgrade/internal/app/models"
	appRepos "github.com/emirhan/staffgrade/internal/app/repositories"
	"github.com/emirhan/staffgrade/internal/pkg/apperrors"
	"github.com/emirhan/staffgrade/internal/pkg/auth"
)

// DemoCourseEdxID is the platform id of the development demo course.
const DemoCourseEdxID = "course-v1:StaffGrade+Demo+2026"

type demoUser struct {
	username  string
	email     string
	firstName string
	lastName  string
}

// CreateDefaultData seeds a demo course with an admin, two graders and three
// students so a development instance is browsable right after launch.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating demo course data...")
	var finalErr error

	course, err := repos.Courses.GetOrCreateByEdxID(ctx, DemoCourseEdxID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo course")
		return err
	}

	ensureUser := func(u demoUser) *appModels.User {
		user, err := repos.Users.GetByUsername(ctx, u.username)
		if err == nil {
			return user
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error looking up demo user")
			finalErr = errors.Join(finalErr, err)
			return nil
		}

		hashed, err := auth.HashPassword("Demo123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing demo password")
			finalErr = errors.Join(finalErr, err)
			return nil
		}

		user = &appModels.User{
			Username:  u.username,
			Email:     u.email,
			Password:  hashed,
			FirstName: u.firstName,
			LastName:  u.lastName,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
			return nil
		}
		return user
	}

	// Admin
	if admin := ensureUser(demoUser{"staff_admin", "admin@staffgrade.app", "Course", "Admin"}); admin != nil {
		if err := repos.Courses.AddAdmin(ctx, course.ID, admin.ID); err != nil {
			lgr.Error().Err(err).Msg("Error adding demo admin")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Graders (each also carries a student row for bookkeeping)
	var firstGrader *appModels.Grader
	for _, u := range []demoUser{
		{"grader_grace", "grace@staffgrade.app", "Grace", "Hall"},
		{"grader_henry", "henry@staffgrade.app", "Henry", "Park"},
	} {
		user := ensureUser(u)
		if user == nil {
			continue
		}
		grader := &appModels.Grader{CourseID: course.ID, UserID: user.ID, MaxStudents: 10}
		if err := repos.Graders.Create(ctx, grader); err != nil {
			if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				lgr.Error().Err(err).Str("username", u.username).Msg("Error creating demo grader")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			existing, gerr := repos.Graders.GetByCourseAndUser(ctx, course.ID, user.ID)
			if gerr != nil {
				finalErr = errors.Join(finalErr, gerr)
				continue
			}
			grader = &existing.Grader
		}
		if firstGrader == nil {
			firstGrader = grader
		}
		if _, err := repos.Students.GetOrCreate(ctx, course.ID, user.ID); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Students; the first one is assigned to the first grader.
	for i, u := range []demoUser{
		{"student_ann", "ann@school.edu", "Ann", "Lee"},
		{"student_bob", "bob@school.edu", "Bob", "Reyes"},
		{"student_cam", "cam@school.edu", "Cam", "Diaz"},
	} {
		user := ensureUser(u)
		if user == nil {
			continue
		}
		student, err := repos.Students.GetOrCreate(ctx, course.ID, user.ID)
		if err != nil {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if i == 0 && firstGrader != nil && student.GraderID == nil {
			if err := repos.Students.AssignGrader(ctx, student.ID, &firstGrader.ID); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// A sample assignment
	assignment := &appModels.Assignment{
		CourseID: course.ID,
		EdxID:    "block-v1:StaffGrade+Demo+2026+sga1",
		Name:     "Essay 1",
	}
	if err := repos.Assignments.Create(ctx, assignment); err != nil &&
		!errors.Is(err, apperrors.ErrAssignmentAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo assignment")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Demo course data check/creation finished.")
	return finalErr
}
