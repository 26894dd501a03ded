package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/acadeval/appraisehub/internal/app/models"
	appRepos "github.com/acadeval/appraisehub/internal/app/repositories"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
	pkgAuth "github.com/acadeval/appraisehub/internal/pkg/auth"
)

// CreateDefaultData seeds the organizational baseline on startup: a college
// with two departments, one account per role, and a GLOBAL grading
// configuration. Every step tolerates already-existing rows so repeated
// startups are safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	collegeRepo := appRepos.NewCollegeRepository(dbPool)
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)
	configRepo := appRepos.NewGradingConfigRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	collegeID, err := ensureCollege(ctx, collegeRepo, "College of Engineering", "ENG")
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default college")
		finalErr = errors.Join(finalErr, err)
	}

	var csDeptID int64
	if collegeID > 0 {
		csDeptID, err = ensureDepartment(ctx, departmentRepo, collegeID, "Computer Science", "CS")
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating computer science department")
			finalErr = errors.Join(finalErr, err)
		}
		if _, err := ensureDepartment(ctx, departmentRepo, collegeID, "Electrical Engineering", "EE"); err != nil {
			lgr.Error().Err(err).Msg("Error creating electrical engineering department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	accounts := []struct {
		email     string
		firstName string
		lastName  string
		role      appModels.RoleType
		deptScope bool
		deanScope bool
	}{
		{"admin@appraisehub.edu", "System", "Administrator", appModels.RoleAdmin, false, false},
		{"dean.eng@appraisehub.edu", "Default", "Dean", appModels.RoleDean, false, true},
		{"hod.cs@appraisehub.edu", "Default", "Head", appModels.RoleHOD, true, false},
		{"instructor.cs@appraisehub.edu", "Default", "Instructor", appModels.RoleInstructor, true, false},
	}

	for _, account := range accounts {
		user := &appModels.User{
			Email:     account.email,
			FirstName: account.firstName,
			LastName:  account.lastName,
			Role:      account.role,
			IsActive:  true,
		}
		if account.deptScope && csDeptID > 0 {
			deptID := csDeptID
			user.DepartmentID = &deptID
		}
		if account.deanScope && collegeID > 0 {
			managedID := collegeID
			user.ManagedCollegeID = &managedID
		}

		if err := ensureUser(ctx, userRepo, user, "ChangeMe123!", lgr); err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := ensureGlobalConfig(ctx, configRepo, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default grading configuration")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished")
	return finalErr
}

// ensureCollege creates the college and returns its ID, resolving the ID of
// an already-existing college by code.
func ensureCollege(ctx context.Context, repo *appRepos.CollegeRepository, name, code string) (int64, error) {
	college := &appModels.College{Name: name, Code: code}
	err := repo.Create(ctx, college)
	if err == nil {
		return college.ID, nil
	}
	if !errors.Is(err, apperrors.ErrCollegeAlreadyExists) {
		return 0, err
	}

	colleges, err := repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, existing := range colleges {
		if existing.Code == code {
			return existing.ID, nil
		}
	}
	return 0, apperrors.ErrCollegeNotFound
}

// ensureDepartment creates the department and returns its ID, resolving the
// ID of an already-existing department by code.
func ensureDepartment(ctx context.Context, repo *appRepos.DepartmentRepository, collegeID int64, name, code string) (int64, error) {
	department := &appModels.Department{CollegeID: collegeID, Name: name, Code: code}
	err := repo.Create(ctx, department)
	if err == nil {
		return department.ID, nil
	}
	if !errors.Is(err, apperrors.ErrDepartmentExists) {
		return 0, err
	}

	departments, err := repo.GetAll(ctx, &collegeID)
	if err != nil {
		return 0, err
	}
	for _, existing := range departments {
		if existing.Code == code {
			return existing.ID, nil
		}
	}
	return 0, apperrors.ErrDepartmentNotFound
}

// ensureUser creates the user with a bcrypt hash of the given password if no
// account exists for the email yet.
func ensureUser(ctx context.Context, repo *appRepos.UserRepository, user *appModels.User, password string, lgr zerolog.Logger) error {
	_, err := repo.GetByEmail(ctx, user.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("Default user created")
	return nil
}

// ensureGlobalConfig installs the fallback grading configuration once.
func ensureGlobalConfig(ctx context.Context, repo *appRepos.GradingConfigRepository, lgr zerolog.Logger) error {
	candidates, err := repo.GetCandidates(ctx, 0)
	if err != nil {
		return err
	}
	for _, candidate := range candidates {
		if candidate.Scope == appModels.ScopeGlobal {
			return nil
		}
	}

	cfg := &appModels.GradingConfig{
		Scope:                   appModels.ScopeGlobal,
		ResearchWeight:          1,
		UniversityServiceWeight: 1,
		CommunityServiceWeight:  1,
		TeachingQualityWeight:   1,
		ServicePointsPerItem:    2,
		ServiceMaxPoints:        10,
		TeachingBands: []appModels.TeachingBand{
			{MinRatio: 0.9, Points: 20},
			{MinRatio: 0.75, Points: 15},
			{MinRatio: 0.5, Points: 10},
		},
		ResearchPointsMap: map[string]float64{
			"JOURNAL":    10,
			"CONFERENCE": 5,
			"BOOK":       8,
		},
	}

	if err := repo.UpsertGlobal(ctx, cfg); err != nil {
		return err
	}

	lgr.Info().Msg("Default global grading configuration created")
	return nil
}
