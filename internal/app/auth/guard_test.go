package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

func ptr(v int64) *int64 { return &v }

func TestEvaluatorForHOD(t *testing.T) {
	hod := models.Affiliation{UserID: 1, Role: models.RoleHOD, DepartmentID: ptr(5)}

	tests := []struct {
		name     string
		subject  models.Affiliation
		wantAuth bool
	}{
		{
			name:     "instructor in same department",
			subject:  models.Affiliation{UserID: 2, Role: models.RoleInstructor, DepartmentID: ptr(5)},
			wantAuth: true,
		},
		{
			name:     "instructor in other department",
			subject:  models.Affiliation{UserID: 2, Role: models.RoleInstructor, DepartmentID: ptr(6)},
			wantAuth: false,
		},
		{
			name:     "subject is another HOD",
			subject:  models.Affiliation{UserID: 2, Role: models.RoleHOD, DepartmentID: ptr(5)},
			wantAuth: false,
		},
		{
			name: "self evaluation denied even in same department",
			// The subject row carries INSTRUCTOR here on purpose; identity
			// wins over every other matching field.
			subject:  models.Affiliation{UserID: 1, Role: models.RoleInstructor, DepartmentID: ptr(5)},
			wantAuth: false,
		},
		{
			name:     "subject without department",
			subject:  models.Affiliation{UserID: 2, Role: models.RoleInstructor},
			wantAuth: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatorFor(hod, tt.subject)
			if got.Authorized != tt.wantAuth {
				t.Errorf("EvaluatorFor() authorized = %v, want %v", got.Authorized, tt.wantAuth)
			}
			if tt.wantAuth && got.EvaluatorRole != models.EvaluatorHOD {
				t.Errorf("EvaluatorFor() role = %v, want HOD", got.EvaluatorRole)
			}
		})
	}
}

func TestEvaluatorForDean(t *testing.T) {
	dean := models.Affiliation{UserID: 10, Role: models.RoleDean, ManagedCollegeID: ptr(2)}

	tests := []struct {
		name     string
		subject  models.Affiliation
		wantAuth bool
	}{
		{
			name:     "HOD in managed college",
			subject:  models.Affiliation{UserID: 20, Role: models.RoleHOD, DepartmentID: ptr(5), CollegeID: ptr(2)},
			wantAuth: true,
		},
		{
			name:     "HOD in other college",
			subject:  models.Affiliation{UserID: 20, Role: models.RoleHOD, DepartmentID: ptr(7), CollegeID: ptr(3)},
			wantAuth: false,
		},
		{
			name:     "instructor in managed college",
			subject:  models.Affiliation{UserID: 20, Role: models.RoleInstructor, DepartmentID: ptr(5), CollegeID: ptr(2)},
			wantAuth: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatorFor(dean, tt.subject)
			if got.Authorized != tt.wantAuth {
				t.Errorf("EvaluatorFor() authorized = %v, want %v", got.Authorized, tt.wantAuth)
			}
			if tt.wantAuth && got.EvaluatorRole != models.EvaluatorDean {
				t.Errorf("EvaluatorFor() role = %v, want DEAN", got.EvaluatorRole)
			}
		})
	}
}

func TestEvaluatorForDeanWithoutManagedCollege(t *testing.T) {
	dean := models.Affiliation{UserID: 10, Role: models.RoleDean}
	subject := models.Affiliation{UserID: 20, Role: models.RoleHOD, CollegeID: ptr(2)}

	if got := EvaluatorFor(dean, subject); got.Authorized {
		t.Error("EvaluatorFor() authorized dean with no managed college")
	}
}

func TestEvaluatorForOtherRoles(t *testing.T) {
	subject := models.Affiliation{UserID: 2, Role: models.RoleInstructor, DepartmentID: ptr(5)}

	for _, role := range []models.RoleType{models.RoleAdmin, models.RoleInstructor} {
		actor := models.Affiliation{UserID: 1, Role: role, DepartmentID: ptr(5)}
		if got := EvaluatorFor(actor, subject); got.Authorized {
			t.Errorf("EvaluatorFor() authorized role %s", role)
		}
	}
}

type fakeAppraisalReader struct {
	appraisals map[int64]*models.Appraisal
}

func (f *fakeAppraisalReader) GetByID(_ context.Context, id int64) (*models.Appraisal, error) {
	a, ok := f.appraisals[id]
	if !ok {
		return nil, apperrors.ErrAppraisalNotFound
	}
	return a, nil
}

type fakeAffiliationResolver struct {
	affiliations map[int64]*models.Affiliation
}

func (f *fakeAffiliationResolver) GetAffiliation(_ context.Context, userID int64) (*models.Affiliation, error) {
	aff, ok := f.affiliations[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return aff, nil
}

func TestAuthorizeEvaluator(t *testing.T) {
	guard := NewEvaluatorGuard(
		&fakeAppraisalReader{appraisals: map[int64]*models.Appraisal{
			100: {ID: 100, FacultyID: 2, Status: models.StatusNew},
		}},
		&fakeAffiliationResolver{affiliations: map[int64]*models.Affiliation{
			2: {UserID: 2, Role: models.RoleInstructor, DepartmentID: ptr(5)},
		}},
	)

	hod := models.Affiliation{UserID: 1, Role: models.RoleHOD, DepartmentID: ptr(5)}

	role, err := guard.AuthorizeEvaluator(context.Background(), 100, hod)
	if err != nil {
		t.Fatalf("AuthorizeEvaluator() error = %v", err)
	}
	if role != models.EvaluatorHOD {
		t.Errorf("AuthorizeEvaluator() role = %v, want HOD", role)
	}

	_, err = guard.AuthorizeEvaluator(context.Background(), 999, hod)
	if !errors.Is(err, apperrors.ErrAppraisalNotFound) {
		t.Errorf("AuthorizeEvaluator() error = %v, want ErrAppraisalNotFound", err)
	}

	outsider := models.Affiliation{UserID: 3, Role: models.RoleHOD, DepartmentID: ptr(9)}
	_, err = guard.AuthorizeEvaluator(context.Background(), 100, outsider)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("AuthorizeEvaluator() error = %v, want ErrPermissionDenied", err)
	}
}
