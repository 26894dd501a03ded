// Package auth decides who may act as an evaluator on an appraisal. The
// rule table lives in EvaluatorFor, a pure function over affiliations;
// EvaluatorGuard wraps it with the lookups a request needs.
package auth

import (
	"context"
	"fmt"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
	"github.com/acadeval/appraisehub/internal/pkg/logger"
)

// Decision is the outcome of an evaluator authorization check
type Decision struct {
	Authorized    bool
	EvaluatorRole models.EvaluatorRole
}

// EvaluatorFor applies the evaluator rules to an (actor, subject) pair.
// Rules in precedence order:
//   - HOD: same department, subject is an INSTRUCTOR, never themselves.
//   - DEAN: manages the college the subject's department belongs to and
//     the subject is an HOD.
//   - Any other role is never an evaluator through this path.
//
// Pure function; results must not be cached across requests because
// affiliations can change.
func EvaluatorFor(actor, subject models.Affiliation) Decision {
	switch actor.Role {
	case models.RoleHOD:
		if actor.DepartmentID == nil || subject.DepartmentID == nil {
			return Decision{}
		}
		if *actor.DepartmentID != *subject.DepartmentID {
			return Decision{}
		}
		if subject.Role != models.RoleInstructor {
			return Decision{}
		}
		if actor.UserID == subject.UserID {
			return Decision{}
		}
		return Decision{Authorized: true, EvaluatorRole: models.EvaluatorHOD}

	case models.RoleDean:
		if actor.ManagedCollegeID == nil || subject.CollegeID == nil {
			return Decision{}
		}
		if *actor.ManagedCollegeID != *subject.CollegeID {
			return Decision{}
		}
		if subject.Role != models.RoleHOD {
			return Decision{}
		}
		return Decision{Authorized: true, EvaluatorRole: models.EvaluatorDean}
	}

	return Decision{}
}

// AppraisalReader is the slice of appraisal lookups the guard needs
type AppraisalReader interface {
	GetByID(ctx context.Context, id int64) (*models.Appraisal, error)
}

// AffiliationResolver supplies the organizational facts for a user
type AffiliationResolver interface {
	GetAffiliation(ctx context.Context, userID int64) (*models.Affiliation, error)
}

// EvaluatorGuard authorizes evaluator actions against persisted appraisals
type EvaluatorGuard struct {
	appraisals   AppraisalReader
	affiliations AffiliationResolver
}

// NewEvaluatorGuard creates a new EvaluatorGuard
func NewEvaluatorGuard(appraisals AppraisalReader, affiliations AffiliationResolver) *EvaluatorGuard {
	return &EvaluatorGuard{
		appraisals:   appraisals,
		affiliations: affiliations,
	}
}

// AuthorizeEvaluator resolves the appraisal's subject and applies the rule
// table. Returns ErrAppraisalNotFound if the appraisal does not exist and
// ErrPermissionDenied when the actor is not an evaluator for it.
func (g *EvaluatorGuard) AuthorizeEvaluator(ctx context.Context, appraisalID int64, actor models.Affiliation) (models.EvaluatorRole, error) {
	appraisal, err := g.appraisals.GetByID(ctx, appraisalID)
	if err != nil {
		return "", err
	}

	subject, err := g.affiliations.GetAffiliation(ctx, appraisal.FacultyID)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", appraisal.FacultyID).Msg("Error resolving subject affiliation")
		return "", fmt.Errorf("failed to resolve subject affiliation: %w", err)
	}

	decision := EvaluatorFor(actor, *subject)
	if !decision.Authorized {
		return "", apperrors.ErrPermissionDenied
	}

	return decision.EvaluatorRole, nil
}
