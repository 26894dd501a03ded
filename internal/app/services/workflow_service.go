package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/auth"
	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/scoring"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

// WorkflowService owns the appraisal state machine. Every mutation passes
// through here: evaluator saves and sends, subject approval and appeal.
type WorkflowService struct {
	appraisals  AppraisalStore
	evaluations EvaluationStore
	signatures  SignatureStore
	cycles      CycleStore
	users       AffiliationStore
	guard       *auth.EvaluatorGuard
	cache       CacheInvalidator
	logger      zerolog.Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	appraisals AppraisalStore,
	evaluations EvaluationStore,
	signatures SignatureStore,
	cycles CycleStore,
	users AffiliationStore,
	guard *auth.EvaluatorGuard,
	cache CacheInvalidator,
	logger zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		appraisals:  appraisals,
		evaluations: evaluations,
		signatures:  signatures,
		cycles:      cycles,
		users:       users,
		guard:       guard,
		cache:       cache,
		logger:      logger,
	}
}

// MyAppraisal returns the caller's appraisal for the active cycle, creating
// it with status 'new' on first access.
func (s *WorkflowService) MyAppraisal(ctx context.Context, facultyID int64) (*models.Appraisal, []*models.Signature, error) {
	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	appraisal, err := s.appraisals.GetOrCreate(ctx, facultyID, cycle.ID)
	if err != nil {
		return nil, nil, err
	}

	signatures, err := s.signatures.ListByAppraisal(ctx, appraisal.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("appraisalID", appraisal.ID).Msg("Error loading signatures")
		signatures = nil
	}

	return appraisal, signatures, nil
}

// SaveEvaluation records an evaluator's scored sections and recalculates the
// appraisal total. A save against a 'new' appraisal promotes it to 'sent'.
func (s *WorkflowService) SaveEvaluation(ctx context.Context, actor models.Affiliation, appraisalID int64, req *dto.SaveEvaluationRequest) (*models.Evaluation, error) {
	role, err := s.guard.AuthorizeEvaluator(ctx, appraisalID, actor)
	if err != nil {
		return nil, err
	}

	appraisal, err := s.appraisals.GetByID(ctx, appraisalID)
	if err != nil {
		return nil, err
	}
	if appraisal.Status.Terminal() {
		return nil, apperrors.ErrNotActionable
	}

	ev, err := s.evaluations.GetByAppraisalAndRole(ctx, appraisalID, role)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEvaluationNotFound) {
			return nil, err
		}
		ev = &models.Evaluation{
			AppraisalID:   appraisalID,
			EvaluatorRole: role,
		}
	}
	ev.EvaluatorID = actor.UserID

	if req.Performance != nil {
		ev.ResearchPts = req.Performance.ResearchPts
		ev.UniversityServicePts = req.Performance.UniversityServicePts
		ev.CommunityServicePts = req.Performance.CommunityServicePts
		ev.TeachingQualityPts = req.Performance.TeachingQualityPts
		total := req.Performance.ResearchPts + req.Performance.UniversityServicePts +
			req.Performance.CommunityServicePts + req.Performance.TeachingQualityPts
		ev.PerformancePts = &total
	}

	if req.Capabilities != nil {
		ev.Rubric.Capabilities = &models.CapabilitiesRubric{
			Total: req.Capabilities.Total,
			Items: req.Capabilities.Items,
		}
		ev.CapabilitiesPts = &req.Capabilities.Total
	}

	if err := s.evaluations.Upsert(ctx, ev); err != nil {
		return nil, err
	}

	if err := s.RecalculateTotal(ctx, appraisalID, role); err != nil {
		return nil, err
	}

	return ev, nil
}

// RecalculateTotal reads the role's evaluation, aggregates it and writes the
// appraisal total. No-op when no evaluation exists yet for that role. As a
// side effect of the first save, a 'new' appraisal is promoted to 'sent' by
// the score write.
func (s *WorkflowService) RecalculateTotal(ctx context.Context, appraisalID int64, role models.EvaluatorRole) error {
	ev, err := s.evaluations.GetByAppraisalAndRole(ctx, appraisalID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrEvaluationNotFound) {
			return nil
		}
		return err
	}

	total := scoring.ComputeTotal(ev)
	return s.appraisals.SaveScores(ctx, appraisalID, scoring.CategoryScores(ev), total)
}

// Send submits the evaluator's completed evaluation, moving the appraisal to
// 'sent'. Both evaluation sections must have been scored.
func (s *WorkflowService) Send(ctx context.Context, actor models.Affiliation, appraisalID int64) error {
	role, err := s.guard.AuthorizeEvaluator(ctx, appraisalID, actor)
	if err != nil {
		return err
	}

	ev, err := s.evaluations.GetByAppraisalAndRole(ctx, appraisalID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrEvaluationNotFound) {
			return apperrors.ErrIncompleteEvaluation
		}
		return err
	}
	if !ev.SectionsComplete() {
		return apperrors.ErrIncompleteEvaluation
	}

	if err := s.appraisals.MarkSent(ctx, appraisalID); err != nil {
		return err
	}

	s.cache.Invalidate(fmt.Sprintf("/review/%d", appraisalID))

	s.logger.Info().Int64("appraisalID", appraisalID).Str("evaluatorRole", string(role)).Msg("Appraisal sent")

	return nil
}

// Approve completes the caller's own sent appraisal. A Signature row is
// appended best-effort: a failed audit write is logged but does not block
// the approval.
func (s *WorkflowService) Approve(ctx context.Context, actingUserID, appraisalID int64) error {
	appraisal, err := s.appraisals.GetByID(ctx, appraisalID)
	if err != nil {
		return err
	}

	if appraisal.FacultyID != actingUserID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.appraisals.Transition(ctx, appraisalID, models.StatusSent, models.StatusComplete); err != nil {
		return err
	}

	role := models.RoleInstructor
	if aff, err := s.users.GetAffiliation(ctx, actingUserID); err == nil {
		role = aff.Role
	}

	sig := &models.Signature{
		AppraisalID: appraisalID,
		UserID:      actingUserID,
		Role:        role,
		Note:        "Approved",
	}
	if err := s.signatures.Append(ctx, sig); err != nil {
		s.logger.Warn().Err(err).Int64("appraisalID", appraisalID).Msg("Failed to append approval signature")
	}

	s.logger.Info().Int64("appraisalID", appraisalID).Int64("facultyID", actingUserID).Msg("Appraisal approved")

	return nil
}

// Appeal disputes the caller's sent appraisal in the active cycle. The
// status change to 'returned' and the appeal record commit atomically.
func (s *WorkflowService) Appeal(ctx context.Context, actingUserID int64, message string) error {
	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		return err
	}

	appraisal, err := s.appraisals.GetByFacultyAndCycle(ctx, actingUserID, cycle.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAppraisalNotFound) {
			return apperrors.ErrNotActionable
		}
		return err
	}

	if err := s.appraisals.ReturnWithAppeal(ctx, appraisal.ID, actingUserID, message); err != nil {
		return err
	}

	s.logger.Info().Int64("appraisalID", appraisal.ID).Int64("facultyID", actingUserID).Msg("Appraisal appealed")

	return nil
}

// GetReview returns the appraisal together with the acting evaluator's own
// evaluation, for the evaluator's review screen.
func (s *WorkflowService) GetReview(ctx context.Context, actor models.Affiliation, appraisalID int64) (*models.Appraisal, *models.Evaluation, error) {
	role, err := s.guard.AuthorizeEvaluator(ctx, appraisalID, actor)
	if err != nil {
		return nil, nil, err
	}

	appraisal, err := s.appraisals.GetByID(ctx, appraisalID)
	if err != nil {
		return nil, nil, err
	}

	ev, err := s.evaluations.GetByAppraisalAndRole(ctx, appraisalID, role)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEvaluationNotFound) {
			return nil, nil, err
		}
		ev = nil
	}

	return appraisal, ev, nil
}

// ListEvaluatees returns the appraisals the actor is responsible for
// evaluating in the active cycle: an HOD sees the instructors of their
// department, a DEAN sees the HODs of their college.
func (s *WorkflowService) ListEvaluatees(ctx context.Context, actor models.Affiliation) ([]*models.Appraisal, error) {
	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleHOD:
		if actor.DepartmentID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		return s.appraisals.ListForHOD(ctx, cycle.ID, *actor.DepartmentID, actor.UserID)
	case models.RoleDean:
		if actor.ManagedCollegeID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		return s.appraisals.ListForDean(ctx, cycle.ID, *actor.ManagedCollegeID)
	}

	return nil, apperrors.ErrPermissionDenied
}
