package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

// EvaluationRepository handles database operations for evaluations
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{
		db: db,
	}
}

// GetByAppraisalAndRole retrieves the evaluation one evaluator role holds
// for an appraisal.
func (r *EvaluationRepository) GetByAppraisalAndRole(ctx context.Context, appraisalID int64, role models.EvaluatorRole) (*models.Evaluation, error) {
	query := `
		SELECT id, appraisal_id, evaluator_role, evaluator_id,
		       performance_pts, capabilities_pts,
		       research_pts, university_service_pts, community_service_pts, teaching_quality_pts,
		       rubric, created_at, updated_at
		FROM evaluations
		WHERE appraisal_id = $1 AND evaluator_role = $2
	`

	var ev models.Evaluation
	var rubricRaw []byte
	err := r.db.QueryRow(ctx, query, appraisalID, role).Scan(
		&ev.ID,
		&ev.AppraisalID,
		&ev.EvaluatorRole,
		&ev.EvaluatorID,
		&ev.PerformancePts,
		&ev.CapabilitiesPts,
		&ev.ResearchPts,
		&ev.UniversityServicePts,
		&ev.CommunityServicePts,
		&ev.TeachingQualityPts,
		&rubricRaw,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}

	if len(rubricRaw) > 0 {
		// A malformed payload degrades to an empty rubric; the aggregator
		// treats that as a zero capabilities subtotal.
		_ = json.Unmarshal(rubricRaw, &ev.Rubric)
	}

	return &ev, nil
}

// Upsert inserts or updates the evaluation for (appraisalID, evaluatorRole).
// The uniqueness constraint keeps one row per evaluator seat.
func (r *EvaluationRepository) Upsert(ctx context.Context, ev *models.Evaluation) error {
	rubricRaw, err := json.Marshal(ev.Rubric)
	if err != nil {
		return fmt.Errorf("error encoding rubric: %w", err)
	}

	query := `
		INSERT INTO evaluations (appraisal_id, evaluator_role, evaluator_id,
			performance_pts, capabilities_pts,
			research_pts, university_service_pts, community_service_pts, teaching_quality_pts,
			rubric)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (appraisal_id, evaluator_role) DO UPDATE SET
			evaluator_id = EXCLUDED.evaluator_id,
			performance_pts = EXCLUDED.performance_pts,
			capabilities_pts = EXCLUDED.capabilities_pts,
			research_pts = EXCLUDED.research_pts,
			university_service_pts = EXCLUDED.university_service_pts,
			community_service_pts = EXCLUDED.community_service_pts,
			teaching_quality_pts = EXCLUDED.teaching_quality_pts,
			rubric = EXCLUDED.rubric,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		ev.AppraisalID,
		ev.EvaluatorRole,
		ev.EvaluatorID,
		ev.PerformancePts,
		ev.CapabilitiesPts,
		ev.ResearchPts,
		ev.UniversityServicePts,
		ev.CommunityServicePts,
		ev.TeachingQualityPts,
		rubricRaw,
	).Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting evaluation: %w", err)
	}

	return nil
}
