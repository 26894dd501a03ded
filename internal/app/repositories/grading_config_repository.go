package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadeval/appraisehub/internal/app/models"
)

const gradingConfigColumns = `id, scope, cycle_id,
	research_weight, university_service_weight, community_service_weight, teaching_quality_weight,
	service_points_per_item, service_max_points,
	teaching_bands, research_points_map, created_at, updated_at`

// GradingConfigRepository handles database operations for grading configurations
type GradingConfigRepository struct {
	db *pgxpool.Pool
}

// NewGradingConfigRepository creates a new grading config repository
func NewGradingConfigRepository(db *pgxpool.Pool) *GradingConfigRepository {
	return &GradingConfigRepository{
		db: db,
	}
}

func scanGradingConfig(row pgx.Row) (*models.GradingConfig, error) {
	var cfg models.GradingConfig
	var bandsRaw, pointsMapRaw []byte
	err := row.Scan(
		&cfg.ID,
		&cfg.Scope,
		&cfg.CycleID,
		&cfg.ResearchWeight,
		&cfg.UniversityServiceWeight,
		&cfg.CommunityServiceWeight,
		&cfg.TeachingQualityWeight,
		&cfg.ServicePointsPerItem,
		&cfg.ServiceMaxPoints,
		&bandsRaw,
		&pointsMapRaw,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(bandsRaw) > 0 {
		if err := json.Unmarshal(bandsRaw, &cfg.TeachingBands); err != nil {
			return nil, fmt.Errorf("error decoding teaching bands: %w", err)
		}
	}
	if len(pointsMapRaw) > 0 {
		if err := json.Unmarshal(pointsMapRaw, &cfg.ResearchPointsMap); err != nil {
			return nil, fmt.Errorf("error decoding research points map: %w", err)
		}
	}

	return &cfg, nil
}

// GetCandidates returns the configs that could govern the given cycle: the
// cycle-scoped one if present and the global fallback. Ordering matches the
// resolution rule (cycle scope first, then most recently updated) but the
// caller applies the pick itself.
func (r *GradingConfigRepository) GetCandidates(ctx context.Context, cycleID int64) ([]*models.GradingConfig, error) {
	query := `
		SELECT ` + gradingConfigColumns + `
		FROM grading_configs
		WHERE scope = 'GLOBAL' OR (scope = 'CYCLE' AND cycle_id = $1)
		ORDER BY CASE WHEN scope = 'CYCLE' THEN 0 ELSE 1 END, updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*models.GradingConfig
	for rows.Next() {
		cfg, err := scanGradingConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return configs, nil
}

// UpsertGlobal creates or replaces the single global config
func (r *GradingConfigRepository) UpsertGlobal(ctx context.Context, cfg *models.GradingConfig) error {
	cfg.Scope = models.ScopeGlobal
	cfg.CycleID = nil

	bandsRaw, pointsMapRaw, err := encodeConfigPayload(cfg)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO grading_configs (scope, cycle_id,
			research_weight, university_service_weight, community_service_weight, teaching_quality_weight,
			service_points_per_item, service_max_points, teaching_bands, research_points_map)
		VALUES ('GLOBAL', NULL, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (scope) WHERE scope = 'GLOBAL' DO UPDATE SET
			research_weight = EXCLUDED.research_weight,
			university_service_weight = EXCLUDED.university_service_weight,
			community_service_weight = EXCLUDED.community_service_weight,
			teaching_quality_weight = EXCLUDED.teaching_quality_weight,
			service_points_per_item = EXCLUDED.service_points_per_item,
			service_max_points = EXCLUDED.service_max_points,
			teaching_bands = EXCLUDED.teaching_bands,
			research_points_map = EXCLUDED.research_points_map,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		cfg.ResearchWeight,
		cfg.UniversityServiceWeight,
		cfg.CommunityServiceWeight,
		cfg.TeachingQualityWeight,
		cfg.ServicePointsPerItem,
		cfg.ServiceMaxPoints,
		bandsRaw,
		pointsMapRaw,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting global grading config: %w", err)
	}

	return nil
}

// UpsertCycle creates or replaces the config scoped to one cycle
func (r *GradingConfigRepository) UpsertCycle(ctx context.Context, cycleID int64, cfg *models.GradingConfig) error {
	cfg.Scope = models.ScopeCycle
	cfg.CycleID = &cycleID

	bandsRaw, pointsMapRaw, err := encodeConfigPayload(cfg)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO grading_configs (scope, cycle_id,
			research_weight, university_service_weight, community_service_weight, teaching_quality_weight,
			service_points_per_item, service_max_points, teaching_bands, research_points_map)
		VALUES ('CYCLE', $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (cycle_id) WHERE scope = 'CYCLE' DO UPDATE SET
			research_weight = EXCLUDED.research_weight,
			university_service_weight = EXCLUDED.university_service_weight,
			community_service_weight = EXCLUDED.community_service_weight,
			teaching_quality_weight = EXCLUDED.teaching_quality_weight,
			service_points_per_item = EXCLUDED.service_points_per_item,
			service_max_points = EXCLUDED.service_max_points,
			teaching_bands = EXCLUDED.teaching_bands,
			research_points_map = EXCLUDED.research_points_map,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		cycleID,
		cfg.ResearchWeight,
		cfg.UniversityServiceWeight,
		cfg.CommunityServiceWeight,
		cfg.TeachingQualityWeight,
		cfg.ServicePointsPerItem,
		cfg.ServiceMaxPoints,
		bandsRaw,
		pointsMapRaw,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting cycle grading config: %w", err)
	}

	return nil
}

func encodeConfigPayload(cfg *models.GradingConfig) (bands, pointsMap []byte, err error) {
	bands, err = json.Marshal(cfg.TeachingBands)
	if err != nil {
		return nil, nil, fmt.Errorf("error encoding teaching bands: %w", err)
	}
	pointsMap, err = json.Marshal(cfg.ResearchPointsMap)
	if err != nil {
		return nil, nil, fmt.Errorf("error encoding research points map: %w", err)
	}
	return bands, pointsMap, nil
}
