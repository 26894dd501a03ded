package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

// GradingService manages grading configurations and resolves the effective
// one for a cycle.
type GradingService struct {
	configs ConfigStore
	cycles  CycleStore
	logger  zerolog.Logger
}

// NewGradingService creates a new GradingService
func NewGradingService(configs ConfigStore, cycles CycleStore, logger zerolog.Logger) *GradingService {
	return &GradingService{
		configs: configs,
		cycles:  cycles,
		logger:  logger,
	}
}

// effectiveConfig picks the governing config from the candidates: a CYCLE
// scoped config beats GLOBAL regardless of age, ties break on most recent
// update. Nil when no candidate exists.
func effectiveConfig(candidates []*models.GradingConfig) *models.GradingConfig {
	var best *models.GradingConfig
	for _, cfg := range candidates {
		if best == nil {
			best = cfg
			continue
		}
		bestCycle := best.Scope == models.ScopeCycle
		cfgCycle := cfg.Scope == models.ScopeCycle
		if cfgCycle != bestCycle {
			if cfgCycle {
				best = cfg
			}
			continue
		}
		if cfg.UpdatedAt.After(best.UpdatedAt) {
			best = cfg
		}
	}
	return best
}

// ResolveEffectiveConfig returns the config governing the given cycle,
// preferring a cycle-scoped config over the global fallback.
func (s *GradingService) ResolveEffectiveConfig(ctx context.Context, cycleID int64) (*models.GradingConfig, error) {
	candidates, err := s.configs.GetCandidates(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	cfg := effectiveConfig(candidates)
	if cfg == nil {
		return nil, apperrors.ErrConfigNotFound
	}

	return cfg, nil
}

// UpsertGlobal creates or replaces the global fallback config
func (s *GradingService) UpsertGlobal(ctx context.Context, req *dto.UpsertGradingConfigRequest) (*models.GradingConfig, error) {
	cfg := configFromRequest(req)
	if err := s.configs.UpsertGlobal(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("configID", cfg.ID).Msg("Global grading config updated")

	return cfg, nil
}

// UpsertCycle creates or replaces the config scoped to one cycle
func (s *GradingService) UpsertCycle(ctx context.Context, cycleID int64, req *dto.UpsertGradingConfigRequest) (*models.GradingConfig, error) {
	if _, err := s.cycles.GetByID(ctx, cycleID); err != nil {
		return nil, err
	}

	cfg := configFromRequest(req)
	if err := s.configs.UpsertCycle(ctx, cycleID, cfg); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("configID", cfg.ID).Int64("cycleID", cycleID).Msg("Cycle grading config updated")

	return cfg, nil
}

func configFromRequest(req *dto.UpsertGradingConfigRequest) *models.GradingConfig {
	return &models.GradingConfig{
		ResearchWeight:          req.ResearchWeight,
		UniversityServiceWeight: req.UniversityServiceWeight,
		CommunityServiceWeight:  req.CommunityServiceWeight,
		TeachingQualityWeight:   req.TeachingQualityWeight,
		ServicePointsPerItem:    req.ServicePointsPerItem,
		ServiceMaxPoints:        req.ServiceMaxPoints,
		TeachingBands:           req.TeachingBands,
		ResearchPointsMap:       req.ResearchPointsMap,
	}
}
